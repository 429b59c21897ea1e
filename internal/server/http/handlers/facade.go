package handlers

import (
	"context"

	"github.com/zervix/marketplace/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password, displayName string, isSeller bool) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// OrderFacade encapsulates order lifecycle operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, buyerID, gigID int64, tierName string, requirements []string) (*model.Order, error)
	Order(ctx context.Context, orderID int64) (*model.OrderDetail, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	TransitionOrder(ctx context.Context, orderID int64, next model.OrderStatus, actorID int64) error
	SubmitDelivery(ctx context.Context, orderID, actorID int64, files []string, note string) (*model.Delivery, error)
	RequestRevision(ctx context.Context, orderID, actorID int64, request string) (*model.Revision, error)
}

// MessagingFacade provides conversation and message operations.
type MessagingFacade interface {
	StartConversation(ctx context.Context, userID, otherID int64) (*model.Conversation, error)
	Conversations(ctx context.Context, userID int64) ([]model.ConversationSummary, error)
	SendMessage(ctx context.Context, conversationID, senderID int64, content string, offer *model.Offer) (*model.Message, error)
	Messages(ctx context.Context, conversationID, readerID int64) ([]model.Message, error)
}

// EarningsFacade provides seller income operations.
type EarningsFacade interface {
	Earnings(ctx context.Context, sellerID int64) (*model.EarningsSnapshot, error)
	Withdraw(ctx context.Context, sellerID, amountCents int64) (*model.Withdrawal, error)
	Withdrawals(ctx context.Context, sellerID int64) ([]model.Withdrawal, error)
}

// SellerFacade provides seller profile and review operations.
type SellerFacade interface {
	SellerProfile(ctx context.Context, sellerID int64) (*model.SellerProfile, error)
	PostReview(ctx context.Context, buyerID, gigID int64, rating, communication, service, recommend int, comment string) (*model.Review, error)
}

// MarketplaceFacade aggregates the full set of operations used across handlers.
type MarketplaceFacade interface {
	AuthFacade
	OrderFacade
	MessagingFacade
	EarningsFacade
	SellerFacade
}
