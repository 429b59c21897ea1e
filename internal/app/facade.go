package app

import (
	"context"

	"github.com/zervix/marketplace/internal/domain/model"
	"github.com/zervix/marketplace/internal/usecase"
)

// MarketplaceFacade aggregates the core's use cases behind one surface. HTTP
// handlers and the background worker consume it through narrow interfaces.
type MarketplaceFacade struct {
	auth      *usecase.AuthUseCase
	orders    *usecase.OrderUseCase
	messaging *usecase.MessagingUseCase
	earnings  *usecase.EarningsUseCase
	sellers   *usecase.SellerUseCase
}

// NewMarketplaceFacade constructs the facade over the core use cases.
func NewMarketplaceFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	messaging *usecase.MessagingUseCase,
	earnings *usecase.EarningsUseCase,
	sellers *usecase.SellerUseCase,
) *MarketplaceFacade {
	return &MarketplaceFacade{
		auth:      auth,
		orders:    orders,
		messaging: messaging,
		earnings:  earnings,
		sellers:   sellers,
	}
}

func (f *MarketplaceFacade) Register(ctx context.Context, login, password, displayName string, isSeller bool) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password, displayName, isSeller)
	return token, err
}

func (f *MarketplaceFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *MarketplaceFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *MarketplaceFacade) CreateOrder(ctx context.Context, buyerID, gigID int64, tierName string, requirements []string) (*model.Order, error) {
	return f.orders.Create(ctx, buyerID, gigID, tierName, requirements)
}

func (f *MarketplaceFacade) Order(ctx context.Context, orderID int64) (*model.OrderDetail, error) {
	return f.orders.Get(ctx, orderID)
}

func (f *MarketplaceFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *MarketplaceFacade) TransitionOrder(ctx context.Context, orderID int64, next model.OrderStatus, actorID int64) error {
	return f.orders.Transition(ctx, orderID, next, actorID)
}

func (f *MarketplaceFacade) SubmitDelivery(ctx context.Context, orderID, actorID int64, files []string, note string) (*model.Delivery, error) {
	return f.orders.SubmitDelivery(ctx, orderID, actorID, files, note)
}

func (f *MarketplaceFacade) RequestRevision(ctx context.Context, orderID, actorID int64, request string) (*model.Revision, error) {
	return f.orders.RequestRevision(ctx, orderID, actorID, request)
}

func (f *MarketplaceFacade) StartConversation(ctx context.Context, userID, otherID int64) (*model.Conversation, error) {
	return f.messaging.GetOrCreateConversation(ctx, userID, otherID)
}

func (f *MarketplaceFacade) Conversations(ctx context.Context, userID int64) ([]model.ConversationSummary, error) {
	return f.messaging.ListConversations(ctx, userID)
}

func (f *MarketplaceFacade) SendMessage(ctx context.Context, conversationID, senderID int64, content string, offer *model.Offer) (*model.Message, error) {
	return f.messaging.Send(ctx, conversationID, senderID, content, offer)
}

func (f *MarketplaceFacade) Messages(ctx context.Context, conversationID, readerID int64) ([]model.Message, error) {
	return f.messaging.Fetch(ctx, conversationID, readerID)
}

func (f *MarketplaceFacade) Earnings(ctx context.Context, sellerID int64) (*model.EarningsSnapshot, error) {
	return f.earnings.Snapshot(ctx, sellerID)
}

func (f *MarketplaceFacade) Withdraw(ctx context.Context, sellerID, amountCents int64) (*model.Withdrawal, error) {
	return f.earnings.Withdraw(ctx, sellerID, amountCents)
}

func (f *MarketplaceFacade) Withdrawals(ctx context.Context, sellerID int64) ([]model.Withdrawal, error) {
	return f.earnings.WithdrawalsHistory(ctx, sellerID)
}

func (f *MarketplaceFacade) SellerProfile(ctx context.Context, sellerID int64) (*model.SellerProfile, error) {
	return f.sellers.Profile(ctx, sellerID)
}

func (f *MarketplaceFacade) PostReview(ctx context.Context, buyerID, gigID int64, rating, communication, service, recommend int, comment string) (*model.Review, error) {
	return f.sellers.CreateReview(ctx, buyerID, gigID, rating, communication, service, recommend, comment)
}

func (f *MarketplaceFacade) RecomputeSellerLevel(ctx context.Context, sellerID int64) error {
	_, err := f.sellers.Recompute(ctx, sellerID)
	return err
}

func (f *MarketplaceFacade) SellersForRecompute(ctx context.Context, limit int) ([]model.User, error) {
	return f.sellers.SellersForRecompute(ctx, limit)
}
