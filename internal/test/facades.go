package test

import (
	"context"
	"sync"
	"time"

	"github.com/zervix/marketplace/internal/domain/model"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn     func(context.Context, int64, int64, string, []string) (*model.Order, error)
	OrderFn      func(context.Context, int64) (*model.OrderDetail, error)
	OrdersFn     func(context.Context, int64) ([]model.Order, error)
	TransitionFn func(context.Context, int64, model.OrderStatus, int64) error
	DeliveryFn   func(context.Context, int64, int64, []string, string) (*model.Delivery, error)
	RevisionFn   func(context.Context, int64, int64, string) (*model.Revision, error)
}

// CreateOrder delegates to provided function or returns a default order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, buyerID, gigID int64, tierName string, requirements []string) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, buyerID, gigID, tierName, requirements)
	}
	return &model.Order{ID: 1, BuyerID: buyerID, GigID: gigID, TierName: tierName, Status: model.OrderStatusPending}, nil
}

// Order returns configured order detail.
func (s OrderFacadeStub) Order(ctx context.Context, orderID int64) (*model.OrderDetail, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID)
	}
	return &model.OrderDetail{Order: model.Order{ID: orderID, Status: model.OrderStatusPending}}, nil
}

// Orders returns predefined orders for given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{ID: 1, BuyerID: userID}}, nil
}

// TransitionOrder executes configured transition handler.
func (s OrderFacadeStub) TransitionOrder(ctx context.Context, orderID int64, next model.OrderStatus, actorID int64) error {
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, orderID, next, actorID)
	}
	return nil
}

// SubmitDelivery delegates to the configured handler.
func (s OrderFacadeStub) SubmitDelivery(ctx context.Context, orderID, actorID int64, files []string, note string) (*model.Delivery, error) {
	if s.DeliveryFn != nil {
		return s.DeliveryFn(ctx, orderID, actorID, files, note)
	}
	return &model.Delivery{ID: 1, OrderID: orderID, Files: files, Note: note}, nil
}

// RequestRevision delegates to the configured handler.
func (s OrderFacadeStub) RequestRevision(ctx context.Context, orderID, actorID int64, request string) (*model.Revision, error) {
	if s.RevisionFn != nil {
		return s.RevisionFn(ctx, orderID, actorID, request)
	}
	return &model.Revision{ID: 1, OrderID: orderID, Request: request}, nil
}

// MessagingFacadeStub simulates conversation operations.
type MessagingFacadeStub struct {
	StartFn         func(context.Context, int64, int64) (*model.Conversation, error)
	ConversationsFn func(context.Context, int64) ([]model.ConversationSummary, error)
	SendFn          func(context.Context, int64, int64, string, *model.Offer) (*model.Message, error)
	MessagesFn      func(context.Context, int64, int64) ([]model.Message, error)
}

// StartConversation returns configured conversation or a default pair.
func (s MessagingFacadeStub) StartConversation(ctx context.Context, userID, otherID int64) (*model.Conversation, error) {
	if s.StartFn != nil {
		return s.StartFn(ctx, userID, otherID)
	}
	a, b := model.NormalizePair(userID, otherID)
	return &model.Conversation{ID: 1, UserA: a, UserB: b}, nil
}

// Conversations returns preconfigured summaries.
func (s MessagingFacadeStub) Conversations(ctx context.Context, userID int64) ([]model.ConversationSummary, error) {
	if s.ConversationsFn != nil {
		return s.ConversationsFn(ctx, userID)
	}
	return []model.ConversationSummary{{Conversation: model.Conversation{ID: 1, UserA: userID, UserB: userID + 1}}}, nil
}

// SendMessage executes the configured send handler.
func (s MessagingFacadeStub) SendMessage(ctx context.Context, conversationID, senderID int64, content string, offer *model.Offer) (*model.Message, error) {
	if s.SendFn != nil {
		return s.SendFn(ctx, conversationID, senderID, content, offer)
	}
	return &model.Message{ID: 1, ConversationID: conversationID, SenderID: senderID, Kind: model.MessageKindPlain, Content: content}, nil
}

// Messages returns preconfigured messages.
func (s MessagingFacadeStub) Messages(ctx context.Context, conversationID, readerID int64) ([]model.Message, error) {
	if s.MessagesFn != nil {
		return s.MessagesFn(ctx, conversationID, readerID)
	}
	return []model.Message{{ID: 1, ConversationID: conversationID, Content: "hi", CreatedAt: time.Unix(0, 0)}}, nil
}

// EarningsFacadeStub simulates seller income operations.
type EarningsFacadeStub struct {
	EarningsFn    func(context.Context, int64) (*model.EarningsSnapshot, error)
	WithdrawFn    func(context.Context, int64, int64) (*model.Withdrawal, error)
	WithdrawalsFn func(context.Context, int64) ([]model.Withdrawal, error)
}

// Earnings returns stored snapshot or default data.
func (s EarningsFacadeStub) Earnings(ctx context.Context, sellerID int64) (*model.EarningsSnapshot, error) {
	if s.EarningsFn != nil {
		return s.EarningsFn(ctx, sellerID)
	}
	return &model.EarningsSnapshot{NetIncomeCents: 76000, PendingClearanceCents: 4000, AvailableCents: 76000}, nil
}

// Withdraw executes configured withdrawal handler.
func (s EarningsFacadeStub) Withdraw(ctx context.Context, sellerID, amountCents int64) (*model.Withdrawal, error) {
	if s.WithdrawFn != nil {
		return s.WithdrawFn(ctx, sellerID, amountCents)
	}
	return &model.Withdrawal{ID: 1, UserID: sellerID, AmountCents: amountCents, ProcessedAt: time.Unix(0, 0)}, nil
}

// Withdrawals returns preconfigured history.
func (s EarningsFacadeStub) Withdrawals(ctx context.Context, sellerID int64) ([]model.Withdrawal, error) {
	if s.WithdrawalsFn != nil {
		return s.WithdrawalsFn(ctx, sellerID)
	}
	return []model.Withdrawal{{ID: 1, UserID: sellerID, AmountCents: 100, ProcessedAt: time.Unix(0, 0)}}, nil
}

// SellerFacadeStub simulates seller profile operations.
type SellerFacadeStub struct {
	ProfileFn func(context.Context, int64) (*model.SellerProfile, error)
	ReviewFn  func(context.Context, int64, int64, int, int, int, int, string) (*model.Review, error)
}

// SellerProfile returns configured profile or a minimal default.
func (s SellerFacadeStub) SellerProfile(ctx context.Context, sellerID int64) (*model.SellerProfile, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, sellerID)
	}
	return &model.SellerProfile{User: model.User{ID: sellerID, IsSeller: true, SellerLevel: model.SellerLevelNew}}, nil
}

// PostReview executes the configured review handler.
func (s SellerFacadeStub) PostReview(ctx context.Context, buyerID, gigID int64, rating, communication, service, recommend int, comment string) (*model.Review, error) {
	if s.ReviewFn != nil {
		return s.ReviewFn(ctx, buyerID, gigID, rating, communication, service, recommend, comment)
	}
	return &model.Review{ID: 1, GigID: gigID, BuyerID: buyerID, Rating: rating, Comment: comment}, nil
}

// MarketplaceFacadeStub aggregates facade dependencies for HTTP layer tests.
type MarketplaceFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	MessagingFacadeStub
	EarningsFacadeStub
	SellerFacadeStub
}

// LevelRecomputeCall stores information about RecomputeSellerLevel invocations.
type LevelRecomputeCall struct {
	SellerID int64
}

// WorkerFacadeStub mimics worker interactions with the marketplace facade.
type WorkerFacadeStub struct {
	Batches     [][]model.User
	SellersFn   func(context.Context, int) ([]model.User, error)
	RecomputeFn func(context.Context, int64) error
	Recomputes  []LevelRecomputeCall
	mu          sync.Mutex
	batchCalls  int
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// SellersForRecompute returns batches from configured queue.
func (s *WorkerFacadeStub) SellersForRecompute(ctx context.Context, limit int) ([]model.User, error) {
	if s.SellersFn != nil {
		return s.SellersFn(ctx, limit)
	}
	s.mu.Lock()
	call := s.batchCalls
	s.batchCalls++
	s.mu.Unlock()
	if call < len(s.Batches) {
		return s.Batches[call], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// RecomputeSellerLevel records recompute requests.
func (s *WorkerFacadeStub) RecomputeSellerLevel(ctx context.Context, sellerID int64) error {
	if s.RecomputeFn != nil {
		return s.RecomputeFn(ctx, sellerID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Recomputes = append(s.Recomputes, LevelRecomputeCall{SellerID: sellerID})
	return nil
}
