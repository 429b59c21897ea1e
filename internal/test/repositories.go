package test

import (
	"context"
	"time"

	domainErrors "github.com/zervix/marketplace/internal/domain/errors"
	"github.com/zervix/marketplace/internal/domain/model"
	"github.com/zervix/marketplace/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users    map[string]*model.User
	ByID     map[int64]*model.User
	Next     int64
	Err      error
	StatsFn  func(context.Context, int64) (*model.SellerStats, error)
	Levels   map[int64]model.SellerLevel
	LevelErr error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users:  make(map[string]*model.User),
		ByID:   make(map[int64]*model.User),
		Levels: make(map[int64]model.SellerLevel),
		Next:   1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash, displayName string, isSeller bool) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{
		ID:           s.Next,
		Login:        login,
		PasswordHash: passwordHash,
		DisplayName:  displayName,
		IsSeller:     isSeller,
		SellerLevel:  model.SellerLevelNew,
	}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// SellerStats returns configured aggregates or zero values.
func (s *UserRepositoryStub) SellerStats(ctx context.Context, sellerID int64) (*model.SellerStats, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx, sellerID)
	}
	return &model.SellerStats{MemberSince: time.Unix(0, 0)}, nil
}

// SetSellerLevel records the computed level.
func (s *UserRepositoryStub) SetSellerLevel(ctx context.Context, sellerID int64, level model.SellerLevel) error {
	if s.LevelErr != nil {
		return s.LevelErr
	}
	if s.Levels == nil {
		s.Levels = make(map[int64]model.SellerLevel)
	}
	s.Levels[sellerID] = level
	if user, ok := s.ByID[sellerID]; ok {
		user.SellerLevel = level
	}
	return nil
}

// ListSellers returns stored seller accounts up to limit.
func (s *UserRepositoryStub) ListSellers(ctx context.Context, limit int) ([]model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var sellers []model.User
	for _, user := range s.ByID {
		if user.IsSeller {
			sellers = append(sellers, *user)
		}
		if limit > 0 && len(sellers) >= limit {
			break
		}
	}
	return sellers, nil
}

// TransitionCall stores information about Transition invocations.
type TransitionCall struct {
	OrderID int64
	From    model.OrderStatus
	To      model.OrderStatus
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFn         func(context.Context, repository.NewOrder) (*model.Order, error)
	GetByIDFn        func(context.Context, int64) (*model.Order, error)
	ListByUserFn     func(context.Context, int64) ([]model.Order, error)
	TransitionFn     func(context.Context, int64, model.OrderStatus, model.OrderStatus) error
	SubmitFn         func(context.Context, int64, model.OrderStatus, []string, string) (*model.Delivery, error)
	RevisionFn       func(context.Context, int64, string) (*model.Revision, error)
	ListDeliveriesFn func(context.Context, int64) ([]model.Delivery, error)
	ListRevisionsFn  func(context.Context, int64) ([]model.Revision, error)

	Orders      []model.Order
	Deliveries  []model.Delivery
	Revisions   []model.Revision
	Created     []repository.NewOrder
	Transitions []TransitionCall
}

// Create tracks invocations and returns configured responses.
func (s *OrderRepositoryStub) Create(ctx context.Context, order repository.NewOrder) (*model.Order, error) {
	s.Created = append(s.Created, order)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	return &model.Order{
		ID:           1,
		BuyerID:      order.BuyerID,
		SellerID:     order.SellerID,
		GigID:        order.GigID,
		TierName:     order.TierName,
		Status:       model.OrderStatusPending,
		TotalCents:   order.TotalCents,
		Requirements: order.Requirements,
	}, nil
}

// GetByID returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, orderID)
	}
	for _, o := range s.Orders {
		if o.ID == orderID {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns orders from configured slice.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	return s.Orders, nil
}

// Transition records the requested status move.
func (s *OrderRepositoryStub) Transition(ctx context.Context, orderID int64, from, to model.OrderStatus) error {
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, orderID, from, to)
	}
	s.Transitions = append(s.Transitions, TransitionCall{OrderID: orderID, From: from, To: to})
	for i := range s.Orders {
		if s.Orders[i].ID == orderID {
			s.Orders[i].Status = to
		}
	}
	return nil
}

// SubmitDelivery records the delivery and the implied status move.
func (s *OrderRepositoryStub) SubmitDelivery(ctx context.Context, orderID int64, from model.OrderStatus, files []string, note string) (*model.Delivery, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, orderID, from, files, note)
	}
	s.Transitions = append(s.Transitions, TransitionCall{OrderID: orderID, From: from, To: model.OrderStatusDelivered})
	for i := range s.Orders {
		if s.Orders[i].ID == orderID {
			s.Orders[i].Status = model.OrderStatusDelivered
		}
	}
	delivery := model.Delivery{ID: int64(len(s.Deliveries) + 1), OrderID: orderID, Files: files, Note: note}
	s.Deliveries = append(s.Deliveries, delivery)
	return &delivery, nil
}

// RequestRevision records the revision and the implied status move.
func (s *OrderRepositoryStub) RequestRevision(ctx context.Context, orderID int64, request string) (*model.Revision, error) {
	if s.RevisionFn != nil {
		return s.RevisionFn(ctx, orderID, request)
	}
	s.Transitions = append(s.Transitions, TransitionCall{OrderID: orderID, From: model.OrderStatusDelivered, To: model.OrderStatusRevision})
	for i := range s.Orders {
		if s.Orders[i].ID == orderID {
			s.Orders[i].Status = model.OrderStatusRevision
		}
	}
	revision := model.Revision{ID: int64(len(s.Revisions) + 1), OrderID: orderID, Request: request}
	s.Revisions = append(s.Revisions, revision)
	return &revision, nil
}

// ListDeliveries returns deliveries from configured slice.
func (s *OrderRepositoryStub) ListDeliveries(ctx context.Context, orderID int64) ([]model.Delivery, error) {
	if s.ListDeliveriesFn != nil {
		return s.ListDeliveriesFn(ctx, orderID)
	}
	return s.Deliveries, nil
}

// ListRevisions returns revisions from configured slice.
func (s *OrderRepositoryStub) ListRevisions(ctx context.Context, orderID int64) ([]model.Revision, error) {
	if s.ListRevisionsFn != nil {
		return s.ListRevisionsFn(ctx, orderID)
	}
	return s.Revisions, nil
}

// ActivityLogRepositoryStub records appended audit entries.
type ActivityLogRepositoryStub struct {
	AppendFn func(context.Context, int64, model.ActivityType, string) (*model.ActivityLogEntry, error)
	ListFn   func(context.Context, int64) ([]model.ActivityLogEntry, error)
	Entries  []model.ActivityLogEntry
}

// Append stores the entry unless an override is provided.
func (s *ActivityLogRepositoryStub) Append(ctx context.Context, orderID int64, entryType model.ActivityType, message string) (*model.ActivityLogEntry, error) {
	if s.AppendFn != nil {
		return s.AppendFn(ctx, orderID, entryType, message)
	}
	entry := model.ActivityLogEntry{ID: int64(len(s.Entries) + 1), OrderID: orderID, Type: entryType, Message: message}
	s.Entries = append(s.Entries, entry)
	return &entry, nil
}

// ListByOrder returns entries matching the order.
func (s *ActivityLogRepositoryStub) ListByOrder(ctx context.Context, orderID int64) ([]model.ActivityLogEntry, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, orderID)
	}
	var entries []model.ActivityLogEntry
	for _, e := range s.Entries {
		if e.OrderID == orderID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// SendCall stores information about Send invocations.
type SendCall struct {
	ConversationID int64
	SenderID       int64
	Kind           model.MessageKind
	Content        string
	Offer          *model.Offer
}

// ConversationRepositoryStub keeps conversations and messages in-memory.
type ConversationRepositoryStub struct {
	GetOrCreateFn func(context.Context, int64, int64) (*model.Conversation, error)
	GetByIDFn     func(context.Context, int64) (*model.Conversation, error)
	ListFn        func(context.Context, int64) ([]model.ConversationSummary, error)
	SendFn        func(context.Context, int64, int64, model.MessageKind, string, *model.Offer) (*model.Message, error)
	FetchFn       func(context.Context, int64, int64) ([]model.Message, error)
	UnreadFn      func(context.Context, int64, int64) (int, error)

	Conversations []model.Conversation
	Messages      []model.Message
	Sends         []SendCall
	NextID        int64
}

// GetOrCreate finds a conversation for the normalized pair or stores a new one.
func (s *ConversationRepositoryStub) GetOrCreate(ctx context.Context, userA, userB int64) (*model.Conversation, error) {
	if s.GetOrCreateFn != nil {
		return s.GetOrCreateFn(ctx, userA, userB)
	}
	a, b := model.NormalizePair(userA, userB)
	for _, c := range s.Conversations {
		if c.UserA == a && c.UserB == b {
			conv := c
			return &conv, nil
		}
	}
	if s.NextID == 0 {
		s.NextID = 1
	}
	conv := model.Conversation{ID: s.NextID, UserA: a, UserB: b}
	s.NextID++
	s.Conversations = append(s.Conversations, conv)
	return &conv, nil
}

// GetByID returns the stored conversation or not found.
func (s *ConversationRepositoryStub) GetByID(ctx context.Context, conversationID int64) (*model.Conversation, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, conversationID)
	}
	for _, c := range s.Conversations {
		if c.ID == conversationID {
			conv := c
			return &conv, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListForUser returns summaries for conversations the user participates in.
func (s *ConversationRepositoryStub) ListForUser(ctx context.Context, userID int64) ([]model.ConversationSummary, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	var summaries []model.ConversationSummary
	for _, c := range s.Conversations {
		if !c.HasParticipant(userID) {
			continue
		}
		unread := 0
		for _, m := range s.Messages {
			if m.ConversationID == c.ID && m.SenderID != userID && !m.IsRead {
				unread++
			}
		}
		summaries = append(summaries, model.ConversationSummary{Conversation: c, UnreadCount: unread})
	}
	return summaries, nil
}

// Send records the message and refreshes the conversation preview.
func (s *ConversationRepositoryStub) Send(ctx context.Context, conversationID, senderID int64, kind model.MessageKind, content string, offer *model.Offer) (*model.Message, error) {
	s.Sends = append(s.Sends, SendCall{ConversationID: conversationID, SenderID: senderID, Kind: kind, Content: content, Offer: offer})
	if s.SendFn != nil {
		return s.SendFn(ctx, conversationID, senderID, kind, content, offer)
	}
	msg := model.Message{
		ID:             int64(len(s.Messages) + 1),
		ConversationID: conversationID,
		SenderID:       senderID,
		Kind:           kind,
		Content:        content,
		Offer:          offer,
		CreatedAt:      time.Now(),
	}
	s.Messages = append(s.Messages, msg)
	for i := range s.Conversations {
		if s.Conversations[i].ID == conversationID {
			s.Conversations[i].LastMessage = content
			s.Conversations[i].LastMessageAt = msg.CreatedAt
		}
	}
	return &msg, nil
}

// FetchAndMarkRead flips unread flags for the reader and returns all messages.
func (s *ConversationRepositoryStub) FetchAndMarkRead(ctx context.Context, conversationID, readerID int64) ([]model.Message, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, conversationID, readerID)
	}
	var messages []model.Message
	for i := range s.Messages {
		if s.Messages[i].ConversationID != conversationID {
			continue
		}
		if s.Messages[i].SenderID != readerID {
			s.Messages[i].IsRead = true
		}
		messages = append(messages, s.Messages[i])
	}
	return messages, nil
}

// UnreadCount counts stored unread messages addressed to the user.
func (s *ConversationRepositoryStub) UnreadCount(ctx context.Context, conversationID, userID int64) (int, error) {
	if s.UnreadFn != nil {
		return s.UnreadFn(ctx, conversationID, userID)
	}
	count := 0
	for _, m := range s.Messages {
		if m.ConversationID == conversationID && m.SenderID != userID && !m.IsRead {
			count++
		}
	}
	return count, nil
}

// EarningsRepositoryStub lets tests control income figures.
type EarningsRepositoryStub struct {
	GrossFn       func(context.Context, int64) (int64, int64, error)
	WithdrawnFn   func(context.Context, int64) (int64, error)
	WithdrawFn    func(context.Context, int64, int64) (*model.Withdrawal, error)
	ListFn        func(context.Context, int64) ([]model.Withdrawal, error)
	Completed     int64
	Pending       int64
	Withdrawn     int64
	WithdrawErr   error
	WithdrawCalls []int64
	Items         []model.Withdrawal
}

// GrossTotals returns configured gross figures.
func (s *EarningsRepositoryStub) GrossTotals(ctx context.Context, sellerID int64) (int64, int64, error) {
	if s.GrossFn != nil {
		return s.GrossFn(ctx, sellerID)
	}
	return s.Completed, s.Pending, nil
}

// WithdrawnTotal returns the configured withdrawn sum.
func (s *EarningsRepositoryStub) WithdrawnTotal(ctx context.Context, sellerID int64) (int64, error) {
	if s.WithdrawnFn != nil {
		return s.WithdrawnFn(ctx, sellerID)
	}
	return s.Withdrawn, nil
}

// Withdraw records the payout or returns the configured error.
func (s *EarningsRepositoryStub) Withdraw(ctx context.Context, sellerID, amountCents int64) (*model.Withdrawal, error) {
	if s.WithdrawFn != nil {
		return s.WithdrawFn(ctx, sellerID, amountCents)
	}
	if s.WithdrawErr != nil {
		return nil, s.WithdrawErr
	}
	s.WithdrawCalls = append(s.WithdrawCalls, amountCents)
	withdrawal := model.Withdrawal{ID: int64(len(s.Items) + 1), UserID: sellerID, AmountCents: amountCents}
	s.Items = append(s.Items, withdrawal)
	return &withdrawal, nil
}

// ListWithdrawals returns configured history.
func (s *EarningsRepositoryStub) ListWithdrawals(ctx context.Context, sellerID int64) ([]model.Withdrawal, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, sellerID)
	}
	return s.Items, nil
}

// CatalogRepositoryStub returns preconfigured catalog data.
type CatalogRepositoryStub struct {
	Gigs    map[int64]*model.Gig
	Tiers   map[int64]map[string]*model.GigTier
	ListFn  func(context.Context, int64) ([]model.Gig, error)
	GigErr  error
	TierErr error
}

// NewCatalogRepositoryStub constructs stub catalog with initialized maps.
func NewCatalogRepositoryStub() *CatalogRepositoryStub {
	return &CatalogRepositoryStub{
		Gigs:  make(map[int64]*model.Gig),
		Tiers: make(map[int64]map[string]*model.GigTier),
	}
}

// AddGig registers a gig with its tiers.
func (s *CatalogRepositoryStub) AddGig(gig model.Gig, tiers ...model.GigTier) {
	g := gig
	s.Gigs[gig.ID] = &g
	byName := make(map[string]*model.GigTier, len(tiers))
	for i := range tiers {
		tier := tiers[i]
		byName[tier.Name] = &tier
	}
	s.Tiers[gig.ID] = byName
}

// GetGig fetches a stored gig or returns not found.
func (s *CatalogRepositoryStub) GetGig(ctx context.Context, gigID int64) (*model.Gig, error) {
	if s.GigErr != nil {
		return nil, s.GigErr
	}
	if gig, ok := s.Gigs[gigID]; ok {
		return gig, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetTier fetches a stored gig tier or returns not found.
func (s *CatalogRepositoryStub) GetTier(ctx context.Context, gigID int64, tierName string) (*model.GigTier, error) {
	if s.TierErr != nil {
		return nil, s.TierErr
	}
	if tiers, ok := s.Tiers[gigID]; ok {
		if tier, ok := tiers[tierName]; ok {
			return tier, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListGigsBySeller returns stored gigs for the seller.
func (s *CatalogRepositoryStub) ListGigsBySeller(ctx context.Context, sellerID int64) ([]model.Gig, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, sellerID)
	}
	var gigs []model.Gig
	for _, gig := range s.Gigs {
		if gig.SellerID == sellerID {
			gigs = append(gigs, *gig)
		}
	}
	return gigs, nil
}

// ReviewRepositoryStub stores reviews in-memory.
type ReviewRepositoryStub struct {
	CreateFn func(context.Context, model.Review) (*model.Review, error)
	ListFn   func(context.Context, int64, int) ([]model.Review, error)
	Items    []model.Review
	Err      error
}

// Create stores the review unless an override or error is configured.
func (s *ReviewRepositoryStub) Create(ctx context.Context, review model.Review) (*model.Review, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, review)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	review.ID = int64(len(s.Items) + 1)
	s.Items = append(s.Items, review)
	return &review, nil
}

// ListBySeller returns stored reviews up to limit.
func (s *ReviewRepositoryStub) ListBySeller(ctx context.Context, sellerID int64, limit int) ([]model.Review, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, sellerID, limit)
	}
	if limit > 0 && len(s.Items) > limit {
		return s.Items[:limit], nil
	}
	return s.Items, nil
}
