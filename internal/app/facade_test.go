package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	domainErrors "github.com/zervix/marketplace/internal/domain/errors"
	"github.com/zervix/marketplace/internal/domain/model"
	testhelpers "github.com/zervix/marketplace/internal/test"
	"github.com/zervix/marketplace/internal/usecase"
)

type facadeFixture struct {
	facade        *MarketplaceFacade
	users         *testhelpers.UserRepositoryStub
	orders        *testhelpers.OrderRepositoryStub
	conversations *testhelpers.ConversationRepositoryStub
	earnings      *testhelpers.EarningsRepositoryStub
	catalog       *testhelpers.CatalogRepositoryStub
	reviews       *testhelpers.ReviewRepositoryStub
	events        *testhelpers.DispatcherStub
}

func newFacade() facadeFixture {
	users := testhelpers.NewUserRepositoryStub()
	strategy := testhelpers.StrategyStub{ParseFn: func(string) (int64, error) { return 99, nil }}
	authUC := usecase.NewAuthUseCase(users, testhelpers.HasherStub{}, strategy)

	orders := &testhelpers.OrderRepositoryStub{}
	activity := &testhelpers.ActivityLogRepositoryStub{}
	catalog := testhelpers.NewCatalogRepositoryStub()
	events := &testhelpers.DispatcherStub{}
	orderUC := usecase.NewOrderUseCase(orders, activity, catalog, events)

	conversations := &testhelpers.ConversationRepositoryStub{}
	messagingUC := usecase.NewMessagingUseCase(conversations, events)

	earnings := &testhelpers.EarningsRepositoryStub{Completed: 95000}
	earningsUC := usecase.NewEarningsUseCase(earnings)

	reviews := &testhelpers.ReviewRepositoryStub{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	sellerUC := usecase.NewSellerUseCase(users, catalog, reviews, logger)

	facade := NewMarketplaceFacade(authUC, orderUC, messagingUC, earningsUC, sellerUC)
	return facadeFixture{
		facade:        facade,
		users:         users,
		orders:        orders,
		conversations: conversations,
		earnings:      earnings,
		catalog:       catalog,
		reviews:       reviews,
		events:        events,
	}
}

func TestMarketplaceFacadeAuth(t *testing.T) {
	fx := newFacade()
	token, err := fx.facade.Register(context.Background(), "user", "pass", "User", false)
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	stored, err := fx.users.GetByLogin(context.Background(), "user")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if stored.Login != "user" {
		t.Fatalf("unexpected stored login %q", stored.Login)
	}

	token, err = fx.facade.Authenticate(context.Background(), "user", "pass")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	id, err := fx.facade.ParseToken("anything")
	if err != nil {
		t.Fatalf("parse token returned error: %v", err)
	}
	if id != 99 {
		t.Fatalf("expected id 99, got %d", id)
	}
}

func TestMarketplaceFacadeOrders(t *testing.T) {
	fx := newFacade()
	fx.catalog.AddGig(
		model.Gig{ID: 5, SellerID: 20},
		model.GigTier{GigID: 5, Name: "basic", PriceCents: 1000},
	)
	fx.orders.Orders = []model.Order{{ID: 1, BuyerID: 10, SellerID: 20, Status: model.OrderStatusPending}}

	order, err := fx.facade.CreateOrder(context.Background(), 10, 5, "basic", nil)
	if err != nil || order == nil {
		t.Fatalf("unexpected create result: order=%v err=%v", order, err)
	}

	listed, err := fx.facade.Orders(context.Background(), 10)
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected one order, got %v err=%v", listed, err)
	}

	if err := fx.facade.TransitionOrder(context.Background(), 1, model.OrderStatusActive, 20); err != nil {
		t.Fatalf("transition returned error: %v", err)
	}

	delivery, err := fx.facade.SubmitDelivery(context.Background(), 1, 20, []string{"final.zip"}, "")
	if err != nil || delivery == nil {
		t.Fatalf("unexpected delivery result: %v err=%v", delivery, err)
	}

	revision, err := fx.facade.RequestRevision(context.Background(), 1, 10, "please fix")
	if err != nil || revision == nil {
		t.Fatalf("unexpected revision result: %v err=%v", revision, err)
	}

	detail, err := fx.facade.Order(context.Background(), 1)
	if err != nil {
		t.Fatalf("order detail returned error: %v", err)
	}
	if len(detail.Deliveries) != 1 || len(detail.Revisions) != 1 {
		t.Fatalf("unexpected detail %+v", detail)
	}
}

func TestMarketplaceFacadeMessaging(t *testing.T) {
	fx := newFacade()

	conv, err := fx.facade.StartConversation(context.Background(), 9, 4)
	if err != nil {
		t.Fatalf("start conversation returned error: %v", err)
	}

	msg, err := fx.facade.SendMessage(context.Background(), conv.ID, 4, "hello", nil)
	if err != nil || msg == nil {
		t.Fatalf("unexpected send result: %v err=%v", msg, err)
	}

	messages, err := fx.facade.Messages(context.Background(), conv.ID, 9)
	if err != nil || len(messages) != 1 {
		t.Fatalf("expected one message, got %v err=%v", messages, err)
	}

	summaries, err := fx.facade.Conversations(context.Background(), 9)
	if err != nil || len(summaries) != 1 {
		t.Fatalf("expected one conversation, got %v err=%v", summaries, err)
	}
}

func TestMarketplaceFacadeEarnings(t *testing.T) {
	fx := newFacade()

	snapshot, err := fx.facade.Earnings(context.Background(), 1)
	if err != nil {
		t.Fatalf("earnings returned error: %v", err)
	}
	if snapshot.NetIncomeCents != 76000 {
		t.Fatalf("expected net income 76000, got %d", snapshot.NetIncomeCents)
	}

	fx.earnings.WithdrawErr = domainErrors.ErrInsufficientFunds
	if _, err := fx.facade.Withdraw(context.Background(), 1, 100); !errors.Is(err, domainErrors.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds error, got %v", err)
	}
	fx.earnings.WithdrawErr = nil
	if _, err := fx.facade.Withdraw(context.Background(), 1, 100); err != nil {
		t.Fatalf("expected successful withdraw, got %v", err)
	}

	list, err := fx.facade.Withdrawals(context.Background(), 1)
	if err != nil || len(list) != 1 {
		t.Fatalf("unexpected withdrawals result: %v err=%v", list, err)
	}
}

func TestMarketplaceFacadeSellers(t *testing.T) {
	fx := newFacade()
	if _, err := fx.users.Create(context.Background(), "seller", "hash", "Seller", true); err != nil {
		t.Fatalf("seed seller: %v", err)
	}
	fx.catalog.AddGig(model.Gig{ID: 3, SellerID: 1})

	profile, err := fx.facade.SellerProfile(context.Background(), 1)
	if err != nil {
		t.Fatalf("profile returned error: %v", err)
	}
	if profile.User.ID != 1 {
		t.Fatalf("unexpected profile user %+v", profile.User)
	}

	review, err := fx.facade.PostReview(context.Background(), 2, 3, 5, 5, 5, 5, "good")
	if err != nil || review == nil {
		t.Fatalf("unexpected review result: %v err=%v", review, err)
	}

	if err := fx.facade.RecomputeSellerLevel(context.Background(), 1); err != nil {
		t.Fatalf("recompute returned error: %v", err)
	}

	sellers, err := fx.facade.SellersForRecompute(context.Background(), 10)
	if err != nil || len(sellers) != 1 {
		t.Fatalf("unexpected sellers result: %v err=%v", sellers, err)
	}
}
