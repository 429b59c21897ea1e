package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/zervix/marketplace/internal/domain/errors"
	"github.com/zervix/marketplace/internal/domain/model"
	testhelpers "github.com/zervix/marketplace/internal/test"
)

func newOrderUseCase() (*OrderUseCase, *testhelpers.OrderRepositoryStub, *testhelpers.ActivityLogRepositoryStub, *testhelpers.CatalogRepositoryStub, *testhelpers.DispatcherStub) {
	orders := &testhelpers.OrderRepositoryStub{}
	activity := &testhelpers.ActivityLogRepositoryStub{}
	catalog := testhelpers.NewCatalogRepositoryStub()
	events := &testhelpers.DispatcherStub{}
	return NewOrderUseCase(orders, activity, catalog, events), orders, activity, catalog, events
}

func TestOrderCreatePricesFromCatalog(t *testing.T) {
	uc, orders, _, catalog, _ := newOrderUseCase()
	catalog.AddGig(
		model.Gig{ID: 5, SellerID: 2, Title: "logo design"},
		model.GigTier{ID: 1, GigID: 5, Name: "standard", PriceCents: 95000, DeliveryDays: 3},
	)

	order, err := uc.Create(context.Background(), 1, 5, "standard", []string{"brand brief"})
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if order.Status != model.OrderStatusPending {
		t.Fatalf("expected pending order, got %s", order.Status)
	}
	if order.TotalCents != 95000 {
		t.Fatalf("expected total 95000, got %d", order.TotalCents)
	}
	if order.SellerID != 2 {
		t.Fatalf("expected seller from gig, got %d", order.SellerID)
	}
	if len(orders.Created) != 1 {
		t.Fatalf("expected one create call, got %d", len(orders.Created))
	}
}

func TestOrderCreateRejectsOwnGig(t *testing.T) {
	uc, _, _, catalog, _ := newOrderUseCase()
	catalog.AddGig(
		model.Gig{ID: 5, SellerID: 2},
		model.GigTier{GigID: 5, Name: "basic", PriceCents: 100},
	)

	if _, err := uc.Create(context.Background(), 2, 5, "basic", nil); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for buying own gig, got %v", err)
	}
}

func TestOrderCreateUnknownGigOrTier(t *testing.T) {
	uc, _, _, catalog, _ := newOrderUseCase()
	if _, err := uc.Create(context.Background(), 1, 99, "basic", nil); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown gig, got %v", err)
	}

	catalog.AddGig(model.Gig{ID: 5, SellerID: 2})
	if _, err := uc.Create(context.Background(), 1, 5, "premium", nil); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown tier, got %v", err)
	}
}

func TestOrderTransitionHappyPath(t *testing.T) {
	uc, orders, _, _, events := newOrderUseCase()
	orders.Orders = []model.Order{{ID: 1, BuyerID: 10, SellerID: 20, Status: model.OrderStatusPending}}

	if err := uc.Transition(context.Background(), 1, model.OrderStatusActive, 20); err != nil {
		t.Fatalf("transition returned error: %v", err)
	}
	if len(orders.Transitions) != 1 {
		t.Fatalf("expected one transition call, got %d", len(orders.Transitions))
	}
	call := orders.Transitions[0]
	if call.From != model.OrderStatusPending || call.To != model.OrderStatusActive {
		t.Fatalf("unexpected transition %s -> %s", call.From, call.To)
	}
	if len(events.StatusEvents) != 1 || events.StatusEvents[0].Status != model.OrderStatusActive {
		t.Fatalf("expected status changed event, got %+v", events.StatusEvents)
	}
}

func TestOrderTransitionRejectsInvalidMoves(t *testing.T) {
	uc, orders, _, _, events := newOrderUseCase()
	orders.Orders = []model.Order{
		{ID: 1, BuyerID: 10, SellerID: 20, Status: model.OrderStatusCompleted},
		{ID: 2, BuyerID: 10, SellerID: 20, Status: model.OrderStatusPending},
	}

	if err := uc.Transition(context.Background(), 1, model.OrderStatusActive, 20); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition from terminal status, got %v", err)
	}
	if err := uc.Transition(context.Background(), 2, model.OrderStatusCompleted, 10); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition for pending to completed, got %v", err)
	}
	if err := uc.Transition(context.Background(), 2, "SHIPPED", 10); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
	if len(orders.Transitions) != 0 {
		t.Fatalf("expected no transition calls, got %d", len(orders.Transitions))
	}
	if len(events.StatusEvents) != 0 {
		t.Fatalf("expected no events, got %+v", events.StatusEvents)
	}
}

func TestOrderTransitionEnforcesActorRole(t *testing.T) {
	uc, orders, _, _, _ := newOrderUseCase()
	orders.Orders = []model.Order{{ID: 1, BuyerID: 10, SellerID: 20, Status: model.OrderStatusPending}}

	if err := uc.Transition(context.Background(), 1, model.OrderStatusActive, 10); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error when buyer accepts order, got %v", err)
	}

	orders.Orders[0].Status = model.OrderStatusDelivered
	if err := uc.Transition(context.Background(), 1, model.OrderStatusCompleted, 20); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error when seller completes order, got %v", err)
	}
	if err := uc.Transition(context.Background(), 1, model.OrderStatusCompleted, 77); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for outsider, got %v", err)
	}
}

func TestOrderTransitionPropagatesConflict(t *testing.T) {
	uc, orders, _, _, events := newOrderUseCase()
	orders.Orders = []model.Order{{ID: 1, BuyerID: 10, SellerID: 20, Status: model.OrderStatusPending}}
	orders.TransitionFn = func(context.Context, int64, model.OrderStatus, model.OrderStatus) error {
		return domainErrors.ErrConflict
	}

	if err := uc.Transition(context.Background(), 1, model.OrderStatusActive, 20); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if len(events.StatusEvents) != 0 {
		t.Fatalf("expected no event on failed transition")
	}
}

func TestSubmitDelivery(t *testing.T) {
	uc, orders, _, _, events := newOrderUseCase()
	orders.Orders = []model.Order{{ID: 1, BuyerID: 10, SellerID: 20, Status: model.OrderStatusActive}}

	delivery, err := uc.SubmitDelivery(context.Background(), 1, 20, []string{"final.zip"}, "done")
	if err != nil {
		t.Fatalf("submit delivery returned error: %v", err)
	}
	if delivery.OrderID != 1 || len(delivery.Files) != 1 {
		t.Fatalf("unexpected delivery %+v", delivery)
	}
	if len(events.StatusEvents) != 1 || events.StatusEvents[0].Status != model.OrderStatusDelivered {
		t.Fatalf("expected delivered event, got %+v", events.StatusEvents)
	}

	if _, err := uc.SubmitDelivery(context.Background(), 1, 20, nil, ""); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for empty files, got %v", err)
	}
	if _, err := uc.SubmitDelivery(context.Background(), 1, 10, []string{"f"}, ""); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for buyer delivering, got %v", err)
	}

	orders.Orders[0].Status = model.OrderStatusPending
	if _, err := uc.SubmitDelivery(context.Background(), 1, 20, []string{"f"}, ""); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition for pending order, got %v", err)
	}
}

func TestRequestRevision(t *testing.T) {
	uc, orders, _, _, events := newOrderUseCase()
	orders.Orders = []model.Order{{ID: 1, BuyerID: 10, SellerID: 20, Status: model.OrderStatusDelivered}}

	revision, err := uc.RequestRevision(context.Background(), 1, 10, "wrong color")
	if err != nil {
		t.Fatalf("request revision returned error: %v", err)
	}
	if revision.Request != "wrong color" {
		t.Fatalf("unexpected revision %+v", revision)
	}
	if len(events.StatusEvents) != 1 || events.StatusEvents[0].Status != model.OrderStatusRevision {
		t.Fatalf("expected revision event, got %+v", events.StatusEvents)
	}

	if _, err := uc.RequestRevision(context.Background(), 1, 10, "  "); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for blank request, got %v", err)
	}
	if _, err := uc.RequestRevision(context.Background(), 1, 20, "again"); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for seller requesting, got %v", err)
	}

	orders.Orders[0].Status = model.OrderStatusActive
	if _, err := uc.RequestRevision(context.Background(), 1, 10, "early"); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition before delivery, got %v", err)
	}
}

func TestOrderGetComposesDetail(t *testing.T) {
	uc, orders, activity, _, _ := newOrderUseCase()
	orders.Orders = []model.Order{{ID: 1, BuyerID: 10, SellerID: 20, Status: model.OrderStatusDelivered}}
	orders.Deliveries = []model.Delivery{{ID: 1, OrderID: 1, Files: []string{"v1.zip"}}}
	orders.Revisions = []model.Revision{{ID: 1, OrderID: 1, Request: "tweak"}}
	activity.Entries = []model.ActivityLogEntry{
		{ID: 1, OrderID: 1, Type: model.ActivityOrderCreated},
		{ID: 2, OrderID: 1, Type: model.ActivityStatusChange, Message: "Order status updated to ACTIVE"},
	}

	detail, err := uc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("get returned error: %v", err)
	}
	if len(detail.Deliveries) != 1 || len(detail.Revisions) != 1 || len(detail.Activity) != 2 {
		t.Fatalf("unexpected detail %+v", detail)
	}

	if _, err := uc.Get(context.Background(), 99); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
