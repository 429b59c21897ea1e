package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/zervix/marketplace/internal/domain/errors"
	"github.com/zervix/marketplace/internal/domain/model"
	"github.com/zervix/marketplace/internal/domain/repository"
	"github.com/zervix/marketplace/internal/notify"
)

// transitionRole restricts who may request each target status. DELIVERED is
// also reachable through SubmitDelivery, which performs its own actor check.
var transitionRole = map[model.OrderStatus]func(order *model.Order, actorID int64) bool{
	model.OrderStatusActive:    func(o *model.Order, actor int64) bool { return actor == o.SellerID },
	model.OrderStatusDelivered: func(o *model.Order, actor int64) bool { return actor == o.SellerID },
	model.OrderStatusRevision:  func(o *model.Order, actor int64) bool { return actor == o.BuyerID },
	model.OrderStatusCompleted: func(o *model.Order, actor int64) bool { return actor == o.BuyerID },
	model.OrderStatusCancelled: func(o *model.Order, actor int64) bool { return actor == o.BuyerID || actor == o.SellerID },
	model.OrderStatusDisputed:  func(o *model.Order, actor int64) bool { return actor == o.BuyerID || actor == o.SellerID },
}

// OrderUseCase owns the order state machine and its audit ledger.
type OrderUseCase struct {
	orders   repository.OrderRepository
	activity repository.ActivityLogRepository
	catalog  repository.CatalogRepository
	events   notify.Dispatcher
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, activity repository.ActivityLogRepository, catalog repository.CatalogRepository, events notify.Dispatcher) *OrderUseCase {
	return &OrderUseCase{orders: orders, activity: activity, catalog: catalog, events: events}
}

// Create places a PENDING order for a gig tier, priced from the catalog.
func (u *OrderUseCase) Create(ctx context.Context, buyerID, gigID int64, tierName string, requirements []string) (*model.Order, error) {
	if strings.TrimSpace(tierName) == "" {
		return nil, domainErrors.ErrValidation
	}

	gig, err := u.catalog.GetGig(ctx, gigID)
	if err != nil {
		return nil, err
	}
	if gig.SellerID == buyerID {
		return nil, domainErrors.ErrValidation
	}

	tier, err := u.catalog.GetTier(ctx, gigID, tierName)
	if err != nil {
		return nil, err
	}

	return u.orders.Create(ctx, repository.NewOrder{
		BuyerID:      buyerID,
		SellerID:     gig.SellerID,
		GigID:        gigID,
		TierName:     tier.Name,
		TotalCents:   tier.PriceCents,
		Requirements: requirements,
	})
}

// Get returns the order with its deliveries, revisions and ledger.
func (u *OrderUseCase) Get(ctx context.Context, orderID int64) (*model.OrderDetail, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	deliveries, err := u.orders.ListDeliveries(ctx, orderID)
	if err != nil {
		return nil, err
	}

	revisions, err := u.orders.ListRevisions(ctx, orderID)
	if err != nil {
		return nil, err
	}

	activity, err := u.activity.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return &model.OrderDetail{
		Order:      *order,
		Deliveries: deliveries,
		Revisions:  revisions,
		Activity:   activity,
	}, nil
}

// ListByUser returns orders the user participates in, newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// Transition moves an order along the status graph on behalf of actorID. The
// status write and its STATUS_CHANGE ledger entry commit atomically; a failed
// transition leaves both untouched.
func (u *OrderUseCase) Transition(ctx context.Context, orderID int64, next model.OrderStatus, actorID int64) error {
	if !model.ValidStatus(next) {
		return domainErrors.ErrValidation
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	allowed, ok := transitionRole[next]
	if !ok || !allowed(order, actorID) {
		return domainErrors.ErrValidation
	}

	if !model.CanTransition(order.Status, next) {
		return domainErrors.ErrInvalidTransition
	}

	if err := u.orders.Transition(ctx, orderID, order.Status, next); err != nil {
		return err
	}

	u.events.OrderStatusChanged(ctx, orderID, next)
	return nil
}

// SubmitDelivery records the seller's delivery and moves the order to
// DELIVERED in the same transaction.
func (u *OrderUseCase) SubmitDelivery(ctx context.Context, orderID, actorID int64, files []string, note string) (*model.Delivery, error) {
	if len(files) == 0 {
		return nil, domainErrors.ErrValidation
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if actorID != order.SellerID {
		return nil, domainErrors.ErrValidation
	}
	if !model.CanTransition(order.Status, model.OrderStatusDelivered) {
		return nil, domainErrors.ErrInvalidTransition
	}

	delivery, err := u.orders.SubmitDelivery(ctx, orderID, order.Status, files, note)
	if err != nil {
		return nil, err
	}

	u.events.OrderStatusChanged(ctx, orderID, model.OrderStatusDelivered)
	return delivery, nil
}

// RequestRevision records the buyer's rework request and moves the order from
// DELIVERED back into the revision loop.
func (u *OrderUseCase) RequestRevision(ctx context.Context, orderID, actorID int64, request string) (*model.Revision, error) {
	if strings.TrimSpace(request) == "" {
		return nil, domainErrors.ErrValidation
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if actorID != order.BuyerID {
		return nil, domainErrors.ErrValidation
	}
	if !model.CanTransition(order.Status, model.OrderStatusRevision) {
		return nil, domainErrors.ErrInvalidTransition
	}

	revision, err := u.orders.RequestRevision(ctx, orderID, request)
	if err != nil {
		return nil, err
	}

	u.events.OrderStatusChanged(ctx, orderID, model.OrderStatusRevision)
	return revision, nil
}
