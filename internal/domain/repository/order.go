package repository

import (
	"context"

	"github.com/zervix/marketplace/internal/domain/model"
)

// NewOrder carries the fields persisted when a buyer places an order.
type NewOrder struct {
	BuyerID      int64
	SellerID     int64
	GigID        int64
	TierName     string
	TotalCents   int64
	Requirements []string
}

// OrderRepository describes persistence operations with orders. Transition,
// SubmitDelivery and RequestRevision are atomic: the status update and its
// dependent rows (ledger entry, child record) commit together or not at all.
// All three compare-and-set against the expected current status and return
// ErrConflict when a concurrent writer got there first.
type OrderRepository interface {
	Create(ctx context.Context, order NewOrder) (*model.Order, error)
	GetByID(ctx context.Context, orderID int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	Transition(ctx context.Context, orderID int64, from, to model.OrderStatus) error
	SubmitDelivery(ctx context.Context, orderID int64, from model.OrderStatus, files []string, note string) (*model.Delivery, error)
	RequestRevision(ctx context.Context, orderID int64, request string) (*model.Revision, error)
	ListDeliveries(ctx context.Context, orderID int64) ([]model.Delivery, error)
	ListRevisions(ctx context.Context, orderID int64) ([]model.Revision, error)
}
