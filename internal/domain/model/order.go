package model

import "time"

// OrderStatus describes the lifecycle stage of a purchased engagement.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusActive    OrderStatus = "ACTIVE"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusRevision  OrderStatus = "REVISION"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusDisputed  OrderStatus = "DISPUTED"
)

// transitions is the forward-only status graph. The DELIVERED/REVISION loop
// models iterative delivery; DISPUTED is resolved externally to COMPLETED or
// CANCELLED; nothing leaves COMPLETED or CANCELLED.
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusActive, OrderStatusCancelled, OrderStatusDisputed},
	OrderStatusActive:    {OrderStatusDelivered, OrderStatusCancelled, OrderStatusDisputed},
	OrderStatusDelivered: {OrderStatusRevision, OrderStatusCompleted, OrderStatusCancelled, OrderStatusDisputed},
	OrderStatusRevision:  {OrderStatusDelivered, OrderStatusCancelled, OrderStatusDisputed},
	OrderStatusDisputed:  {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted: nil,
	OrderStatusCancelled: nil,
}

// CanTransition reports whether the status graph permits moving from one
// status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are accepted from status.
func IsTerminal(status OrderStatus) bool {
	return status == OrderStatusCompleted || status == OrderStatusCancelled
}

// ValidStatus reports whether status is a known order status.
func ValidStatus(status OrderStatus) bool {
	_, ok := transitions[status]
	return ok
}

// Order is a buyer's purchase of a seller's service at a specific tier.
// Monetary amounts are integer cents.
type Order struct {
	ID           int64
	BuyerID      int64
	SellerID     int64
	GigID        int64
	TierName     string
	Status       OrderStatus
	TotalCents   int64
	Requirements []string
	CreatedAt    time.Time
	CompletedAt  *time.Time
}

// Delivery is an append-only child record carrying files a seller submitted.
type Delivery struct {
	ID        int64
	OrderID   int64
	Files     []string
	Note      string
	CreatedAt time.Time
}

// Revision is an append-only child record carrying a buyer's rework request.
type Revision struct {
	ID        int64
	OrderID   int64
	Request   string
	CreatedAt time.Time
}

// OrderDetail bundles an order with its child records and audit trail.
type OrderDetail struct {
	Order      Order
	Deliveries []Delivery
	Revisions  []Revision
	Activity   []ActivityLogEntry
}
