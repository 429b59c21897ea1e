package dto

import "time"

// CreateOrderRequest describes the order placement payload.
type CreateOrderRequest struct {
	GigID        int64    `json:"gig_id"`
	TierName     string   `json:"tier_name"`
	Requirements []string `json:"requirements"`
}

// TransitionRequest carries the requested target status.
type TransitionRequest struct {
	Status string `json:"status"`
}

// DeliveryRequest describes a seller's delivery submission.
type DeliveryRequest struct {
	Files []string `json:"files"`
	Note  string   `json:"note"`
}

// RevisionRequest describes a buyer's rework request.
type RevisionRequest struct {
	Request string `json:"request"`
}

// OrderResponse is the list/detail representation of an order.
type OrderResponse struct {
	ID           int64      `json:"id"`
	BuyerID      int64      `json:"buyer_id"`
	SellerID     int64      `json:"seller_id"`
	GigID        int64      `json:"gig_id"`
	TierName     string     `json:"tier_name"`
	Status       string     `json:"status"`
	TotalCents   int64      `json:"total_cents"`
	Requirements []string   `json:"requirements"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// DeliveryResponse is one delivery child record.
type DeliveryResponse struct {
	ID        int64     `json:"id"`
	Files     []string  `json:"files"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// RevisionResponse is one revision child record.
type RevisionResponse struct {
	ID        int64     `json:"id"`
	Request   string    `json:"request"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityResponse is one ledger entry, newest first in listings.
type ActivityResponse struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderDetailResponse is the full order page payload.
type OrderDetailResponse struct {
	OrderResponse
	Deliveries []DeliveryResponse `json:"deliveries"`
	Revisions  []RevisionResponse `json:"revisions"`
	Activity   []ActivityResponse `json:"activity"`
}
