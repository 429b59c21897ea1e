package model

import "time"

// Gig is a seller's service listing. Catalog data is read-only here: the core
// references price and title when an order is created or displayed but never
// mutates listings.
type Gig struct {
	ID        int64
	SellerID  int64
	Title     string
	Category  string
	CreatedAt time.Time
}

// GigTier is one purchasable package of a gig.
type GigTier struct {
	ID           int64
	GigID        int64
	Name         string
	PriceCents   int64
	DeliveryDays int
	Revisions    int
}
