package dto

import "time"

// ReviewRequest describes a buyer's rating payload.
type ReviewRequest struct {
	Rating        int    `json:"rating"`
	Communication int    `json:"communication"`
	Service       int    `json:"service"`
	Recommend     int    `json:"recommend"`
	Comment       string `json:"comment"`
}

// ReviewResponse is one review on a seller page.
type ReviewResponse struct {
	ID        int64     `json:"id"`
	GigID     int64     `json:"gig_id"`
	BuyerID   int64     `json:"buyer_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// GigResponse is one listing on a seller page.
type GigResponse struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

// SellerProfileResponse is the seller page payload.
type SellerProfileResponse struct {
	ID              int64            `json:"id"`
	DisplayName     string           `json:"display_name"`
	SellerLevel     string           `json:"seller_level"`
	MemberSince     time.Time        `json:"member_since"`
	CompletedOrders int              `json:"completed_orders"`
	ReviewCount     int              `json:"review_count"`
	AverageRating   float64          `json:"average_rating"`
	Gigs            []GigResponse    `json:"gigs"`
	Reviews         []ReviewResponse `json:"reviews"`
}
