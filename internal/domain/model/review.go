package model

import "time"

// Review is a buyer's write-once rating of a gig: an overall 1-5 rating plus
// three sub-ratings on the same scale.
type Review struct {
	ID            int64
	GigID         int64
	BuyerID       int64
	Rating        int
	Communication int
	Service       int
	Recommend     int
	Comment       string
	CreatedAt     time.Time
}

// ValidRating reports whether r is on the 1-5 scale.
func ValidRating(r int) bool {
	return r >= 1 && r <= 5
}
