package model

import "time"

// SellerLevel is a derived classification summarizing a seller's track record.
type SellerLevel string

const (
	SellerLevelNew      SellerLevel = "NEW"
	SellerLevel1        SellerLevel = "LEVEL_1"
	SellerLevel2        SellerLevel = "LEVEL_2"
	SellerLevelTopRated SellerLevel = "TOP_RATED"
)

// User represents a registered marketplace participant. Sellers additionally
// carry a periodically recomputed level.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	DisplayName  string
	IsSeller     bool
	SellerLevel  SellerLevel
	CreatedAt    time.Time
}

// SellerStats are the aggregates a level recomputation is derived from.
type SellerStats struct {
	CompletedOrders int
	ReviewCount     int
	AverageRating   float64
	MemberSince     time.Time
}

// SellerProfile bundles everything a seller page shows.
type SellerProfile struct {
	User    User
	Stats   SellerStats
	Gigs    []Gig
	Reviews []Review
}

// EvaluateSellerLevel maps track-record aggregates to a level using fixed
// thresholds. The mapping is pure so recomputation is idempotent.
func EvaluateSellerLevel(stats SellerStats, now time.Time) SellerLevel {
	age := now.Sub(stats.MemberSince)
	switch {
	case stats.CompletedOrders >= 50 && stats.AverageRating >= 4.8 && age >= 180*24*time.Hour:
		return SellerLevelTopRated
	case stats.CompletedOrders >= 20 && stats.AverageRating >= 4.5 && age >= 90*24*time.Hour:
		return SellerLevel2
	case stats.CompletedOrders >= 5 && stats.AverageRating >= 4.0 && age >= 30*24*time.Hour:
		return SellerLevel1
	}
	return SellerLevelNew
}
