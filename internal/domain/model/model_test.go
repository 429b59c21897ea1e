package model

import (
	"testing"
	"time"
)

func TestCanTransitionForwardOnly(t *testing.T) {
	cases := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{"pending to active", OrderStatusPending, OrderStatusActive, true},
		{"active to delivered", OrderStatusActive, OrderStatusDelivered, true},
		{"delivered to completed", OrderStatusDelivered, OrderStatusCompleted, true},
		{"delivered to revision", OrderStatusDelivered, OrderStatusRevision, true},
		{"revision back to delivered", OrderStatusRevision, OrderStatusDelivered, true},
		{"pending to cancelled", OrderStatusPending, OrderStatusCancelled, true},
		{"active to disputed", OrderStatusActive, OrderStatusDisputed, true},
		{"disputed to completed", OrderStatusDisputed, OrderStatusCompleted, true},
		{"completed to active", OrderStatusCompleted, OrderStatusActive, false},
		{"cancelled to active", OrderStatusCancelled, OrderStatusActive, false},
		{"active back to pending", OrderStatusActive, OrderStatusPending, false},
		{"delivered back to pending", OrderStatusDelivered, OrderStatusPending, false},
		{"pending straight to completed", OrderStatusPending, OrderStatusCompleted, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanTransition(tc.from, tc.to); got != tc.want {
				t.Fatalf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestNothingReentersPending(t *testing.T) {
	for from := range transitions {
		if CanTransition(from, OrderStatusPending) {
			t.Fatalf("transition %s -> PENDING must not be allowed", from)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if !IsTerminal(OrderStatusCompleted) || !IsTerminal(OrderStatusCancelled) {
		t.Fatal("COMPLETED and CANCELLED must be terminal")
	}
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusActive, OrderStatusDelivered, OrderStatusRevision, OrderStatusDisputed} {
		if IsTerminal(s) {
			t.Fatalf("%s must not be terminal", s)
		}
	}
}

func TestValidStatus(t *testing.T) {
	if !ValidStatus(OrderStatusRevision) {
		t.Fatal("REVISION is a known status")
	}
	if ValidStatus(OrderStatus("SHIPPED")) {
		t.Fatal("unknown status must be rejected")
	}
}

func TestNormalizePair(t *testing.T) {
	a, b := NormalizePair(7, 3)
	if a != 3 || b != 7 {
		t.Fatalf("expected (3, 7), got (%d, %d)", a, b)
	}
	a, b = NormalizePair(3, 7)
	if a != 3 || b != 7 {
		t.Fatalf("expected (3, 7), got (%d, %d)", a, b)
	}
}

func TestConversationParticipants(t *testing.T) {
	c := Conversation{UserA: 1, UserB: 2}
	if !c.HasParticipant(1) || !c.HasParticipant(2) {
		t.Fatal("both parties are participants")
	}
	if c.HasParticipant(3) {
		t.Fatal("third user is not a participant")
	}
	if got := c.OtherParticipant(1); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := c.OtherParticipant(9); got != 0 {
		t.Fatalf("expected 0 for non-participant, got %d", got)
	}
}

func TestNetAmountCents(t *testing.T) {
	if got := NetAmountCents(95000); got != 76000 {
		t.Fatalf("expected 76000, got %d", got)
	}
	if got := NetAmountCents(0); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestEvaluateSellerLevel(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name  string
		stats SellerStats
		want  SellerLevel
	}{
		{"fresh seller", SellerStats{MemberSince: now}, SellerLevelNew},
		{"orders but young account", SellerStats{CompletedOrders: 10, AverageRating: 4.9, MemberSince: now.Add(-5 * 24 * time.Hour)}, SellerLevelNew},
		{"level one", SellerStats{CompletedOrders: 5, AverageRating: 4.0, MemberSince: now.Add(-31 * 24 * time.Hour)}, SellerLevel1},
		{"level two", SellerStats{CompletedOrders: 20, AverageRating: 4.5, MemberSince: now.Add(-91 * 24 * time.Hour)}, SellerLevel2},
		{"top rated", SellerStats{CompletedOrders: 50, AverageRating: 4.8, MemberSince: now.Add(-181 * 24 * time.Hour)}, SellerLevelTopRated},
		{"volume without rating", SellerStats{CompletedOrders: 60, AverageRating: 3.2, MemberSince: now.Add(-365 * 24 * time.Hour)}, SellerLevelNew},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EvaluateSellerLevel(tc.stats, now); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestValidRating(t *testing.T) {
	for _, r := range []int{1, 3, 5} {
		if !ValidRating(r) {
			t.Fatalf("rating %d must be valid", r)
		}
	}
	for _, r := range []int{0, 6, -1} {
		if ValidRating(r) {
			t.Fatalf("rating %d must be invalid", r)
		}
	}
}
