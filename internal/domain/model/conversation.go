package model

import "time"

// Conversation is a persistent thread between exactly two users. The pair is
// stored normalized (UserA < UserB) so that lookups are order-independent.
// LastMessage/LastMessageAt mirror the most recently created message and are
// only written together with it.
type Conversation struct {
	ID            int64
	UserA         int64
	UserB         int64
	LastMessage   string
	LastMessageAt time.Time
	CreatedAt     time.Time
}

// HasParticipant reports whether userID is one of the two parties.
func (c Conversation) HasParticipant(userID int64) bool {
	return c.UserA == userID || c.UserB == userID
}

// OtherParticipant returns the party opposite to userID, or 0 when userID is
// not a participant.
func (c Conversation) OtherParticipant(userID int64) int64 {
	switch userID {
	case c.UserA:
		return c.UserB
	case c.UserB:
		return c.UserA
	}
	return 0
}

// NormalizePair orders two user ids so the smaller one comes first.
func NormalizePair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

// ConversationSummary annotates a conversation with the viewing party's
// unread message count.
type ConversationSummary struct {
	Conversation
	UnreadCount int
}

// MessageKind discriminates plain text messages from structured offers.
type MessageKind string

const (
	MessageKindPlain MessageKind = "PLAIN"
	MessageKindOffer MessageKind = "OFFER"
)

// Offer is the structured payload a seller attaches to an offer message.
type Offer struct {
	PriceCents   int64
	DeliveryDays int
	Note         string
}

// Message belongs to a conversation. Content is stored and returned verbatim;
// IsRead is scoped to the recipient and flips exactly once, when any party
// other than the sender fetches the conversation.
type Message struct {
	ID             int64
	ConversationID int64
	SenderID       int64
	Kind           MessageKind
	Content        string
	Offer          *Offer
	IsRead         bool
	CreatedAt      time.Time
}
