package dto

import "time"

// StartConversationRequest opens (or resolves) a thread with another user.
type StartConversationRequest struct {
	UserID int64 `json:"user_id"`
}

// ConversationResponse is one inbox row.
type ConversationResponse struct {
	ID            int64     `json:"id"`
	OtherUserID   int64     `json:"other_user_id"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
	UnreadCount   int       `json:"unread_count"`
}

// OfferPayload is the structured offer attached to an OFFER message.
type OfferPayload struct {
	PriceCents   int64  `json:"price_cents"`
	DeliveryDays int    `json:"delivery_days"`
	Note         string `json:"note"`
}

// SendMessageRequest describes a message send payload.
type SendMessageRequest struct {
	Content string        `json:"content"`
	Offer   *OfferPayload `json:"offer,omitempty"`
}

// SendMessageResponse returns the new message id.
type SendMessageResponse struct {
	ID int64 `json:"id"`
}

// MessageResponse is one message in a fetched conversation.
type MessageResponse struct {
	ID        int64         `json:"id"`
	SenderID  int64         `json:"sender_id"`
	Kind      string        `json:"kind"`
	Content   string        `json:"content"`
	Offer     *OfferPayload `json:"offer,omitempty"`
	IsRead    bool          `json:"is_read"`
	CreatedAt time.Time     `json:"created_at"`
}
