package repository

import (
	"context"

	"github.com/zervix/marketplace/internal/domain/model"
)

// ConversationRepository owns conversation metadata and the message sequence.
// Send atomically appends the message and refreshes the parent conversation's
// preview; FetchAndMarkRead atomically flips unread flags for the reader and
// returns the full sequence oldest-first.
type ConversationRepository interface {
	GetOrCreate(ctx context.Context, userA, userB int64) (*model.Conversation, error)
	GetByID(ctx context.Context, conversationID int64) (*model.Conversation, error)
	ListForUser(ctx context.Context, userID int64) ([]model.ConversationSummary, error)
	Send(ctx context.Context, conversationID, senderID int64, kind model.MessageKind, content string, offer *model.Offer) (*model.Message, error)
	FetchAndMarkRead(ctx context.Context, conversationID, readerID int64) ([]model.Message, error)
	UnreadCount(ctx context.Context, conversationID, userID int64) (int, error)
}
