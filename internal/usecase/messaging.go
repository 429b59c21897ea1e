package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/zervix/marketplace/internal/domain/errors"
	"github.com/zervix/marketplace/internal/domain/model"
	"github.com/zervix/marketplace/internal/domain/repository"
	"github.com/zervix/marketplace/internal/notify"
)

// MessagingUseCase owns conversations and their message sequences.
type MessagingUseCase struct {
	conversations repository.ConversationRepository
	events        notify.Dispatcher
}

// NewMessagingUseCase constructs MessagingUseCase.
func NewMessagingUseCase(conversations repository.ConversationRepository, events notify.Dispatcher) *MessagingUseCase {
	return &MessagingUseCase{conversations: conversations, events: events}
}

// GetOrCreateConversation resolves the thread between two users, creating it
// on first contact. The pair is unordered: (a, b) and (b, a) are one thread.
func (u *MessagingUseCase) GetOrCreateConversation(ctx context.Context, userID, otherID int64) (*model.Conversation, error) {
	if userID == otherID || otherID <= 0 {
		return nil, domainErrors.ErrValidation
	}
	return u.conversations.GetOrCreate(ctx, userID, otherID)
}

// ListConversations returns the user's threads ordered by latest message,
// each annotated with the caller's unread count.
func (u *MessagingUseCase) ListConversations(ctx context.Context, userID int64) ([]model.ConversationSummary, error) {
	return u.conversations.ListForUser(ctx, userID)
}

// Send appends a message to the conversation. Content is stored verbatim; an
// attached offer marks the message as an OFFER kind. The message row and the
// conversation preview commit together.
func (u *MessagingUseCase) Send(ctx context.Context, conversationID, senderID int64, content string, offer *model.Offer) (*model.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domainErrors.ErrValidation
	}
	if offer != nil && (offer.PriceCents <= 0 || offer.DeliveryDays <= 0) {
		return nil, domainErrors.ErrValidation
	}

	conv, err := u.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(senderID) {
		return nil, domainErrors.ErrValidation
	}

	kind := model.MessageKindPlain
	if offer != nil {
		kind = model.MessageKindOffer
	}

	msg, err := u.conversations.Send(ctx, conversationID, senderID, kind, content, offer)
	if err != nil {
		return nil, err
	}

	u.events.MessageSent(ctx, conversationID, senderID, conv.OtherParticipant(senderID))
	return msg, nil
}

// Fetch returns the conversation's messages oldest-first and, as a side
// effect, marks every unread message from the other party as read. Repeated
// calls without an intervening Send change nothing.
func (u *MessagingUseCase) Fetch(ctx context.Context, conversationID, readerID int64) ([]model.Message, error) {
	conv, err := u.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(readerID) {
		return nil, domainErrors.ErrValidation
	}

	return u.conversations.FetchAndMarkRead(ctx, conversationID, readerID)
}

// UnreadCount reports the user's unread messages in one conversation.
func (u *MessagingUseCase) UnreadCount(ctx context.Context, conversationID, userID int64) (int, error) {
	return u.conversations.UnreadCount(ctx, conversationID, userID)
}
