package test

import (
	"context"
	"sync"

	"github.com/zervix/marketplace/internal/domain/model"
)

// StatusEvent stores one OrderStatusChanged notification.
type StatusEvent struct {
	OrderID int64
	Status  model.OrderStatus
}

// MessageEvent stores one MessageSent notification.
type MessageEvent struct {
	ConversationID int64
	SenderID       int64
	RecipientID    int64
}

// DispatcherStub records emitted events for assertions.
type DispatcherStub struct {
	mu            sync.Mutex
	StatusEvents  []StatusEvent
	MessageEvents []MessageEvent
}

// OrderStatusChanged records the event.
func (d *DispatcherStub) OrderStatusChanged(ctx context.Context, orderID int64, status model.OrderStatus) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.StatusEvents = append(d.StatusEvents, StatusEvent{OrderID: orderID, Status: status})
}

// MessageSent records the event.
func (d *DispatcherStub) MessageSent(ctx context.Context, conversationID, senderID, recipientID int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.MessageEvents = append(d.MessageEvents, MessageEvent{ConversationID: conversationID, SenderID: senderID, RecipientID: recipientID})
}
