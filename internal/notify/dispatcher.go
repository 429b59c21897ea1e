package notify

import (
	"context"
	"log/slog"

	"github.com/zervix/marketplace/internal/domain/model"
)

// Dispatcher receives the events the core emits after a state change commits.
// The core only triggers; building and delivering user-facing notifications is
// the dispatcher's concern. Implementations must not block.
type Dispatcher interface {
	OrderStatusChanged(ctx context.Context, orderID int64, status model.OrderStatus)
	MessageSent(ctx context.Context, conversationID, senderID, recipientID int64)
}

// LogDispatcher records events to the structured log. It stands in for an
// external notification service.
type LogDispatcher struct {
	logger *slog.Logger
}

// NewLogDispatcher constructs LogDispatcher.
func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) OrderStatusChanged(ctx context.Context, orderID int64, status model.OrderStatus) {
	d.logger.Info("order status changed",
		slog.Int64("order_id", orderID),
		slog.String("status", string(status)),
	)
}

func (d *LogDispatcher) MessageSent(ctx context.Context, conversationID, senderID, recipientID int64) {
	d.logger.Info("message sent",
		slog.Int64("conversation_id", conversationID),
		slog.Int64("sender_id", senderID),
		slog.Int64("recipient_id", recipientID),
	)
}
