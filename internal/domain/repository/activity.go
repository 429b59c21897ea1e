package repository

import (
	"context"

	"github.com/zervix/marketplace/internal/domain/model"
)

// ActivityLogRepository is the append-only audit ledger per order. There are
// no update or delete operations.
type ActivityLogRepository interface {
	Append(ctx context.Context, orderID int64, entryType model.ActivityType, message string) (*model.ActivityLogEntry, error)
	ListByOrder(ctx context.Context, orderID int64) ([]model.ActivityLogEntry, error)
}
