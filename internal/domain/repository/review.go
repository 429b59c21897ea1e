package repository

import (
	"context"

	"github.com/zervix/marketplace/internal/domain/model"
)

// ReviewRepository stores write-once gig reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review model.Review) (*model.Review, error)
	ListBySeller(ctx context.Context, sellerID int64, limit int) ([]model.Review, error)
}
