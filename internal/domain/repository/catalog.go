package repository

import (
	"context"

	"github.com/zervix/marketplace/internal/domain/model"
)

// CatalogRepository is the read-only view of the catalog collaborator: gig and
// tier data referenced when orders are created or displayed.
type CatalogRepository interface {
	GetGig(ctx context.Context, gigID int64) (*model.Gig, error)
	GetTier(ctx context.Context, gigID int64, tierName string) (*model.GigTier, error)
	ListGigsBySeller(ctx context.Context, sellerID int64) ([]model.Gig, error)
}
