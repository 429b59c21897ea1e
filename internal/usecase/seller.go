package usecase

import (
	"context"
	"log/slog"
	"time"

	domainErrors "github.com/zervix/marketplace/internal/domain/errors"
	"github.com/zervix/marketplace/internal/domain/model"
	"github.com/zervix/marketplace/internal/domain/repository"
)

const recentReviewsLimit = 20

// SellerUseCase derives seller levels from track-record aggregates and serves
// seller profiles.
type SellerUseCase struct {
	users   repository.UserRepository
	catalog repository.CatalogRepository
	reviews repository.ReviewRepository
	logger  *slog.Logger
}

// NewSellerUseCase constructs SellerUseCase.
func NewSellerUseCase(users repository.UserRepository, catalog repository.CatalogRepository, reviews repository.ReviewRepository, logger *slog.Logger) *SellerUseCase {
	return &SellerUseCase{users: users, catalog: catalog, reviews: reviews, logger: logger}
}

// Recompute re-derives the seller's level from current aggregates and
// persists it. Safe to invoke concurrently with orders completing: the next
// recomputation picks up the newer counts.
func (u *SellerUseCase) Recompute(ctx context.Context, sellerID int64) (model.SellerLevel, error) {
	stats, err := u.users.SellerStats(ctx, sellerID)
	if err != nil {
		return "", err
	}

	level := model.EvaluateSellerLevel(*stats, time.Now())
	if err := u.users.SetSellerLevel(ctx, sellerID, level); err != nil {
		return "", err
	}
	return level, nil
}

// Profile returns the seller page data, recomputing the level best-effort
// first. A failed recomputation is logged and retried on the next read.
func (u *SellerUseCase) Profile(ctx context.Context, sellerID int64) (*model.SellerProfile, error) {
	user, err := u.users.GetByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if !user.IsSeller {
		return nil, domainErrors.ErrNotFound
	}

	if level, err := u.Recompute(ctx, sellerID); err != nil {
		u.logger.Warn("seller level recompute failed",
			slog.Int64("seller_id", sellerID),
			slog.String("error", err.Error()),
		)
	} else {
		user.SellerLevel = level
	}

	stats, err := u.users.SellerStats(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	gigs, err := u.catalog.ListGigsBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	reviews, err := u.reviews.ListBySeller(ctx, sellerID, recentReviewsLimit)
	if err != nil {
		return nil, err
	}

	return &model.SellerProfile{
		User:    *user,
		Stats:   *stats,
		Gigs:    gigs,
		Reviews: reviews,
	}, nil
}

// CreateReview stores a buyer's rating of a gig.
func (u *SellerUseCase) CreateReview(ctx context.Context, buyerID, gigID int64, rating, communication, service, recommend int, comment string) (*model.Review, error) {
	for _, r := range []int{rating, communication, service, recommend} {
		if !model.ValidRating(r) {
			return nil, domainErrors.ErrValidation
		}
	}

	if _, err := u.catalog.GetGig(ctx, gigID); err != nil {
		return nil, err
	}

	return u.reviews.Create(ctx, model.Review{
		GigID:         gigID,
		BuyerID:       buyerID,
		Rating:        rating,
		Communication: communication,
		Service:       service,
		Recommend:     recommend,
		Comment:       comment,
	})
}

// SellersForRecompute returns sellers for the periodic level refresh.
func (u *SellerUseCase) SellersForRecompute(ctx context.Context, limit int) ([]model.User, error) {
	return u.users.ListSellers(ctx, limit)
}
