package repository

import (
	"context"

	"github.com/zervix/marketplace/internal/domain/model"
)

// UserRepository describes persistence operations for users and the derived
// seller level.
type UserRepository interface {
	Create(ctx context.Context, login, passwordHash, displayName string, isSeller bool) (*model.User, error)
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	SellerStats(ctx context.Context, sellerID int64) (*model.SellerStats, error)
	SetSellerLevel(ctx context.Context, sellerID int64, level model.SellerLevel) error
	ListSellers(ctx context.Context, limit int) ([]model.User, error)
}
