package repository

import (
	"context"
	"time"

	"github.com/holiday-promo/api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string, role domain.Role) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindOrCreate(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, id, name, email string) (*domain.User, error)

	// DeleteCascade removes the user and every row it owns (linked
	// accounts, magic tokens) in a single transaction. Deleting an
	// unknown ID is not an error.
	DeleteCascade(ctx context.Context, id string) error

	CreateMagicToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	ClaimMagicToken(ctx context.Context, tokenHash string) (*domain.MagicToken, error)
	DeleteExpiredMagicTokens(ctx context.Context) (int64, error)
}
