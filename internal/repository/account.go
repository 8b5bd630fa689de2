package repository

import (
	"context"

	"github.com/holiday-promo/api/internal/domain"
)

type AccountRepository interface {
	FindByProviderAccount(ctx context.Context, providerID, accountID string) (*domain.Account, error)
	Create(ctx context.Context, userID, providerID, accountID string) (*domain.Account, error)
}
