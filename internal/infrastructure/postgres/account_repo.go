package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/holiday-promo/api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) FindByProviderAccount(ctx context.Context, providerID, accountID string) (*domain.Account, error) {
	query := `
		SELECT id, user_id, provider_id, account_id, created_at
		FROM accounts
		WHERE provider_id = $1 AND account_id = $2`

	var a domain.Account
	err := r.pool.QueryRow(ctx, query, providerID, accountID).Scan(
		&a.ID, &a.UserID, &a.ProviderID, &a.AccountID, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return &a, nil
}

func (r *AccountRepository) Create(ctx context.Context, userID, providerID, accountID string) (*domain.Account, error) {
	query := `
		INSERT INTO accounts (id, user_id, provider_id, account_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, provider_id, account_id, created_at`

	var a domain.Account
	err := r.pool.QueryRow(ctx, query, uuid.NewString(), userID, providerID, accountID).Scan(
		&a.ID, &a.UserID, &a.ProviderID, &a.AccountID, &a.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return &a, nil
}
