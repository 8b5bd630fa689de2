package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/holiday-promo/api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{pool: pool}
}

func (r *SubscriptionRepository) Create(ctx context.Context, email string) (*domain.Subscription, error) {
	query := `
		INSERT INTO email_subscriptions (id, email)
		VALUES ($1, $2)
		RETURNING id, email, created_at, updated_at`

	var s domain.Subscription
	err := r.pool.QueryRow(ctx, query, uuid.NewString(), email).Scan(
		&s.ID, &s.Email, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadySubscribed
		}
		return nil, fmt.Errorf("create subscription: %w", err)
	}
	return &s, nil
}

func (r *SubscriptionRepository) FindByEmail(ctx context.Context, email string) (*domain.Subscription, error) {
	query := `SELECT id, email, created_at, updated_at FROM email_subscriptions WHERE email = $1`

	var s domain.Subscription
	err := r.pool.QueryRow(ctx, query, email).Scan(&s.ID, &s.Email, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	return &s, nil
}

func (r *SubscriptionRepository) List(ctx context.Context) ([]domain.Subscription, error) {
	query := `SELECT id, email, created_at, updated_at FROM email_subscriptions ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []domain.Subscription
	for rows.Next() {
		var s domain.Subscription
		if err := rows.Scan(&s.ID, &s.Email, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
