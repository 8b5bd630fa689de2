package repository

import (
	"context"
	"time"

	"github.com/holiday-promo/api/internal/domain"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, email string) (*domain.Subscription, error)
	FindByEmail(ctx context.Context, email string) (*domain.Subscription, error)
	List(ctx context.Context) ([]domain.Subscription, error)
}

type HealthCheckRepository interface {
	Insert(ctx context.Context, status string, errMsg *string, timestamp time.Time) (string, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
