package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HealthCheckRepository struct {
	pool *pgxpool.Pool
}

func NewHealthCheckRepository(pool *pgxpool.Pool) *HealthCheckRepository {
	return &HealthCheckRepository{pool: pool}
}

func (r *HealthCheckRepository) Insert(ctx context.Context, status string, errMsg *string, timestamp time.Time) (string, error) {
	id := uuid.NewString()
	query := `
		INSERT INTO health_check_logs (id, status, error, timestamp)
		VALUES ($1, $2, $3, $4)`

	if _, err := r.pool.Exec(ctx, query, id, status, errMsg, timestamp); err != nil {
		return "", fmt.Errorf("insert health check log: %w", err)
	}
	return id, nil
}

func (r *HealthCheckRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM health_check_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old health check logs: %w", err)
	}
	return tag.RowsAffected(), nil
}
