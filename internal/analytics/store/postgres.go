package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucid-hq/lucid-api/internal/analytics"
)

// Postgres persists enhancement events to the enhancements table and serves
// usage counts from it.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres-backed analytics store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) SaveEnhancement(ctx context.Context, event *analytics.EnhancementCompletedEvent) error {
	query := `
		INSERT INTO enhancements
			(id, user_id, mode, target_model, category, duration_ms, personalization_applied, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := p.pool.Exec(ctx, query,
		event.EnhancementID,
		event.UserID,
		event.Mode,
		event.TargetModel,
		event.Category,
		event.DurationMs,
		event.PersonalizationApplied,
		event.CreatedAt,
	)

	return err
}

func (p *Postgres) CountSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM enhancements
		WHERE user_id = $1 AND created_at >= $2
	`

	var count int64

	err := p.pool.QueryRow(ctx, query, userID, since).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
