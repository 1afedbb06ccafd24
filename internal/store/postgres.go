package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucid-hq/lucid-api/internal/auth"
)

// PostgresAccounts resolves API tokens to accounts. Implements
// auth.Authenticator.
type PostgresAccounts struct {
	pool *pgxpool.Pool
}

// NewPostgresAccounts creates a Postgres-backed account store.
func NewPostgresAccounts(pool *pgxpool.Pool) *PostgresAccounts {
	return &PostgresAccounts{pool: pool}
}

func (p *PostgresAccounts) Authenticate(ctx context.Context, token string) (*auth.User, error) {
	query := `
		SELECT u.id, u.email, u.plan
		FROM api_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE t.token = $1
		  AND (t.expires_at IS NULL OR t.expires_at > now())
	`

	var user auth.User

	err := p.pool.QueryRow(ctx, query, token).Scan(&user.ID, &user.Email, &user.Plan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrInvalidToken
		}

		return nil, err
	}

	return &user, nil
}
