package record

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"idcheck/internal/identity/models"
)

// PostgresStore queries the committed accounts table directly. Rows without
// a confirmation timestamp are invisible on purpose: pending registrations
// belong to the authoritative tier.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Name() string { return "records" }

func (s *PostgresStore) Exists(ctx context.Context, kind models.IdentityKind, value string) (bool, error) {
	var query string
	switch kind {
	case models.KindPhone:
		query = `SELECT EXISTS (
			SELECT 1 FROM accounts
			WHERE phone_e164 = $1 AND confirmed_at IS NOT NULL)`
	case models.KindName:
		query = `SELECT EXISTS (
			SELECT 1 FROM accounts
			WHERE lower(first_name || ' ' || last_name) = lower($1)
			  AND confirmed_at IS NOT NULL)`
	default:
		query = `SELECT EXISTS (
			SELECT 1 FROM accounts
			WHERE lower(email) = lower($1) AND confirmed_at IS NOT NULL)`
	}

	var exists bool
	if err := s.pool.QueryRow(ctx, query, value).Scan(&exists); err != nil {
		return false, fmt.Errorf("record exists (%s): %w", kind, err)
	}
	return exists, nil
}
