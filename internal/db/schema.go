package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const createTokensTable = `
CREATE TABLE IF NOT EXISTS tokens (
	id           BIGSERIAL PRIMARY KEY,
	pair_address VARCHAR(255),
	price        DOUBLE PRECISION,
	liquidity    DOUBLE PRECISION,
	volume       DOUBLE PRECISION,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	chain_id     VARCHAR(64)
);
`

// EnsureSchema creates the tokens table if it does not exist. Idempotent:
// safe to run on every startup, never touches existing rows.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, createTokensTable); err != nil {
		return fmt.Errorf("create tokens table: %w", err)
	}
	return nil
}
