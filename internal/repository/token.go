package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dexwatch/screener-backend/internal/models"
)

// TokenRepo appends screened token rows to the tokens table. The request
// path only ever writes; the read helpers exist for tooling and tests.
type TokenRepo struct {
	pool *pgxpool.Pool
}

func NewTokenRepo(pool *pgxpool.Pool) *TokenRepo {
	return &TokenRepo{pool: pool}
}

// InsertBatch appends each row as-is. No dedup, no upsert: re-screening
// the same pair produces another row. A failure mid-batch leaves earlier
// rows in place.
func (r *TokenRepo) InsertBatch(ctx context.Context, tokens []models.Token) error {
	if len(tokens) == 0 {
		return nil
	}
	for _, t := range tokens {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO tokens (pair_address, price, liquidity, volume, created_at, chain_id)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			t.PairAddress, t.Price, t.Liquidity, t.Volume, t.CreatedAt, nullable(t.ChainID),
		)
		if err != nil {
			return fmt.Errorf("insert token %s: %w", t.PairAddress, err)
		}
	}
	return nil
}

func (r *TokenRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tokens`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tokens: %w", err)
	}
	return n, nil
}

// Latest returns the most recently inserted rows, newest first.
func (r *TokenRepo) Latest(ctx context.Context, limit int) ([]models.Token, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, pair_address, price, liquidity, volume, created_at, COALESCE(chain_id, '')
		 FROM tokens ORDER BY id DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query latest tokens: %w", err)
	}
	defer rows.Close()

	var out []models.Token
	for rows.Next() {
		var t models.Token
		if err := rows.Scan(&t.ID, &t.PairAddress, &t.Price, &t.Liquidity, &t.Volume, &t.CreatedAt, &t.ChainID); err != nil {
			return nil, fmt.Errorf("scan token: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
