package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dexwatch/screener-backend/internal/db"
	"github.com/dexwatch/screener-backend/internal/models"
	"github.com/dexwatch/screener-backend/internal/repository"
	"github.com/dexwatch/screener-backend/internal/testutil"
)

func floatPtr(v float64) *float64 { return &v }

func token(addr string, price *float64, liquidity, volume float64, chain string) models.Token {
	return models.Token{
		PairAddress: addr,
		Price:       price,
		Liquidity:   liquidity,
		Volume:      volume,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
		ChainID:     chain,
	}
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	pool := testutil.SetupPool(t)
	ctx := context.Background()

	require.NoError(t, db.EnsureSchema(ctx, pool))
	repo := repository.NewTokenRepo(pool)

	require.NoError(t, repo.InsertBatch(ctx, []models.Token{
		token("A", floatPtr(1.5), 6000, 100, "solana"),
	}))

	// Re-running schema initialization must neither error nor touch rows.
	require.NoError(t, db.EnsureSchema(ctx, pool))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestInsertBatchAndReadBack(t *testing.T) {
	pool := testutil.SetupPool(t)
	ctx := context.Background()
	require.NoError(t, db.EnsureSchema(ctx, pool))
	repo := repository.NewTokenRepo(pool)

	rows := []models.Token{
		token("A", floatPtr(1.5), 6000, 100, "solana"),
		token("B", nil, 7500, 20, "solana"), // null price survives the round trip
	}
	require.NoError(t, repo.InsertBatch(ctx, rows))

	got, err := repo.Latest(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Latest returns newest first.
	assert.Equal(t, "B", got[0].PairAddress)
	assert.Nil(t, got[0].Price)
	assert.Equal(t, "A", got[1].PairAddress)
	require.NotNil(t, got[1].Price)
	assert.Equal(t, 1.5, *got[1].Price)
	assert.Equal(t, 6000.0, got[1].Liquidity)
	assert.Equal(t, "solana", got[1].ChainID)
	assert.NotZero(t, got[1].ID)
}

func TestInsertBatchAllowsDuplicates(t *testing.T) {
	pool := testutil.SetupPool(t)
	ctx := context.Background()
	require.NoError(t, db.EnsureSchema(ctx, pool))
	repo := repository.NewTokenRepo(pool)

	row := token("A", floatPtr(1.5), 6000, 100, "solana")
	require.NoError(t, repo.InsertBatch(ctx, []models.Token{row}))
	require.NoError(t, repo.InsertBatch(ctx, []models.Token{row}))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestInsertBatchSkipsEmptySet(t *testing.T) {
	pool := testutil.SetupPool(t)
	ctx := context.Background()
	require.NoError(t, db.EnsureSchema(ctx, pool))
	repo := repository.NewTokenRepo(pool)

	require.NoError(t, repo.InsertBatch(ctx, nil))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestInsertBatchEmptyChainIsNull(t *testing.T) {
	pool := testutil.SetupPool(t)
	ctx := context.Background()
	require.NoError(t, db.EnsureSchema(ctx, pool))
	repo := repository.NewTokenRepo(pool)

	require.NoError(t, repo.InsertBatch(ctx, []models.Token{
		token("A", floatPtr(1.0), 9000, 5, ""),
	}))

	var isNull bool
	err := pool.QueryRow(ctx, `SELECT chain_id IS NULL FROM tokens WHERE pair_address = 'A'`).Scan(&isNull)
	require.NoError(t, err)
	assert.True(t, isNull)
}
