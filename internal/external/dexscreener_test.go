package external_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dexwatch/screener-backend/internal/external"
)

func TestFetchPairs_Success(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/solana", r.URL.Path)
		w.Write([]byte(`{"pairs":[{"pairAddress":"A","priceUsd":"1.5","liquidity":{"usd":6000},"volume":{"h24":100}}]}`))
	}))
	defer upstream.Close()

	client := external.NewDexScreenerClient(upstream.URL, "")
	pairs, err := client.FetchPairs(context.Background(), "solana")

	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "A", pairs[0].PairAddress)
	assert.Equal(t, "1.5", pairs[0].PriceUsd)
	require.NotNil(t, pairs[0].Liquidity)
	assert.Equal(t, 6000.0, pairs[0].Liquidity.USD)
	require.NotNil(t, pairs[0].Volume)
	assert.Equal(t, 100.0, pairs[0].Volume.H24)
}

func TestFetchPairs_TokensFieldAccepted(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tokens":[{"pairAddress":"B","priceUsd":"2.0"}]}`))
	}))
	defer upstream.Close()

	client := external.NewDexScreenerClient(upstream.URL, "")
	pairs, err := client.FetchPairs(context.Background(), "solana")

	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "B", pairs[0].PairAddress)
}

func TestFetchPairs_EmptyListIsValid(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"pairs":[]}`))
	}))
	defer upstream.Close()

	client := external.NewDexScreenerClient(upstream.URL, "")
	pairs, err := client.FetchPairs(context.Background(), "solana")

	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestFetchPairs_MissingListField(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"schemaVersion":"1.0.0"}`))
	}))
	defer upstream.Close()

	client := external.NewDexScreenerClient(upstream.URL, "")
	_, err := client.FetchPairs(context.Background(), "solana")

	assert.ErrorIs(t, err, external.ErrUnavailable)
}

func TestFetchPairs_NonSuccessStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream overloaded", http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	client := external.NewDexScreenerClient(upstream.URL, "")
	_, err := client.FetchPairs(context.Background(), "solana")

	assert.ErrorIs(t, err, external.ErrUnavailable)
}

func TestFetchPairs_NetworkError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // refuse connections

	client := external.NewDexScreenerClient(upstream.URL, "")
	_, err := client.FetchPairs(context.Background(), "solana")

	assert.ErrorIs(t, err, external.ErrUnavailable)
}

func TestFetchPairs_BearerForwarded(t *testing.T) {
	var gotAuth string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"pairs":[]}`))
	}))
	defer upstream.Close()

	client := external.NewDexScreenerClient(upstream.URL, "sk-test-123")
	_, err := client.FetchPairs(context.Background(), "solana")

	require.NoError(t, err)
	assert.Equal(t, "Bearer sk-test-123", gotAuth)
}

func TestFetchPairs_NoAuthHeaderWithoutKey(t *testing.T) {
	var hadAuth bool
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		w.Write([]byte(`{"pairs":[]}`))
	}))
	defer upstream.Close()

	client := external.NewDexScreenerClient(upstream.URL, "")
	_, err := client.FetchPairs(context.Background(), "solana")

	require.NoError(t, err)
	assert.False(t, hadAuth)
}
