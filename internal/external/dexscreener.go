package external

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dexwatch/screener-backend/internal/httputil"
)

// ErrUnavailable covers every way the upstream can fail to deliver usable
// data: network errors, non-2xx statuses, and a payload missing its
// top-level listing field. Not retried.
var ErrUnavailable = errors.New("upstream data unavailable")

// Pair is one DexScreener listing. Liquidity and volume arrive nested
// under currency/window keys and may be absent entirely, so both are
// pointers.
type Pair struct {
	ChainID       string     `json:"chainId"`
	PairAddress   string     `json:"pairAddress"`
	BaseToken     TokenInfo  `json:"baseToken"`
	PriceUsd      string     `json:"priceUsd"`
	Liquidity     *Liquidity `json:"liquidity"`
	Volume        *Volume    `json:"volume"`
	PairCreatedAt int64      `json:"pairCreatedAt"`
}

type TokenInfo struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

type Liquidity struct {
	USD float64 `json:"usd"`
}

type Volume struct {
	H24 float64 `json:"h24"`
}

type DexScreenerClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewDexScreenerClient(baseURL, apiKey string) *DexScreenerClient {
	return &DexScreenerClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchPairs performs one GET against <base>/<chain> and returns the raw
// listing slice. A present-but-empty list is a valid empty answer; a
// payload with neither "pairs" nor "tokens" is a contract violation.
func (c *DexScreenerClient) FetchPairs(ctx context.Context, chain string) ([]Pair, error) {
	url := c.baseURL + "/" + chain

	resp, err := httputil.Get(ctx, c.httpClient, url, c.apiKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		body := httputil.ErrorBody(resp)
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, body)
	}
	defer resp.Body.Close()

	var payload struct {
		Pairs  []Pair `json:"pairs"`
		Tokens []Pair `json:"tokens"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}

	listings := payload.Pairs
	if listings == nil {
		listings = payload.Tokens
	}
	if listings == nil {
		return nil, fmt.Errorf("%w: response has no pairs or tokens field", ErrUnavailable)
	}

	return listings, nil
}
