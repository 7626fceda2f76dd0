// Package pipeline turns raw DexScreener listings into screened token rows.
package pipeline

import (
	"strconv"
	"time"

	"github.com/dexwatch/screener-backend/internal/external"
	"github.com/dexwatch/screener-backend/internal/models"
)

// DefaultLiquidityThreshold is the USD liquidity a pair must strictly
// exceed to survive filtering.
const DefaultLiquidityThreshold = 5000

// Filter coerces listing fields and applies the liquidity predicate.
// A zero RecencyWindow disables the created_at cutoff.
type Filter struct {
	LiquidityThreshold float64
	RecencyWindow      time.Duration
	Now                func() time.Time
}

func NewFilter(threshold float64, recencyWindow time.Duration) *Filter {
	return &Filter{
		LiquidityThreshold: threshold,
		RecencyWindow:      recencyWindow,
		Now:                time.Now,
	}
}

// Apply maps each listing to a token row and keeps only rows with
// liquidity strictly above the threshold (and, when a recency window is
// set, created_at inside it). Survivors keep the upstream order.
func (f *Filter) Apply(pairs []external.Pair, chain string) []models.Token {
	now := f.now().UTC()

	out := make([]models.Token, 0, len(pairs))
	for _, p := range pairs {
		row := models.Token{
			PairAddress: identifier(p),
			Price:       parsePrice(p.PriceUsd),
			CreatedAt:   createdAt(p, now),
			ChainID:     chain,
		}
		if p.Liquidity != nil {
			row.Liquidity = p.Liquidity.USD
		}
		if p.Volume != nil {
			row.Volume = p.Volume.H24
		}

		if row.Liquidity <= f.LiquidityThreshold {
			continue
		}
		if f.RecencyWindow > 0 && row.CreatedAt.Before(now.Add(-f.RecencyWindow)) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func (f *Filter) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

// identifier prefers the pair address, falling back to the base token
// name for token-keyed upstream variants.
func identifier(p external.Pair) string {
	if p.PairAddress != "" {
		return p.PairAddress
	}
	return p.BaseToken.Name
}

// parsePrice coerces the upstream price string. Unparsable values become
// nil (JSON null), never an error.
func parsePrice(s string) *float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// createdAt uses the upstream pair creation time (epoch millis) when
// supplied, otherwise stamps the row with the processing time.
func createdAt(p external.Pair, now time.Time) time.Time {
	if p.PairCreatedAt > 0 {
		return time.UnixMilli(p.PairCreatedAt).UTC()
	}
	return now
}
