package models

import "time"

// Token is one screened listing, both the API response shape and the
// persisted row. Price is a pointer so an unparsable upstream price
// serializes as JSON null rather than zero.
type Token struct {
	ID          int64     `json:"id,omitempty"`
	PairAddress string    `json:"pair_address"`
	Price       *float64  `json:"price"`
	Liquidity   float64   `json:"liquidity"`
	Volume      float64   `json:"volume"`
	CreatedAt   time.Time `json:"created_at"`
	ChainID     string    `json:"chain_id,omitempty"`
}
