package api

import (
	"net/http"
	"time"
)

// Stable, non-leaking error messages. Raw errors go to the log only.
const (
	msgUpstreamUnavailable = "upstream data unavailable"
	msgPersistFailed       = "failed to store tokens"
)

func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	s.serveTokens(w, r, "/tokens", s.chain)
}

func (s *Server) handleTokensByChain(w http.ResponseWriter, r *http.Request) {
	s.serveTokens(w, r, "/tokens/{chain_id}", r.PathValue("chain_id"))
}

// serveTokens runs the fetch → filter → persist → render sequence. Each
// request owns the whole sequence; nothing is shared across requests
// beyond the pool and config.
func (s *Server) serveTokens(w http.ResponseWriter, r *http.Request, route, chain string) {
	ctx := r.Context()

	start := time.Now()
	pairs, err := s.fetcher.FetchPairs(ctx, chain)
	s.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.FetchErrors.Inc()
		s.log.Errorw("upstream fetch failed", "chain", chain, "error", err)
		s.writeError(w, route, http.StatusInternalServerError, msgUpstreamUnavailable)
		return
	}
	s.metrics.ListingsFetched.Add(float64(len(pairs)))

	rows := s.filter.Apply(pairs, chain)
	s.metrics.ListingsRetained.Add(float64(len(rows)))

	if len(rows) > 0 {
		if err := s.writer.InsertBatch(ctx, rows); err != nil {
			s.metrics.PersistErrors.Inc()
			s.log.Errorw("token persist failed", "chain", chain, "rows", len(rows), "error", err)
			s.writeError(w, route, http.StatusInternalServerError, msgPersistFailed)
			return
		}
		s.metrics.RowsPersisted.Add(float64(len(rows)))
	}

	s.writeJSON(w, route, http.StatusOK, rows)
}
