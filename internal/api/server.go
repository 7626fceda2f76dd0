package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/dexwatch/screener-backend/internal/external"
	"github.com/dexwatch/screener-backend/internal/models"
	"github.com/dexwatch/screener-backend/internal/observability"
	"github.com/dexwatch/screener-backend/internal/pipeline"
)

// PairFetcher fetches raw listings for one chain.
type PairFetcher interface {
	FetchPairs(ctx context.Context, chain string) ([]external.Pair, error)
}

// TokenWriter appends screened rows. Implemented by repository.TokenRepo;
// tests substitute an in-memory fake.
type TokenWriter interface {
	InsertBatch(ctx context.Context, tokens []models.Token) error
}

type Config struct {
	Port         int
	DefaultChain string
	CORSOrigin   string
}

type Server struct {
	fetcher    PairFetcher
	writer     TokenWriter
	filter     *pipeline.Filter
	metrics    *observability.Metrics
	log        *zap.SugaredLogger
	chain      string
	httpServer *http.Server
}

func NewServer(cfg Config, fetcher PairFetcher, writer TokenWriter, filter *pipeline.Filter, metrics *observability.Metrics, log *zap.SugaredLogger) *Server {
	s := &Server{
		fetcher: fetcher,
		writer:  writer,
		filter:  filter,
		metrics: metrics,
		log:     log,
		chain:   cfg.DefaultChain,
	}

	handler := corsMiddleware(s.routes(), cfg.CORSOrigin)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleHealth)
	mux.HandleFunc("GET /tokens", s.handleTokens)
	mux.HandleFunc("GET /tokens/{chain_id}", s.handleTokensByChain)
	mux.Handle("GET /metrics", s.metrics.Handler())

	return mux
}

// Handler exposes the full middleware-wrapped handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	s.log.Infow("REST API server started", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// --- middleware ---

func corsMiddleware(next http.Handler, allowOrigin string) http.Handler {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- response helpers ---

func (s *Server) writeJSON(w http.ResponseWriter, route string, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
	s.countRequest(route, status)
}

func (s *Server) writeError(w http.ResponseWriter, route string, status int, msg string) {
	s.writeJSON(w, route, status, map[string]string{"error": msg})
}

func (s *Server) countRequest(route string, status int) {
	if s.metrics != nil {
		s.metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	}
}
