// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the service. Each instance
// carries its own registry so tests can build them independently.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	FetchErrors      prometheus.Counter
	PersistErrors    prometheus.Counter
	ListingsFetched  prometheus.Counter
	ListingsRetained prometheus.Counter
	RowsPersisted    prometheus.Counter
	FetchDuration    prometheus.Histogram
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dex_screener",
			Name:      "http_requests_total",
			Help:      "Requests served, by route and status code",
		}, []string{"route", "status"}),
		FetchErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "dex_screener",
			Name:      "upstream_fetch_errors_total",
			Help:      "Failed upstream DEX API fetches",
		}),
		PersistErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "dex_screener",
			Name:      "persist_errors_total",
			Help:      "Failed token batch inserts",
		}),
		ListingsFetched: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "dex_screener",
			Name:      "listings_fetched_total",
			Help:      "Raw listings returned by the upstream API",
		}),
		ListingsRetained: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "dex_screener",
			Name:      "listings_retained_total",
			Help:      "Listings that survived the liquidity filter",
		}),
		RowsPersisted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "dex_screener",
			Name:      "rows_persisted_total",
			Help:      "Token rows appended to the database",
		}),
		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "dex_screener",
			Name:      "upstream_fetch_seconds",
			Help:      "Upstream fetch latency",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Handler serves this instance's registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
