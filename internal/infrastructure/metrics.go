package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BacktestRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backtest_runs_total",
		Help: "Total number of per-symbol backtest simulations",
	}, []string{"strategy"})

	BacktestFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backtest_failures_total",
		Help: "Total number of per-symbol backtest failures",
	}, []string{"reason"})

	BacktestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "backtest_batch_duration_seconds",
		Help: "Wall-clock duration of a whole backtest batch",
	})

	DataFetchLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "data_fetch_latency_seconds",
		Help: "Latency of market data provider calls",
	}, []string{"operation"})

	PriceCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "price_cache_hits_total",
		Help: "Price history requests served from the local cache",
	})

	PriceCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "price_cache_misses_total",
		Help: "Price history requests that went to the provider",
	})
)
