package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Draws = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cats",
		Name:      "draws_total",
		Help:      "Cards granted by spins, by mode and rarity.",
	}, []string{"mode", "rarity"})

	CacheRefreshes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cats",
		Name:      "cache_refreshes_total",
		Help:      "Remote cache loads by cache and outcome.",
	}, []string{"cache", "outcome"})

	PartialWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cats",
		Name:      "partial_writes_total",
		Help:      "Actions that stopped between two row writes.",
	}, []string{"action"})

	RateLimited = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cats",
		Name:      "rate_limited_total",
		Help:      "Interactions rejected by the per-user limiter.",
	})

	InteractionDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cats",
		Name:      "interaction_duration_seconds",
		Help:      "Command and component handler latency.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2, 5, 10},
	}, []string{"kind", "name", "status"})

	StoreCalls = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cats",
		Name:      "store_call_duration_seconds",
		Help:      "Row store call latency by backend and operation.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"backend", "operation", "status"})
)

var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		Draws,
		CacheRefreshes,
		PartialWrites,
		RateLimited,
		InteractionDuration,
		StoreCalls,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// ObserveCacheRefresh matches the cache OnRefresh hook.
func ObserveCacheRefresh(cache, outcome string) {
	CacheRefreshes.WithLabelValues(cache, outcome).Inc()
}

func ObserveInteraction(kind, name string, took time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	InteractionDuration.WithLabelValues(kind, name, status).Observe(took.Seconds())
}

func ObserveStoreCall(backend, op string, took time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	StoreCalls.WithLabelValues(backend, op, status).Observe(took.Seconds())
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	go func() {
		slog.Info("Metrics server listening", slog.String("type", "sys"), slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server stopped", slog.String("type", "error"), slog.Any("error", err))
		}
	}()
}
