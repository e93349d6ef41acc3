package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	sessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "alchemy_sessions_created_total",
		Help: "Number of game sessions created.",
	})

	combinationAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alchemy_combinations_total",
		Help: "Combination attempts by outcome.",
	}, []string{"outcome"}) // discovery | repeat | no_reaction

	powerUpActivations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "alchemy_powerup_activations_total",
		Help: "Successful power-up activations by power-up id.",
	}, []string{"power_up"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "alchemy_http_request_duration_seconds",
		Help:    "HTTP request latency by route and method.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})
)

// metricsMiddleware records request latency per mux route template
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		requestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

// metricsHandler exposes the Prometheus scrape endpoint
func metricsHandler() http.Handler {
	return promhttp.Handler()
}

func observeCombination(success, newDiscovery bool) {
	switch {
	case newDiscovery:
		combinationAttempts.WithLabelValues("discovery").Inc()
	case success:
		combinationAttempts.WithLabelValues("repeat").Inc()
	default:
		combinationAttempts.WithLabelValues("no_reaction").Inc()
	}
}
