package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	evaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "almagest_evaluations_total",
		Help: "Evaluations processed, by outcome.",
	}, []string{"status"})

	evaluationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "almagest_evaluation_duration_seconds",
		Help:    "End-to-end evaluation latency including the store query.",
		Buckets: prometheus.DefBuckets,
	})
)

func metricsHandler() http.Handler {
	return promhttp.Handler()
}
