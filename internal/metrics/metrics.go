// Package metrics exports Prometheus counters for risk evaluations.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ppiankov/toolrisk/internal/risk"
)

var (
	// evaluationsTotal counts successful evaluations by tier level and origin.
	evaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "toolrisk_evaluations_total",
		Help: "Successful risk evaluations by tier level and origin",
	}, []string{"level", "origin"})

	// evaluationErrors counts failed evaluations by error kind and origin.
	evaluationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "toolrisk_evaluation_errors_total",
		Help: "Failed risk evaluations by error kind and origin",
	}, []string{"kind", "origin"})

	// catalogReloads counts catalog hot-reload attempts by result.
	catalogReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "toolrisk_catalog_reloads_total",
		Help: "Catalog reload attempts by result",
	}, []string{"result"})
)

// Origins label where an evaluation was requested.
const (
	OriginGRPC = "grpc"
	OriginMCP  = "mcp"
)

// ObserveEvaluation records one evaluation outcome.
func ObserveEvaluation(origin string, res risk.Result, err error) {
	if err != nil {
		evaluationErrors.WithLabelValues(risk.ErrorKind(err), origin).Inc()
		return
	}
	evaluationsTotal.WithLabelValues(res.Tier.Level, origin).Inc()
}

// ObserveReload records one catalog reload attempt.
func ObserveReload(err error) {
	if err != nil {
		catalogReloads.WithLabelValues("error").Inc()
		return
	}
	catalogReloads.WithLabelValues("ok").Inc()
}

// Handler serves the default registry, which includes the counters above.
func Handler() http.Handler {
	return promhttp.Handler()
}
