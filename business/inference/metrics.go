package inference

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	InferenceRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inference_requests_total",
			Help: "Count of live inference runs by status.",
		},
		[]string{"status"},
	)

	ModeSelectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mode_selections_total",
			Help: "Count of recommended shipping modes by selector (score, policy).",
		},
		[]string{"selector", "mode"},
	)
)

func init() {
	prometheus.MustRegister(InferenceRequestsTotal, ModeSelectionsTotal)
}
