package features

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	FeatureFallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feature_fallback_total",
			Help: "Count of feature values served from the fallback policy by source and reason.",
		},
		[]string{"source", "reason"},
	)

	RouteCacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "route_cache_lookups_total",
			Help: "Count of route cache lookups by result (hit, miss, error).",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(FeatureFallbackTotal, RouteCacheLookupsTotal)
}
