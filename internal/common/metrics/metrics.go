// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ActionRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "action_runs_total",
			Help: "Total number of action invocations",
		},
		[]string{"action"},
	)

	ActionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "action_failures_total",
			Help: "Total number of failed action invocations",
		},
		[]string{"action", "error_code"},
	)

	ActionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "action_duration_seconds",
			Help: "Duration of action execution in seconds",
		},
		[]string{"action"},
	)

	LookupCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lookup_cache_hits_total",
			Help: "Lookups answered from the cache",
		},
	)

	LookupUntranslatedCategories = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookup_untranslated_categories_total",
			Help: "Categories dropped because the localization table has no entry",
		},
		[]string{"category"},
	)

	FormRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_rejections_total",
			Help: "Slot candidates rejected by a validator",
		},
		[]string{"form", "slot"},
	)

	FormSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_submissions_total",
			Help: "Forms that reached completion",
		},
		[]string{"form"},
	)
)
