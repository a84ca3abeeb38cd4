package observability

import (
	"context"

	"github.com/aretw0/trinomial/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by the engine lifecycle hooks.
type Metrics struct {
	Requests       *prometheus.CounterVec
	Forms          *prometheus.CounterVec
	SearchDuration prometheus.Histogram
	CacheHits      prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg.
// Passing a fresh prometheus.NewRegistry() keeps tests isolated.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trinomial_requests_total",
				Help: "Factor requests by outcome (solved, unsolved, token_parse, shape_mismatch, search_limit)",
			},
			[]string{"outcome"},
		),
		Forms: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trinomial_forms_total",
				Help: "Classified expressions by form",
			},
			[]string{"form"},
		),
		SearchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "trinomial_search_duration_seconds",
				Help:    "Duration of integer factor searches",
				Buckets: prometheus.ExponentialBuckets(0.000001, 10, 8),
			},
		),
		CacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "trinomial_cache_hits_total",
				Help: "Explanations served from the result store",
			},
		),
	}
	reg.MustRegister(m.Requests, m.Forms, m.SearchDuration, m.CacheHits)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnClassified: func(ctx context.Context, e *domain.ClassifyEvent) {
			m.Forms.WithLabelValues(string(e.Form.Kind)).Inc()
		},
		OnSearched: func(ctx context.Context, e *domain.SearchEvent) {
			m.SearchDuration.Observe(e.Duration.Seconds())
		},
		OnRendered: func(ctx context.Context, e *domain.RenderEvent) {
			if e.Cached {
				m.CacheHits.Inc()
			}
			m.Requests.WithLabelValues(Outcome(e.Explanation)).Inc()
		},
	}
}

// Outcome labels an explanation for the requests counter.
func Outcome(exp *domain.Explanation) string {
	switch {
	case exp == nil:
		return "unknown"
	case exp.Failure != nil:
		return string(exp.Failure.Kind)
	case exp.Solved:
		return "solved"
	default:
		return "unsolved"
	}
}
