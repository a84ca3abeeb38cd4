package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/aretw0/trinomial/pkg/domain"
	"github.com/aretw0/trinomial/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

type metricsMiddleware struct {
	next     ports.ResultStore
	duration *prometheus.HistogramVec
}

// Metrics records store latency in trinomial_store_operation_duration_seconds,
// labelled by op (save, load, delete, list) and outcome (ok, miss, error).
func Metrics(reg prometheus.Registerer) Middleware {
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "trinomial",
		Name:      "store_operation_duration_seconds",
		Help:      "Latency of history store operations.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
	}, []string{"op", "outcome"})
	reg.MustRegister(duration)

	return func(next ports.ResultStore) ports.ResultStore {
		return &metricsMiddleware{next: next, duration: duration}
	}
}

func (m *metricsMiddleware) observe(op string, start time.Time, err error) {
	outcome := "ok"
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		outcome = "miss"
	case err != nil:
		outcome = "error"
	}
	m.duration.WithLabelValues(op, outcome).Observe(time.Since(start).Seconds())
}

func (m *metricsMiddleware) Save(ctx context.Context, record *domain.Record) error {
	start := time.Now()
	err := m.next.Save(ctx, record)
	m.observe("save", start, err)
	return err
}

func (m *metricsMiddleware) Load(ctx context.Context, key string) (*domain.Record, error) {
	start := time.Now()
	rec, err := m.next.Load(ctx, key)
	m.observe("load", start, err)
	return rec, err
}

func (m *metricsMiddleware) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := m.next.Delete(ctx, key)
	m.observe("delete", start, err)
	return err
}

func (m *metricsMiddleware) List(ctx context.Context) ([]*domain.Record, error) {
	start := time.Now()
	recs, err := m.next.List(ctx)
	m.observe("list", start, err)
	return recs, err
}
