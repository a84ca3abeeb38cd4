package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/trinomial/pkg/domain"
	"github.com/aretw0/trinomial/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.ResultStore
	logger *slog.Logger
}

// Logging logs every store call at debug level and failures at warn.
// A miss on Load is not a failure.
func Logging(logger *slog.Logger) Middleware {
	return func(next ports.ResultStore) ports.ResultStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) log(ctx context.Context, op, key string, start time.Time, err error) {
	attrs := []any{"op", op, "duration", time.Since(start)}
	if key != "" {
		attrs = append(attrs, "key", key)
	}
	if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
		m.logger.WarnContext(ctx, "store call failed", append(attrs, "err", err)...)
		return
	}
	m.logger.DebugContext(ctx, "store call", attrs...)
}

func (m *loggingMiddleware) Save(ctx context.Context, record *domain.Record) error {
	start := time.Now()
	err := m.next.Save(ctx, record)
	m.log(ctx, "save", record.Key, start, err)
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, key string) (*domain.Record, error) {
	start := time.Now()
	rec, err := m.next.Load(ctx, key)
	m.log(ctx, "load", key, start, err)
	return rec, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := m.next.Delete(ctx, key)
	m.log(ctx, "delete", key, start, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]*domain.Record, error) {
	start := time.Now()
	recs, err := m.next.List(ctx)
	m.log(ctx, "list", "", start, err)
	return recs, err
}
