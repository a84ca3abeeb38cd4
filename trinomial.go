package trinomial

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/trinomial/internal/compiler"
	"github.com/aretw0/trinomial/internal/runtime"
	"github.com/aretw0/trinomial/pkg/domain"
	"github.com/aretw0/trinomial/pkg/ports"
	"github.com/google/uuid"
)

// Engine is the high-level entry point for the Trinomial library.
// It wraps the internal runtime and adds an optional result history.
type Engine struct {
	runtime     *runtime.Engine
	store       ports.ResultStore
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	notation    domain.Notation
	searchLimit int64
	now         func() time.Time
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStore enables the result history. Explanations are cached by normalized expression.
func WithStore(store ports.ResultStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithSearchLimit rejects constants with |c| above limit (0 = unlimited).
func WithSearchLimit(limit int64) Option {
	return func(e *Engine) {
		e.searchLimit = limit
	}
}

// WithNotation sets the default formula notation (LaTeX unless set).
func WithNotation(n domain.Notation) Option {
	return func(e *Engine) {
		e.notation = n
	}
}

// New initializes a new Trinomial Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{
		notation: domain.NotationLaTeX,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized so we don't pass nil to runtime.
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	eng.runtime = runtime.NewEngine(
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithSearchLimit(eng.searchLimit),
	)
	return eng
}

// Factor explains expr in the engine's default notation.
func (e *Engine) Factor(ctx context.Context, expr string) (*domain.Explanation, error) {
	return e.FactorWith(ctx, expr, e.notation)
}

// FactorWith explains expr in the given notation.
//
// Token and shape failures return both an explanation with a single error step and a
// wrapped domain sentinel. Only successful explanations (solved or not) are stored.
func (e *Engine) FactorWith(ctx context.Context, expr string, notation domain.Notation) (*domain.Explanation, error) {
	key := compiler.Normalize(expr)

	if cached := e.lookup(ctx, key, notation); cached != nil {
		cached.Input = expr
		if e.hooks.OnRendered != nil {
			e.hooks.OnRendered(ctx, &domain.RenderEvent{
				EventBase:   domain.EventBase{Timestamp: e.now(), Type: domain.EventRendered, Input: expr},
				Explanation: cached,
				Cached:      true,
			})
		}
		return cached, nil
	}

	exp, err := e.runtime.Factor(ctx, expr, notation)
	if err != nil {
		return exp, err
	}

	if e.store != nil {
		rec := &domain.Record{
			ID:          uuid.NewString(),
			Key:         key,
			Explanation: exp,
			CreatedAt:   e.now().UTC(),
		}
		if serr := e.store.Save(ctx, rec); serr != nil {
			e.logger.WarnContext(ctx, "failed to store result", "key", key, "error", serr)
		}
	}
	return exp, nil
}

func (e *Engine) lookup(ctx context.Context, key string, notation domain.Notation) *domain.Explanation {
	if e.store == nil || key == "" {
		return nil
	}
	rec, err := e.store.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrRecordNotFound) {
			e.logger.WarnContext(ctx, "failed to load cached result", "key", key, "error", err)
		}
		return nil
	}
	if rec.Explanation == nil || rec.Explanation.Notation != notation {
		return nil
	}
	// Records written by an unlimited engine must not bypass this engine's limit.
	if c := rec.Explanation.Form.C; e.searchLimit > 0 && (c > e.searchLimit || c < -e.searchLimit) {
		return nil
	}
	return rec.Explanation
}

// History lists stored results, most recent first. Without a store it is empty.
func (e *Engine) History(ctx context.Context) ([]*domain.Record, error) {
	if e.store == nil {
		return []*domain.Record{}, nil
	}
	return e.store.List(ctx)
}

// Forget removes the stored result for expr. The expression is normalized first.
func (e *Engine) Forget(ctx context.Context, expr string) error {
	if e.store == nil {
		return nil
	}
	return e.store.Delete(ctx, compiler.Normalize(expr))
}

// Notation returns the engine's default notation.
func (e *Engine) Notation() domain.Notation {
	return e.notation
}

// SearchLimit returns the configured bound on |c| (0 = unlimited).
func (e *Engine) SearchLimit() int64 {
	return e.searchLimit
}

// Factor explains expr with LaTeX formulas, without history or limits.
func Factor(expr string) (*domain.Explanation, error) {
	return runtime.NewEngine().Factor(context.Background(), expr, domain.NotationLaTeX)
}

// FindFactors returns the integer pair with m+n = b and m*n = c, scanning m upward
// from -|c|. It returns nil when no such pair exists.
func FindFactors(b, c int64) *domain.FactorPair {
	return runtime.FindFactors(b, c)
}
