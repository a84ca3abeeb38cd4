package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/trinomial/internal/compiler"
	"github.com/aretw0/trinomial/pkg/domain"
)

// Engine runs the parse, aggregate, classify, search and render pipeline.
// It holds only configuration, so one Engine may serve concurrent requests.
type Engine struct {
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
	searchLimit int64
	now         func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithSearchLimit rejects constants with |c| above limit before searching.
// Zero disables the check.
func WithSearchLimit(limit int64) EngineOption {
	return func(e *Engine) {
		if limit >= 0 {
			e.searchLimit = limit
		}
	}
}

// NewEngine creates an engine. Without options it logs nowhere and has no search limit.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Factor explains one input expression.
//
// Token and shape failures return both an explanation holding a single error
// step and an error wrapping domain.ErrTokenParse or domain.ErrShapeMismatch.
// A recognized shape without an integer pair is not an error: the explanation
// has Solved == false.
func (e *Engine) Factor(ctx context.Context, input string, notation domain.Notation) (*domain.Explanation, error) {
	normalized := compiler.Normalize(input)

	terms, err := compiler.Parse(normalized)
	e.emitParsed(ctx, input, terms, err)
	if err != nil {
		e.logger.DebugContext(ctx, "parse failed", "input", input, "error", err)
		exp := ExplainFailure(domain.FailureTokenParse, domain.ErrTokenParse.Error(), domain.Unrecognized(""), notation)
		return e.finish(ctx, exp, input, normalized), err
	}

	form := Classify(Aggregate(terms))
	e.emitClassified(ctx, input, form)
	if !form.Recognized() {
		e.logger.DebugContext(ctx, "shape not recognized", "input", input, "reason", form.Reason)
		exp := ExplainUnrecognized(form, notation)
		return e.finish(ctx, exp, input, normalized), fmt.Errorf("%w: %s", domain.ErrShapeMismatch, form.Reason.Describe())
	}

	if e.searchLimit > 0 && (form.C > e.searchLimit || form.C < -e.searchLimit) {
		err := fmt.Errorf("%w: |c|=%d limit=%d", domain.ErrSearchLimit, absOrMax(form.C), e.searchLimit)
		e.logger.WarnContext(ctx, "factor search refused", "input", input, "error", err)
		exp := ExplainSearchRefused(form, err.Error(), notation)
		return e.finish(ctx, exp, input, normalized), err
	}

	start := e.now()
	pair := FindFactors(form.B, form.C)
	e.emitSearched(ctx, input, form, pair, e.now().Sub(start))

	exp := Explain(form, pair, notation)
	e.logger.DebugContext(ctx, "factored", "input", input, "form", form.Kind, "solved", exp.Solved)
	return e.finish(ctx, exp, input, normalized), nil
}

func (e *Engine) finish(ctx context.Context, exp *domain.Explanation, input, normalized string) *domain.Explanation {
	exp.Input = input
	exp.Normalized = normalized
	e.emitRendered(ctx, exp)
	return exp
}

func absOrMax(v int64) int64 {
	if a, ok := abs(v); ok {
		return a
	}
	return 1<<63 - 1
}

func (e *Engine) base(t domain.EventType, input string) domain.EventBase {
	return domain.EventBase{Timestamp: e.now(), Type: t, Input: input}
}

func (e *Engine) emitParsed(ctx context.Context, input string, terms []domain.Term, err error) {
	if e.hooks.OnParsed == nil {
		return
	}
	e.hooks.OnParsed(ctx, &domain.ParseEvent{EventBase: e.base(domain.EventParsed, input), Terms: terms, Err: err})
}

func (e *Engine) emitClassified(ctx context.Context, input string, form domain.Form) {
	if e.hooks.OnClassified == nil {
		return
	}
	e.hooks.OnClassified(ctx, &domain.ClassifyEvent{EventBase: e.base(domain.EventClassified, input), Form: form})
}

func (e *Engine) emitSearched(ctx context.Context, input string, form domain.Form, pair *domain.FactorPair, d time.Duration) {
	if e.hooks.OnSearched == nil {
		return
	}
	e.hooks.OnSearched(ctx, &domain.SearchEvent{
		EventBase: e.base(domain.EventSearched, input),
		B:         form.B,
		C:         form.C,
		Pair:      pair,
		Duration:  d,
	})
}

func (e *Engine) emitRendered(ctx context.Context, exp *domain.Explanation) {
	if e.hooks.OnRendered == nil {
		return
	}
	e.hooks.OnRendered(ctx, &domain.RenderEvent{EventBase: e.base(domain.EventRendered, exp.Input), Explanation: exp})
}
