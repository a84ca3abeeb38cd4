package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/trinomial/pkg/domain"
	"github.com/aretw0/trinomial/pkg/ports"
)

// Runner reads expressions, factors them and writes the explanations back.
type Runner struct {
	// Handler is the strategy for IO. Defaults to a TextHandler on Stdin/Stdout.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Notation applies to requests that do not name one.
	Notation domain.Notation

	engine ports.Factorer
}

// NewRunner creates a Runner for engine.
func NewRunner(engine ports.Factorer, opts ...Option) *Runner {
	r := &Runner{
		engine:   engine,
		Notation: domain.NotationPlain,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Logger == nil {
		r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	return r
}

// Run executes the loop until the input ends, the user types exit/quit,
// or ctx is cancelled (in which case ctx.Err() is returned).
func (r *Runner) Run(ctx context.Context) error {
	if c, ok := r.Handler.(io.Closer); ok {
		defer c.Close()
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		req, err := r.Handler.Input(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("input error: %w", err)
		}

		expr := strings.TrimSpace(req.Expression)
		switch strings.ToLower(expr) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		notation := r.Notation
		if req.Notation != "" {
			notation = domain.ParseNotation(req.Notation)
		}

		exp, ferr := r.engine.FactorWith(ctx, expr, notation)
		if ferr != nil {
			r.Logger.Debug("factor failed", "input", expr, "error", ferr)
		}

		if err := r.Handler.Output(ctx, exp, ferr); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}
}
