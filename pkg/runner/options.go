package runner

import (
	"log/slog"

	"github.com/aretw0/trinomial/pkg/domain"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithNotation sets the notation used when a request does not name one.
func WithNotation(n domain.Notation) Option {
	return func(r *Runner) {
		r.Notation = n
	}
}
