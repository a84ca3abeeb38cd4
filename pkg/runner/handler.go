package runner

import (
	"context"

	"github.com/aretw0/trinomial/pkg/domain"
)

// Request is one expression read from the user.
// An empty Notation means the runner default.
type Request struct {
	Expression string `json:"expression"`
	Notation   string `json:"notation,omitempty"`
}

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type IOHandler interface {
	// Input reads the next request. io.EOF ends the session.
	Input(ctx context.Context) (Request, error)

	// Output presents an explanation. err is the factoring error, if any;
	// exp may still hold the explanatory failure step.
	Output(ctx context.Context, exp *domain.Explanation, err error) error

	// SystemOutput presents a meta-message (banner, help, status).
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer is a function that transforms Markdown before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)
