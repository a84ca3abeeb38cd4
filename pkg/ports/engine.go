package ports

import (
	"context"

	"github.com/aretw0/trinomial/pkg/domain"
)

// Factorer is the engine surface used by the adapters (REPL, HTTP, MCP, Telegram, worksheet).
// *trinomial.Engine implements it.
type Factorer interface {
	// FactorWith explains expr in the given notation. Token and shape failures
	// return an explanation together with a wrapped domain error.
	FactorWith(ctx context.Context, expr string, notation domain.Notation) (*domain.Explanation, error)

	// History lists stored results, most recent first.
	History(ctx context.Context) ([]*domain.Record, error)

	// Forget removes the stored result for an expression.
	Forget(ctx context.Context, expr string) error
}
