package ports

import (
	"context"

	"github.com/aretw0/trinomial/pkg/domain"
)

// ResultStore defines the interface for persisting factorization results.
// Implementations must be safe for concurrent use.
type ResultStore interface {
	// Save persists the record under record.Key, replacing any previous record.
	Save(ctx context.Context, record *domain.Record) error

	// Load retrieves the record for a key.
	// Returns domain.ErrRecordNotFound if the key does not exist.
	Load(ctx context.Context, key string) (*domain.Record, error)

	// Delete removes the record for a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns stored records, most recent first.
	List(ctx context.Context) ([]*domain.Record, error)
}
