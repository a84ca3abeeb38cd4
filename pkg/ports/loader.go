package ports

import (
	"context"

	"github.com/aretw0/trinomial/pkg/domain"
)

// ExerciseLoader defines how worksheets are read.
// This allows the storage layer (Loam, Memory) to be decoupled from grading.
type ExerciseLoader interface {
	// GetExercise returns one exercise or domain.ErrExerciseNotFound.
	GetExercise(ctx context.Context, id string) (*domain.Exercise, error)

	// ListExercises returns all exercise IDs in ascending order.
	ListExercises(ctx context.Context) ([]string, error)
}
