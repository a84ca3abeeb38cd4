package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/trinomial/pkg/domain"
)

// Loader implements ports.ExerciseLoader using an in-memory map.
type Loader struct {
	exercises map[string]domain.Exercise
}

// NewLoader creates a Loader from plain id -> expression pairs.
func NewLoader(data map[string]string) *Loader {
	exercises := make(map[string]domain.Exercise, len(data))
	for id, expr := range data {
		exercises[id] = domain.Exercise{ID: id, Expression: expr}
	}
	return &Loader{exercises: exercises}
}

// NewFromExercises creates a Loader from domain objects.
func NewFromExercises(exercises ...domain.Exercise) (*Loader, error) {
	data := make(map[string]domain.Exercise, len(exercises))
	for _, ex := range exercises {
		if ex.ID == "" {
			return nil, fmt.Errorf("exercise missing ID")
		}
		if _, dup := data[ex.ID]; dup {
			return nil, fmt.Errorf("duplicate exercise ID %s", ex.ID)
		}
		data[ex.ID] = ex
	}
	return &Loader{exercises: data}, nil
}

// GetExercise retrieves an exercise by ID.
func (l *Loader) GetExercise(_ context.Context, id string) (*domain.Exercise, error) {
	ex, ok := l.exercises[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrExerciseNotFound, id)
	}
	return &ex, nil
}

// ListExercises returns all available exercise IDs.
func (l *Loader) ListExercises(_ context.Context) ([]string, error) {
	keys := make([]string, 0, len(l.exercises))
	for k := range l.exercises {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
