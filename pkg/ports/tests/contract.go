package tests

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/aretw0/trinomial/pkg/domain"
	"github.com/aretw0/trinomial/pkg/ports"
)

// ExerciseLoaderContractTest verifies that an adapter complies with ports.ExerciseLoader.
// setupData maps exercise IDs to the expression each one must yield.
func ExerciseLoaderContractTest(t *testing.T, loader ports.ExerciseLoader, setupData map[string]string) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetExercise_Success", func(t *testing.T) {
		for id, expression := range setupData {
			ex, err := loader.GetExercise(ctx, id)
			if err != nil {
				t.Fatalf("unexpected error getting exercise %s: %v", id, err)
			}
			if ex.ID != id {
				t.Errorf("id mismatch: got %q, want %q", ex.ID, id)
			}
			if ex.Expression != expression {
				t.Errorf("expression mismatch for %s. got %q, want %q", id, ex.Expression, expression)
			}
		}
	})

	t.Run("GetExercise_NotFound", func(t *testing.T) {
		_, err := loader.GetExercise(ctx, "non-existent-exercise")
		if !errors.Is(err, domain.ErrExerciseNotFound) {
			t.Errorf("expected ErrExerciseNotFound, got %v", err)
		}
	})

	t.Run("ListExercises", func(t *testing.T) {
		ids, err := loader.ListExercises(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing exercises: %v", err)
		}
		if len(ids) != len(setupData) {
			t.Errorf("expected %d exercises, got %d (%v)", len(setupData), len(ids), ids)
		}
		if !sort.StringsAreSorted(ids) {
			t.Errorf("expected sorted ids, got %v", ids)
		}
		for _, id := range ids {
			if _, ok := setupData[id]; !ok {
				t.Errorf("unexpected exercise %q", id)
			}
		}
	})
}
