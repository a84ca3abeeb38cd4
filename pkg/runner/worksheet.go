package runner

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/trinomial/internal/compiler"
	"github.com/aretw0/trinomial/pkg/domain"
	"github.com/aretw0/trinomial/pkg/ports"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds worksheet fan-out when the caller passes zero.
const DefaultConcurrency = 4

// GradeWorksheet factors every exercise the loader knows about and compares the
// result with its expected factorization. Grades come back in exercise-ID order.
// Exercises without an expectation pass when they are solved.
func GradeWorksheet(ctx context.Context, engine ports.Factorer, loader ports.ExerciseLoader, notation domain.Notation, concurrency int) ([]domain.Grade, error) {
	ids, err := loader.ListExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	grades := make([]domain.Grade, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, id := range ids {
		g.Go(func() error {
			ex, err := loader.GetExercise(gctx, id)
			if err != nil {
				return fmt.Errorf("exercise %s: %w", id, err)
			}
			grades[i] = grade(gctx, engine, *ex, notation)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return grades, nil
}

func grade(ctx context.Context, engine ports.Factorer, ex domain.Exercise, notation domain.Notation) domain.Grade {
	g := domain.Grade{Exercise: ex}
	exp, err := engine.FactorWith(ctx, ex.Expression, notation)
	g.Explanation = exp
	if err != nil {
		g.Error = err.Error()
		return g
	}
	if exp == nil {
		g.Error = "no explanation produced"
		return g
	}
	g.Got = exp.Factored
	if !exp.Solved {
		return g
	}
	if ex.Expect == "" {
		g.Passed = true
		return g
	}
	g.Passed = SameFactorization(ex.Expect, exp.Factored)
	return g
}

// SameFactorization reports whether two plain-notation products are equal,
// ignoring whitespace and the order of the two binomials.
func SameFactorization(want, got string) bool {
	want, got = compiler.Normalize(want), compiler.Normalize(got)
	if want == got {
		return true
	}
	if !strings.HasPrefix(want, "(") || !strings.HasSuffix(want, ")") {
		return false
	}
	left, right, ok := strings.Cut(want[1:len(want)-1], ")(")
	if !ok {
		return false
	}
	return "("+right+")("+left+")" == got
}

// Summary counts passed grades.
func Summary(grades []domain.Grade) (passed, total int) {
	for _, g := range grades {
		if g.Passed {
			passed++
		}
	}
	return passed, len(grades)
}
