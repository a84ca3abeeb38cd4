package loam

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"

	"github.com/aretw0/trinomial/internal/testutils"
	"github.com/aretw0/trinomial/pkg/domain"
	"github.com/aretw0/trinomial/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for filename, content := range files {
		err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644)
		require.NoError(t, err)
	}
}

func TestLoader_Contract(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t)
	ctx := context.Background()

	docA := core.Document{
		ID: "a.md",
		Content: `---
id: a
title: Monic
expression: x^2+5x+6
expect: (x+2)(x+3)
---
Factor the monic trinomial.`,
	}
	docB := core.Document{
		ID: "b.md",
		Content: `---
id: b
title: Substitution
---
$v^16+58v^8+697$`,
	}
	require.NoError(t, repo.Save(ctx, docA))
	require.NoError(t, repo.Save(ctx, docB))

	loader := New(loam.NewTypedRepository[ExerciseMetadata](repo))

	tests.ExerciseLoaderContractTest(t, loader, map[string]string{
		"a": "x^2+5x+6",
		"b": "v^16+58v^8+697",
	})
}

func TestLoader_ListExercises_NormalizesIDs(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	seed(t, tmpDir, map[string]string{
		"first.md": `---
id: first.md
expression: b^2-5b+6
---
`,
		"second.json": `{
  "id": "second.json",
  "expression": "x^2+7x+12"
}`,
		"implicit.md": `---
title: ID is implied from filename
---
x^2-1`,
	})

	loader := New(loam.NewTypedRepository[ExerciseMetadata](repo))

	ids, err := loader.ListExercises(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "implicit", "second"}, ids)
}

func TestLoader_ListExercises_DetectsCollisions(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	seed(t, tmpDir, map[string]string{
		"foo.md": `---
id: foo
expression: x^2+3x+2
---
`,
		"foo.json": `{
  "id": "foo",
  "expression": "x^2+4x+3"
}`,
	})

	loader := New(loam.NewTypedRepository[ExerciseMetadata](repo))

	_, err := loader.ListExercises(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
	assert.Contains(t, err.Error(), "foo")
}

func TestLoader_GetExercise_NormalizesID(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	seed(t, tmpDir, map[string]string{
		"quartic.json": `{ "id": "quartic.json", "expression": "y^4+5y^2+6", "expect": "(y^2+2)(y^2+3)" }`,
	})

	loader := New(loam.NewTypedRepository[ExerciseMetadata](repo))

	for _, id := range []string{"quartic", "quartic.json"} {
		ex, err := loader.GetExercise(context.Background(), id)
		require.NoError(t, err, id)
		assert.Equal(t, "quartic", ex.ID)
		assert.Equal(t, "y^4+5y^2+6", ex.Expression)
		assert.Equal(t, "(y^2+2)(y^2+3)", ex.Expect)
	}

	_, err := loader.GetExercise(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrExerciseNotFound)
}

func TestBodyExpression(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"plain", "x^2+5x+6", "x^2+5x+6"},
		{"latex inline", "\n\n  $x^2+5x+6$  \nnotes", "x^2+5x+6"},
		{"code span", "`b^2-5b+6`", "b^2-5b+6"},
		{"empty", "\n \n", ""},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bodyExpression(tt.content))
		})
	}
}

func TestOpen_ReadsDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "worksheet")
	require.NoError(t, os.MkdirAll(dir, 0755))
	seed(t, dir, map[string]string{
		"one.md": "---\nexpression: x^2+3x+2\n---\n",
	})

	loader, err := Open(dir)
	require.NoError(t, err)

	ids, err := loader.ListExercises(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, ids)
}
