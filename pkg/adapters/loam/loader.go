package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/trinomial/pkg/domain"
)

// Loader adapts a Loam repository of Markdown/JSON documents to ports.ExerciseLoader.
type Loader struct {
	Repo *loam.TypedRepository[ExerciseMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[ExerciseMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only, strict Loam repository rooted at dir.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve worksheet path: %w", err)
	}
	repo, err := loam.Init(absPath, loam.WithStrict(true), loam.WithReadOnly(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open worksheet %s: %w", absPath, err)
	}
	return New(loam.NewTypedRepository[ExerciseMetadata](repo)), nil
}

// GetExercise returns the exercise whose normalized ID matches id.
func (l *Loader) GetExercise(ctx context.Context, id string) (*domain.Exercise, error) {
	exercises, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	ex, ok := exercises[trimExtension(id)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrExerciseNotFound, id)
	}
	return &ex, nil
}

// ListExercises returns all exercise IDs, extensions stripped, in ascending order.
func (l *Loader) ListExercises(ctx context.Context) ([]string, error) {
	exercises, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(exercises))
	for id := range exercises {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (l *Loader) load(ctx context.Context) (map[string]domain.Exercise, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	exercises := make(map[string]domain.Exercise, len(docs))
	sources := make(map[string]string, len(docs))
	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if prev, exists := sources[id]; exists {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, prev, doc.ID)
		}
		sources[id] = doc.ID

		expression := strings.TrimSpace(doc.Data.Expression)
		if expression == "" {
			expression = bodyExpression(doc.Content)
		}
		exercises[id] = domain.Exercise{
			ID:         id,
			Title:      doc.Data.Title,
			Expression: expression,
			Expect:     strings.TrimSpace(doc.Data.Expect),
		}
	}
	return exercises, nil
}

// bodyExpression takes the first non-blank body line, unwrapping $...$ or `...`.
func bodyExpression(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return strings.TrimSpace(strings.Trim(line, "$`"))
	}
	return ""
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		id = strings.TrimSuffix(id, ext)
	}
	return filepath.ToSlash(id)
}
