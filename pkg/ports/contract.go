package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/trinomial/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResultStoreContract runs a suite of tests to verify that a ResultStore implementation
// adheres to the defined interface contract.
func RunResultStoreContract(t *testing.T, store ResultStore) {
	ctx := context.Background()
	key := "contract-x^2-5x+6-" + time.Now().Format("20060102150405")

	newRecord := func(id, key string, at time.Time) *domain.Record {
		return &domain.Record{
			ID:  id,
			Key: key,
			Explanation: &domain.Explanation{
				Input:      key,
				Normalized: key,
				Notation:   domain.NotationPlain,
				Form:       domain.Classic("x", -5, 6),
				Factors:    &domain.FactorPair{M: -3, N: -2},
				Solved:     true,
				Factored:   "(x-3)(x-2)",
				Steps:      []domain.Step{{Label: "Final factorization", Formulas: []string{"x^2-5x+6 = (x-3)(x-2)"}}},
			},
			CreatedAt: at.UTC().Truncate(time.Second),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		rec := newRecord("id-1", key, time.Now())

		err := store.Save(ctx, rec)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, rec.ID, loaded.ID)
		assert.Equal(t, rec.Key, loaded.Key)
		assert.True(t, rec.CreatedAt.Equal(loaded.CreatedAt))
		require.NotNil(t, loaded.Explanation)
		assert.Equal(t, rec.Explanation.Form, loaded.Explanation.Form)
		assert.Equal(t, rec.Explanation.Factors, loaded.Explanation.Factors)
		assert.Equal(t, rec.Explanation.Steps, loaded.Explanation.Steps)
	})

	t.Run("Save Replaces", func(t *testing.T) {
		rec := newRecord("id-2", key, time.Now())
		require.NoError(t, store.Save(ctx, rec))

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "id-2", loaded.ID)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, newRecord("id-3", key, time.Now())))

		err := store.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrRecordNotFound, "Load after Delete should return ErrRecordNotFound")

		assert.NoError(t, store.Delete(ctx, key), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		older := newRecord("id-old", key+"-1", time.Now().Add(-time.Hour))
		newer := newRecord("id-new", key+"-2", time.Now())
		require.NoError(t, store.Save(ctx, older))
		require.NoError(t, store.Save(ctx, newer))

		defer func() {
			_ = store.Delete(ctx, older.Key)
			_ = store.Delete(ctx, newer.Key)
		}()

		records, err := store.List(ctx)
		require.NoError(t, err)

		var order []string
		for _, r := range records {
			if r.Key == older.Key || r.Key == newer.Key {
				order = append(order, r.ID)
			}
		}
		assert.Equal(t, []string{"id-new", "id-old"}, order)
	})
}
