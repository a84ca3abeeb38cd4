package ports_test

import (
	"context"
	"sort"
	"testing"

	"github.com/aretw0/trinomial/pkg/domain"
	"github.com/aretw0/trinomial/pkg/ports"
)

// MockStore is a minimal map-backed ResultStore used to check the contract itself.
type MockStore struct {
	data map[string]domain.Record
}

func NewMockStore() *MockStore {
	return &MockStore{data: make(map[string]domain.Record)}
}

func (m *MockStore) Save(ctx context.Context, record *domain.Record) error {
	m.data[record.Key] = *record
	return nil
}

func (m *MockStore) Load(ctx context.Context, key string) (*domain.Record, error) {
	rec, ok := m.data[key]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return &rec, nil
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]*domain.Record, error) {
	out := make([]*domain.Record, 0, len(m.data))
	for _, rec := range m.data {
		rec := rec
		out = append(out, &rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func TestResultStore_Contract(t *testing.T) {
	ports.RunResultStoreContract(t, NewMockStore())
}
