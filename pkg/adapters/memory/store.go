package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/trinomial/pkg/domain"
)

// Store implements ports.ResultStore in memory.
// Safe for concurrent use.
type Store struct {
	data     map[string]*domain.Record
	capacity int
	mu       sync.RWMutex
}

// Option configures a Store.
type Option func(*Store)

// WithCapacity bounds the number of records kept; the oldest are evicted first.
// Zero means unbounded.
func WithCapacity(n int) Option {
	return func(s *Store) {
		s.capacity = n
	}
}

// NewStore creates a new in-memory store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		data: make(map[string]*domain.Record),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save persists a copy of the record in memory.
func (s *Store) Save(ctx context.Context, record *domain.Record) error {
	copied := copyRecord(record)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[record.Key] = copied
	s.evict()
	return nil
}

// Load retrieves a copy of the record so callers cannot mutate stored data.
func (s *Store) Load(ctx context.Context, key string) (*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[key]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return copyRecord(rec), nil
}

// Delete removes the record.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// List returns all records, most recent first.
func (s *Store) List(ctx context.Context) ([]*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sorted(), nil
}

func (s *Store) sorted() []*domain.Record {
	records := make([]*domain.Record, 0, len(s.data))
	for _, rec := range s.data {
		records = append(records, copyRecord(rec))
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records
}

// evict drops the oldest records beyond capacity. Caller holds the write lock.
func (s *Store) evict() {
	if s.capacity <= 0 || len(s.data) <= s.capacity {
		return
	}
	records := s.sorted()
	for _, rec := range records[s.capacity:] {
		delete(s.data, rec.Key)
	}
}

func copyRecord(rec *domain.Record) *domain.Record {
	out := *rec
	if rec.Explanation != nil {
		exp := *rec.Explanation
		exp.Steps = make([]domain.Step, len(rec.Explanation.Steps))
		for i, st := range rec.Explanation.Steps {
			st.Formulas = append([]string(nil), st.Formulas...)
			exp.Steps[i] = st
		}
		if exp.Factors != nil {
			f := *exp.Factors
			exp.Factors = &f
		}
		if exp.Failure != nil {
			f := *exp.Failure
			exp.Failure = &f
		}
		out.Explanation = &exp
	}
	return &out
}
