// Package postgres provides a ResultStore backed by PostgreSQL through
// database/sql and the pgx driver.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/trinomial/pkg/domain"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
)

// Schema creates the results table. Migrate applies it.
const Schema = `
create table if not exists trinomial_results (
    key         text primary key,
    id          text not null,
    explanation jsonb not null,
    created_at  timestamptz not null
);
create index if not exists trinomial_results_created_at_idx
    on trinomial_results (created_at desc);`

// Store implements ports.ResultStore on a *sql.DB.
type Store struct {
	DB *sql.DB
}

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store { return &Store{DB: db} }

// Open connects with the pgx driver, tunes the pool and pings the server.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(1 * time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}
	return NewStore(db), nil
}

// Migrate creates the table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Save upserts the record by key.
func (s *Store) Save(ctx context.Context, record *domain.Record) error {
	js, err := json.Marshal(record.Explanation)
	if err != nil {
		return fmt.Errorf("failed to marshal explanation: %w", err)
	}
	const q = `
insert into trinomial_results (key, id, explanation, created_at)
values ($1, $2, $3, $4)
on conflict (key) do update
set id = excluded.id,
    explanation = excluded.explanation,
    created_at = excluded.created_at`
	if _, err := s.DB.ExecContext(ctx, q, record.Key, record.ID, js, record.CreatedAt); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

// Load returns the record for key.
func (s *Store) Load(ctx context.Context, key string) (*domain.Record, error) {
	const q = `
select key, id, explanation, created_at
from trinomial_results
where key = $1`
	rec, err := scanRecord(s.DB.QueryRowContext(ctx, q, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load record: %w", err)
	}
	return rec, nil
}

// Delete removes the record. A missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.DB.ExecContext(ctx, `delete from trinomial_results where key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

// List returns all records, most recent first.
func (s *Store) List(ctx context.Context) ([]*domain.Record, error) {
	const q = `
select key, id, explanation, created_at
from trinomial_results
order by created_at desc`
	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	records := []*domain.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.DB.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*domain.Record, error) {
	var (
		rec domain.Record
		js  []byte
	)
	if err := row.Scan(&rec.Key, &rec.ID, &js, &rec.CreatedAt); err != nil {
		return nil, err
	}
	var exp domain.Explanation
	if err := json.Unmarshal(js, &exp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal explanation for %s: %w", rec.Key, err)
	}
	rec.Explanation = &exp
	return &rec, nil
}
