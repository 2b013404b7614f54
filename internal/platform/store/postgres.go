package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"evsops/internal/platform/bus"
	"evsops/pkg/platform/sentinel"
)

// Postgres stores each collection as JSONB documents in a shared table.
// Replace-by-id maps to an upsert; Execute takes a row lock so the
// validate/mutate pair sees a stable document.
type Postgres[T any] struct {
	name   string
	pool   *pgxpool.Pool
	broker bus.Broker
}

func NewPostgres[T any](name string, pool *pgxpool.Pool, broker bus.Broker) *Postgres[T] {
	return &Postgres[T]{name: name, pool: pool, broker: broker}
}

// Migrate creates the shared document table. Called once at startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			collection  text        NOT NULL,
			id          text        NOT NULL,
			doc         jsonb       NOT NULL,
			updated_at  timestamptz NOT NULL DEFAULT now(),
			PRIMARY KEY (collection, id)
		)`)
	if err != nil {
		return fmt.Errorf("migrate documents table: %w", err)
	}
	return nil
}

func (p *Postgres[T]) ReadAll(ctx context.Context) ([]T, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT doc FROM documents WHERE collection = $1 ORDER BY updated_at, id`, p.name)
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", p.name, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan %s document: %w", p.name, err)
		}
		var doc T
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode %s document: %w", p.name, err)
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (p *Postgres[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	var raw []byte
	err := p.pool.QueryRow(ctx,
		`SELECT doc FROM documents WHERE collection = $1 AND id = $2`, p.name, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, sentinel.ErrNotFound
	}
	if err != nil {
		return zero, fmt.Errorf("get %s/%s: %w", p.name, id, err)
	}
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return zero, fmt.Errorf("decode %s/%s: %w", p.name, id, err)
	}
	return doc, nil
}

func (p *Postgres[T]) Put(ctx context.Context, id string, doc T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", p.name, id, err)
	}
	_, err = p.pool.Exec(ctx, `
		INSERT INTO documents (collection, id, doc) VALUES ($1, $2, $3)
		ON CONFLICT (collection, id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`,
		p.name, id, raw)
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", p.name, id, err)
	}
	p.broker.Publish(ctx, p.name, id)
	return nil
}

func (p *Postgres[T]) Execute(ctx context.Context, id string, validate func(*T) error, mutate func(*T)) (T, error) {
	var zero T
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return zero, fmt.Errorf("begin %s/%s: %w", p.name, id, err)
	}
	defer tx.Rollback(ctx)

	var raw []byte
	err = tx.QueryRow(ctx,
		`SELECT doc FROM documents WHERE collection = $1 AND id = $2 FOR UPDATE`,
		p.name, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, sentinel.ErrNotFound
	}
	if err != nil {
		return zero, fmt.Errorf("lock %s/%s: %w", p.name, id, err)
	}

	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return zero, fmt.Errorf("decode %s/%s: %w", p.name, id, err)
	}
	if err := validate(&doc); err != nil {
		return zero, err
	}
	mutate(&doc)

	updated, err := json.Marshal(doc)
	if err != nil {
		return zero, fmt.Errorf("encode %s/%s: %w", p.name, id, err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE documents SET doc = $3, updated_at = now() WHERE collection = $1 AND id = $2`,
		p.name, id, updated); err != nil {
		return zero, fmt.Errorf("update %s/%s: %w", p.name, id, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return zero, fmt.Errorf("commit %s/%s: %w", p.name, id, err)
	}

	p.broker.Publish(ctx, p.name, id)
	return doc, nil
}

func (p *Postgres[T]) Subscribe(fn bus.Handler) {
	p.broker.Subscribe(p.name, fn)
}
