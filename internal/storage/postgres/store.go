package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/honeycarbs/talentry/internal/repository"
)

var _ repository.RecordStore = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	key        TEXT NOT NULL,
	data       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (collection, key)
)`

// Store keeps documents in a single jsonb table keyed by (collection, key)
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Store using pool
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the documents table when it does not exist
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres store: ensure schema: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, collection, key string) (repository.Document, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND key = $2`,
		collection, key,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.Document{}, repository.ErrNotFound
	}
	if err != nil {
		return repository.Document{}, fmt.Errorf("postgres store: get %s/%s: %w", collection, key, err)
	}
	return repository.Document{Key: key, Data: json.RawMessage(data)}, nil
}

func (s *Store) Set(ctx context.Context, collection, key string, data json.RawMessage) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO documents (collection, key, data, updated_at)
		VALUES ($1, $2, $3::jsonb, now())
		ON CONFLICT (collection, key)
		DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		collection, key, string(data),
	)
	if err != nil {
		return fmt.Errorf("postgres store: set %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *Store) QueryAll(ctx context.Context, collection string) ([]repository.Document, error) {
	return s.query(ctx, collection,
		`SELECT key, data FROM documents WHERE collection = $1 ORDER BY key`,
		collection,
	)
}

func (s *Store) QueryAllOrdered(ctx context.Context, collection, field string, dir repository.Direction) ([]repository.Document, error) {
	order := "ASC"
	if dir == repository.Descending {
		order = "DESC"
	}
	// jsonb orders strings before numbers; SortByField puts numbers first
	docs, err := s.query(ctx, collection,
		fmt.Sprintf(`SELECT key, data FROM documents WHERE collection = $1
			ORDER BY data->($2::text) %s NULLS LAST, key`, order),
		collection, field,
	)
	if err != nil {
		return nil, err
	}
	repository.SortByField(docs, field, dir)
	return docs, nil
}

func (s *Store) query(ctx context.Context, collection, sql string, args ...any) ([]repository.Document, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres store: query %s: %w", collection, err)
	}
	defer rows.Close()

	docs := make([]repository.Document, 0)
	for rows.Next() {
		var (
			key  string
			data []byte
		)
		if err := rows.Scan(&key, &data); err != nil {
			return nil, fmt.Errorf("postgres store: scan %s: %w", collection, err)
		}
		docs = append(docs, repository.Document{Key: key, Data: json.RawMessage(data)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres store: query %s: %w", collection, err)
	}
	return docs, nil
}
