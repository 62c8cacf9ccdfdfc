package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/honeycarbs/talentry/internal/repository"
)

var _ repository.RecordStore = (*Store)(nil)

const defaultPrefix = "talentry:"

// Store keeps each collection in one Redis hash, field = document key
type Store struct {
	client goredis.UniversalClient
	prefix string
}

// Option configures a Store
type Option func(*Store)

// WithPrefix overrides the hash name prefix
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// NewStore creates a Store backed by client
func NewStore(client goredis.UniversalClient, opts ...Option) *Store {
	s := &Store{client: client, prefix: defaultPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) hash(collection string) string {
	return s.prefix + collection
}

func (s *Store) Get(ctx context.Context, collection, key string) (repository.Document, error) {
	val, err := s.client.HGet(ctx, s.hash(collection), key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return repository.Document{}, repository.ErrNotFound
	}
	if err != nil {
		return repository.Document{}, fmt.Errorf("redis store: get %s/%s: %w", collection, key, err)
	}
	return repository.Document{Key: key, Data: json.RawMessage(val)}, nil
}

func (s *Store) Set(ctx context.Context, collection, key string, data json.RawMessage) error {
	if err := s.client.HSet(ctx, s.hash(collection), key, []byte(data)).Err(); err != nil {
		return fmt.Errorf("redis store: set %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *Store) QueryAll(ctx context.Context, collection string) ([]repository.Document, error) {
	vals, err := s.client.HGetAll(ctx, s.hash(collection)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis store: query %s: %w", collection, err)
	}

	docs := make([]repository.Document, 0, len(vals))
	for key, val := range vals {
		docs = append(docs, repository.Document{Key: key, Data: json.RawMessage(val)})
	}
	repository.SortByKey(docs)
	return docs, nil
}

func (s *Store) QueryAllOrdered(ctx context.Context, collection, field string, dir repository.Direction) ([]repository.Document, error) {
	docs, err := s.QueryAll(ctx, collection)
	if err != nil {
		return nil, err
	}
	repository.SortByField(docs, field, dir)
	return docs, nil
}
