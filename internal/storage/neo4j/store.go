package neo4j

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/talentry/internal/repository"

	pkgneo4j "github.com/honeycarbs/talentry/pkg/neo4j"
)

// Ensure Store implements repository.RecordStore
var _ repository.RecordStore = (*Store)(nil)

// Store keeps documents as (:Document {collection, key, data}) nodes
type Store struct {
	client *pkgneo4j.Client
}

// NewStore creates a Store with a Neo4j client
func NewStore(client *pkgneo4j.Client) *Store {
	return &Store{
		client: client,
	}
}

// EnsureConstraints creates the uniqueness constraint backing MERGE lookups
func (s *Store) EnsureConstraints(ctx context.Context) error {
	session := s.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		CREATE CONSTRAINT document_identity IF NOT EXISTS
		FOR (d:Document) REQUIRE (d.collection, d.key) IS UNIQUE
	`

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("neo4j store: ensure constraints: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, collection, key string) (repository.Document, error) {
	query := `
		MATCH (d:Document {collection: $collection, key: $key})
		RETURN d.key AS key, d.data AS data
	`

	docs, err := s.read(ctx, query, map[string]any{"collection": collection, "key": key})
	if err != nil {
		return repository.Document{}, fmt.Errorf("neo4j store: get %s/%s: %w", collection, key, err)
	}
	if len(docs) == 0 {
		return repository.Document{}, repository.ErrNotFound
	}
	return docs[0], nil
}

func (s *Store) Set(ctx context.Context, collection, key string, data json.RawMessage) error {
	session := s.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MERGE (d:Document {collection: $collection, key: $key})
		SET d.data = $data,
		    d.updatedAt = datetime()
	`

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, map[string]any{
			"collection": collection,
			"key":        key,
			"data":       string(data),
		})
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("neo4j store: set %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *Store) QueryAll(ctx context.Context, collection string) ([]repository.Document, error) {
	query := `
		MATCH (d:Document {collection: $collection})
		RETURN d.key AS key, d.data AS data
		ORDER BY d.key
	`

	docs, err := s.read(ctx, query, map[string]any{"collection": collection})
	if err != nil {
		return nil, fmt.Errorf("neo4j store: query %s: %w", collection, err)
	}
	return docs, nil
}

// QueryAllOrdered sorts in process since data is stored as an opaque JSON string
func (s *Store) QueryAllOrdered(ctx context.Context, collection, field string, dir repository.Direction) ([]repository.Document, error) {
	docs, err := s.QueryAll(ctx, collection)
	if err != nil {
		return nil, err
	}
	repository.SortByField(docs, field, dir)
	return docs, nil
}

func (s *Store) read(ctx context.Context, query string, params map[string]any) ([]repository.Document, error) {
	session := s.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		records, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}

		docs := make([]repository.Document, 0)
		for records.Next(ctx) {
			record := records.Record()

			key, _, err := neo4j.GetRecordValue[string](record, "key")
			if err != nil {
				return nil, err
			}
			data, _, err := neo4j.GetRecordValue[string](record, "data")
			if err != nil {
				return nil, err
			}
			docs = append(docs, repository.Document{Key: key, Data: json.RawMessage(data)})
		}
		if err := records.Err(); err != nil {
			return nil, err
		}
		return docs, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]repository.Document), nil
}
