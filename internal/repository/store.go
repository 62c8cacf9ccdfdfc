package repository

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound is returned by RecordStore.Get when no document exists for a key
var ErrNotFound = errors.New("repository: document not found")

// Direction orders QueryAllOrdered results
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Document is a JSON value stored under a key inside a collection
type Document struct {
	Key  string
	Data json.RawMessage
}

// RecordStore is a keyed document store namespaced by collection path.
// Writes overwrite; there are no transactions or versions.
type RecordStore interface {
	// Get returns ErrNotFound when the key is absent
	Get(ctx context.Context, collection, key string) (Document, error)

	// Set creates or overwrites the document at key
	Set(ctx context.Context, collection, key string, data json.RawMessage) error

	// QueryAll returns every document of the collection in key order
	QueryAll(ctx context.Context, collection string) ([]Document, error)

	// QueryAllOrdered orders by a top-level JSON field; documents missing the
	// field come last in either direction
	QueryAllOrdered(ctx context.Context, collection, field string, dir Direction) ([]Document, error)
}
