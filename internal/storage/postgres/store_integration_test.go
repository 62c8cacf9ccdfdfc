package postgres

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/talentry/internal/repository"

	pkgpostgres "github.com/honeycarbs/talentry/pkg/postgres"
)

func TestStore_Integration(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	pool, err := pkgpostgres.NewPool(pkgpostgres.Config{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	ctx := context.Background()
	store := NewStore(pool)
	require.NoError(t, store.EnsureSchema(ctx))

	collection := "test/" + uuid.NewString()
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM documents WHERE collection = $1`, collection)
	})

	_, err = store.Get(ctx, collection, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, store.Set(ctx, collection, "b", json.RawMessage(`{"ts":100}`)))
	require.NoError(t, store.Set(ctx, collection, "a", json.RawMessage(`{"ts":300}`)))
	require.NoError(t, store.Set(ctx, collection, "c", json.RawMessage(`{}`)))
	require.NoError(t, store.Set(ctx, collection, "b", json.RawMessage(`{"ts":200}`)))

	doc, err := store.Get(ctx, collection, "b")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ts":200}`, string(doc.Data))

	docs, err := store.QueryAll(ctx, collection)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "a", docs[0].Key)

	docs, err = store.QueryAllOrdered(ctx, collection, "ts", repository.Ascending)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{docs[0].Key, docs[1].Key, docs[2].Key})
}
