package job

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/talentry/internal/domain"
	"github.com/honeycarbs/talentry/internal/errs"
	"github.com/honeycarbs/talentry/internal/repository"
)

func TestIngest_CreateIfAbsent(t *testing.T) {
	store := newCountingStore(t)
	paths := repository.NewPaths("ingest")
	ctx := context.Background()

	created, err := Ingest(ctx, store, paths, []domain.JobRecord{{ID: "a"}, {ID: "b"}})
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	created, err = Ingest(ctx, store, paths, []domain.JobRecord{{ID: "a"}, {ID: "c"}, {}})
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 3, store.setCount(paths.Jobs()))
}

func TestIngest_StoreError(t *testing.T) {
	store := newCountingStore(t)
	store.getErr = errors.New("boom")

	created, err := Ingest(context.Background(), store, repository.NewPaths(""), []domain.JobRecord{{ID: "a"}})
	require.Error(t, err)
	assert.Equal(t, 0, created)
	assert.True(t, errs.Is(err, errs.CodeRecordStore))
}
