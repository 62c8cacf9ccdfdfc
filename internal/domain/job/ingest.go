package job

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/honeycarbs/talentry/internal/domain"
	"github.com/honeycarbs/talentry/internal/errs"
	"github.com/honeycarbs/talentry/internal/repository"
)

// Ingest stores records that are not in the jobs collection yet. Existing
// records are left untouched; records without an id are skipped.
func Ingest(ctx context.Context, store repository.RecordStore, paths repository.Paths, records []domain.JobRecord) (int, error) {
	created := 0
	for _, r := range records {
		if r.ID == "" {
			continue
		}

		_, err := store.Get(ctx, paths.Jobs(), r.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return created, errs.RecordStore("read job", err)
		}

		data, err := json.Marshal(r)
		if err != nil {
			return created, errs.RecordStore("encode job", err)
		}
		if err := store.Set(ctx, paths.Jobs(), r.ID, data); err != nil {
			return created, errs.RecordStore("write job", err)
		}
		created++
	}
	return created, nil
}
