package job

import (
	"context"

	"github.com/honeycarbs/talentry/internal/domain"
)

// Provider is an external job search service (JSearch, Adzuna)
type Provider interface {
	// e.g. "jsearch" or "adzuna"
	Name() string

	// Search fetches pageCount pages starting at page for the composed query.
	// Failures are *errs.Error with CodeProviderFetch.
	Search(ctx context.Context, query string, page, pageCount int, country string) (domain.ProviderPayload, error)
}
