package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/honeycarbs/talentry/internal/domain"
	"github.com/honeycarbs/talentry/internal/errs"
	"github.com/honeycarbs/talentry/internal/repository"
	"github.com/honeycarbs/talentry/pkg/logging"
)

// CacheTTL is how long a provider response is served without refresh
const CacheTTL = 6 * time.Hour

// CacheConfig holds Cache dependencies; Clock, Logger and Recorder are optional
type CacheConfig struct {
	Store    repository.RecordStore
	Provider Provider
	Paths    repository.Paths
	Clock    func() time.Time
	Logger   *logging.Logger
	Recorder Recorder
}

// Cache memoizes provider responses in the record store.
// Concurrent misses on one key each fetch and the last write wins.
type Cache struct {
	store    repository.RecordStore
	provider Provider
	paths    repository.Paths
	clock    func() time.Time
	logger   *logging.Logger
	recorder Recorder
}

// NewCache validates cfg and fills optional fields
func NewCache(cfg CacheConfig) (*Cache, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("job.Cache: store is required")
	}
	if cfg.Provider == nil {
		return nil, fmt.Errorf("job.Cache: provider is required")
	}

	c := &Cache{
		store:    cfg.Store,
		provider: cfg.Provider,
		paths:    cfg.Paths,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
		recorder: cfg.Recorder,
	}
	if c.clock == nil {
		c.clock = time.Now
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	if c.recorder == nil {
		c.recorder = nopRecorder{}
	}
	return c, nil
}

// FetchSearchResults returns the cached payload when it is younger than
// CacheTTL, otherwise fetches from the provider and overwrites the entry.
// A provider failure never falls back to a stale entry.
func (c *Cache) FetchSearchResults(ctx context.Context, criteria domain.SearchCriteria) (domain.ProviderPayload, Lookup, error) {
	key := ComposeCacheKey(criteria.FreeText, criteria.Location, criteria.Page, criteria.PageCount, criteria.Country)
	log := c.logger.With("cacheKey", key)
	now := c.clock()

	lookup := LookupMiss
	doc, err := c.store.Get(ctx, c.paths.SearchCache(), key)
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		return domain.ProviderPayload{}, "", errs.RecordStore("read search cache", err)
	default:
		payload, fetchedAt, decodeErr := decodeCached(doc.Data)
		switch {
		case decodeErr != nil:
			log.Warn("discarding unreadable cache entry", "error", decodeErr)
		case now.Sub(fetchedAt) < CacheTTL:
			c.recorder.CacheLookup(LookupHit)
			log.Debug("search cache hit", "age", now.Sub(fetchedAt))
			return payload, LookupHit, nil
		default:
			lookup = LookupStale
		}
	}
	c.recorder.CacheLookup(lookup)
	log.Info("search cache "+string(lookup), "provider", c.provider.Name())

	query := ComposeProviderQuery(criteria.FreeText, criteria.Location)
	payload, err := c.provider.Search(ctx, query, criteria.Page, criteria.PageCount, criteria.Country)
	c.recorder.ProviderRequest(c.provider.Name(), err)
	if err != nil {
		var coded *errs.Error
		if !errors.As(err, &coded) {
			err = errs.ProviderFetch(c.provider.Name(), 0, err)
		}
		log.Error("provider fetch failed", "provider", c.provider.Name(), "query", query, "error", err)
		return domain.ProviderPayload{}, lookup, err
	}
	if payload.Data == nil {
		payload.Data = []domain.JobRecord{}
	}

	if err := c.write(ctx, key, query, criteria, payload, now); err != nil {
		return domain.ProviderPayload{}, lookup, err
	}
	return payload, lookup, nil
}

func (c *Cache) write(ctx context.Context, key, query string, criteria domain.SearchCriteria, payload domain.ProviderPayload, now time.Time) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return errs.RecordStore("encode search cache", err)
	}
	entry, err := json.Marshal(domain.CachedSearchResult{
		CacheKey:  key,
		Payload:   raw,
		FetchedAt: now.UTC(),
		Query:     query,
		Location:  criteria.Location,
		Page:      criteria.Page,
		PageCount: criteria.PageCount,
		Country:   criteria.Country,
	})
	if err != nil {
		return errs.RecordStore("encode search cache", err)
	}
	if err := c.store.Set(ctx, c.paths.SearchCache(), key, entry); err != nil {
		return errs.RecordStore("write search cache", err)
	}
	return nil
}

func decodeCached(data json.RawMessage) (domain.ProviderPayload, time.Time, error) {
	var entry domain.CachedSearchResult
	if err := json.Unmarshal(data, &entry); err != nil {
		return domain.ProviderPayload{}, time.Time{}, err
	}
	if entry.FetchedAt.IsZero() {
		return domain.ProviderPayload{}, time.Time{}, fmt.Errorf("cache entry has no fetchedAt")
	}
	var payload domain.ProviderPayload
	if err := json.Unmarshal(entry.Payload, &payload); err != nil {
		return domain.ProviderPayload{}, time.Time{}, err
	}
	return payload, entry.FetchedAt, nil
}
