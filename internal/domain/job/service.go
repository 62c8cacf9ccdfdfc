package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/talentry/internal/domain"
	"github.com/honeycarbs/talentry/internal/domain/job/filter"
	"github.com/honeycarbs/talentry/internal/errs"
	"github.com/honeycarbs/talentry/internal/repository"
	"github.com/honeycarbs/talentry/pkg/logging"
)

const (
	statusOK        = "OK"
	curatedLatest   = 4
	curatedFeatured = 4
)

type Service interface {
	Search(ctx context.Context, criteria domain.SearchCriteria) (domain.SearchResponse, error)
	GetJob(ctx context.Context, id string) (domain.JobRecord, error)
	ListCompanies(ctx context.Context) ([]domain.Company, error)
	Curated(ctx context.Context) (domain.CuratedJobs, error)
}

// Settings are the tunables read from configuration
type Settings struct {
	PageSize      int
	IngestResults bool
}

// Option configures Service
type Option func(*config)

type config struct {
	provider Provider
	store    repository.RecordStore
	paths    repository.Paths
	engine   *filter.Engine
	clock    func() time.Time
	logger   *logging.Logger
	recorder Recorder
	settings Settings
}

// WithProvider sets the external search provider
func WithProvider(p Provider) Option {
	return func(c *config) {
		c.provider = p
	}
}

// WithStore sets the record store
func WithStore(store repository.RecordStore) Option {
	return func(c *config) {
		c.store = store
	}
}

// WithPaths sets the collection namespace
func WithPaths(paths repository.Paths) Option {
	return func(c *config) {
		c.paths = paths
	}
}

// WithEngine sets the filter engine
func WithEngine(e *filter.Engine) Option {
	return func(c *config) {
		c.engine = e
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

func WithLogger(logger *logging.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func WithRecorder(r Recorder) Option {
	return func(c *config) {
		c.recorder = r
	}
}

// WithIngest persists fresh provider results into the jobs collection
func WithIngest(enabled bool) Option {
	return func(c *config) {
		c.settings.IngestResults = enabled
	}
}

// WithPageSize sets the page size used when criteria carry none
func WithPageSize(n int) Option {
	return func(c *config) {
		c.settings.PageSize = n
	}
}

// NewService builds Service from options
func NewService(opts ...Option) (Service, error) {
	cfg := &config{
		paths:    repository.NewPaths(""),
		clock:    time.Now,
		logger:   logging.NewNop(),
		recorder: nopRecorder{},
		settings: Settings{PageSize: domain.DefaultPageSize},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return newService(cfg)
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(
	store repository.RecordStore,
	provider Provider,
	engine *filter.Engine,
	paths repository.Paths,
	logger *logging.Logger,
	recorder Recorder,
	settings Settings,
) (Service, error) {
	return newService(&config{
		provider: provider,
		store:    store,
		paths:    paths,
		engine:   engine,
		clock:    time.Now,
		logger:   logger,
		recorder: recorder,
		settings: settings,
	})
}

func newService(cfg *config) (Service, error) {
	if cfg.store == nil {
		return nil, fmt.Errorf("job.Service: record store is required")
	}
	if cfg.provider == nil {
		return nil, fmt.Errorf("job.Service: provider is required")
	}
	if cfg.logger == nil {
		cfg.logger = logging.NewNop()
	}
	if cfg.engine == nil {
		cfg.engine = filter.NewEngine(filter.WithLogger(cfg.logger))
	}
	if cfg.recorder == nil {
		cfg.recorder = nopRecorder{}
	}

	cache, err := NewCache(CacheConfig{
		Store:    cfg.store,
		Provider: cfg.provider,
		Paths:    cfg.paths,
		Clock:    cfg.clock,
		Logger:   cfg.logger,
		Recorder: cfg.recorder,
	})
	if err != nil {
		return nil, err
	}

	return &service{
		cache:    cache,
		store:    cfg.store,
		paths:    cfg.paths,
		engine:   cfg.engine,
		clock:    cfg.clock,
		logger:   cfg.logger,
		recorder: cfg.recorder,
		settings: cfg.settings,
	}, nil
}

type service struct {
	cache    *Cache
	store    repository.RecordStore
	paths    repository.Paths
	engine   *filter.Engine
	clock    func() time.Time
	logger   *logging.Logger
	recorder Recorder
	settings Settings
}

// Search runs the criteria against the provider (through the cache) or the
// stored corpus, then filters, sorts and pages the pool
func (s *service) Search(ctx context.Context, criteria domain.SearchCriteria) (domain.SearchResponse, error) {
	started := s.clock()
	c := criteria.Normalize(s.settings.PageSize)

	var pool []domain.JobRecord
	switch c.Source {
	case domain.SourceCorpus:
		records, err := s.loadJobs(ctx)
		if err != nil {
			return domain.SearchResponse{}, err
		}
		pool = records
	default:
		payload, lookup, err := s.cache.FetchSearchResults(ctx, c)
		if err != nil {
			return domain.SearchResponse{}, err
		}
		pool = payload.Data
		if s.settings.IngestResults && lookup != LookupHit {
			s.ingest(ctx, pool)
		}
	}

	res := s.engine.Apply(pool, c)
	s.recorder.SearchCompleted(string(c.Source), s.clock().Sub(started))

	return domain.SearchResponse{
		Status:       statusOK,
		RequestID:    uuid.NewString(),
		Parameters:   c,
		Data:         res.Records,
		TotalResults: res.Total,
	}, nil
}

func (s *service) ingest(ctx context.Context, records []domain.JobRecord) {
	created, err := Ingest(ctx, s.store, s.paths, records)
	if err != nil {
		s.logger.Error("ingest provider results", "error", err, "created", created)
		return
	}
	if created > 0 {
		s.logger.Info("ingested provider results", "created", created)
	}
}

func (s *service) GetJob(ctx context.Context, id string) (domain.JobRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.JobRecord{}, errs.Validation("job id is required")
	}

	doc, err := s.store.Get(ctx, s.paths.Jobs(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.JobRecord{}, errs.NotFound(fmt.Sprintf("job %q not found", id))
	}
	if err != nil {
		return domain.JobRecord{}, errs.RecordStore("read job", err)
	}

	var record domain.JobRecord
	if err := json.Unmarshal(doc.Data, &record); err != nil {
		return domain.JobRecord{}, errs.RecordStore("decode job", err)
	}
	if record.ID == "" {
		record.ID = doc.Key
	}
	return record, nil
}

// ListCompanies groups stored jobs by employer in first-seen order
func (s *service) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	records, err := s.loadJobs(ctx)
	if err != nil {
		return nil, err
	}

	companies := make([]domain.Company, 0)
	index := make(map[string]int)
	for _, r := range records {
		name := strings.TrimSpace(r.EmployerName)
		if name == "" {
			continue
		}

		i, ok := index[name]
		if !ok {
			i = len(companies)
			index[name] = i
			companies = append(companies, domain.Company{Name: name})
		}
		companies[i].JobCount++
		if companies[i].Logo == nil && r.EmployerLogoURL != nil && *r.EmployerLogoURL != "" {
			logo := *r.EmployerLogoURL
			companies[i].Logo = &logo
		}
	}
	return companies, nil
}

// Curated returns the newest postings and a category-diverse featured set
func (s *service) Curated(ctx context.Context) (domain.CuratedJobs, error) {
	docs, err := s.store.QueryAllOrdered(ctx, s.paths.Jobs(), domain.FieldPostedAt, repository.Descending)
	if err != nil {
		return domain.CuratedJobs{}, errs.RecordStore("query jobs", err)
	}
	records := s.decodeJobs(docs)

	n := min(curatedLatest, len(records))
	latest := records[:n]
	return domain.CuratedJobs{
		Latest:   latest,
		Featured: pickFeatured(records, n, curatedFeatured),
	}, nil
}

// pickFeatured takes one job per category from records[skip:], then fills
// from the remainder and finally from the head
func pickFeatured(records []domain.JobRecord, skip, want int) []domain.JobRecord {
	featured := make([]domain.JobRecord, 0, want)
	taken := make(map[int]bool)
	categories := make(map[string]bool)

	add := func(i int) {
		featured = append(featured, records[i])
		taken[i] = true
	}

	for i := skip; i < len(records) && len(featured) < want; i++ {
		cat := strings.ToLower(strings.TrimSpace(records[i].CategoryOrEmpty()))
		if cat == "" || categories[cat] {
			continue
		}
		categories[cat] = true
		add(i)
	}
	for i := skip; i < len(records) && len(featured) < want; i++ {
		if !taken[i] {
			add(i)
		}
	}
	for i := 0; i < skip && len(featured) < want; i++ {
		add(i)
	}
	return featured
}

func (s *service) loadJobs(ctx context.Context) ([]domain.JobRecord, error) {
	docs, err := s.store.QueryAll(ctx, s.paths.Jobs())
	if err != nil {
		return nil, errs.RecordStore("query jobs", err)
	}
	return s.decodeJobs(docs), nil
}

func (s *service) decodeJobs(docs []repository.Document) []domain.JobRecord {
	records := make([]domain.JobRecord, 0, len(docs))
	for _, doc := range docs {
		var r domain.JobRecord
		if err := json.Unmarshal(doc.Data, &r); err != nil {
			s.logger.Warn("skipping unreadable job", "key", doc.Key, "error", err)
			continue
		}
		if r.ID == "" {
			r.ID = doc.Key
		}
		records = append(records, r)
	}
	return records
}
