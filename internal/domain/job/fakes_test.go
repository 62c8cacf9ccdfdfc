package job

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/honeycarbs/talentry/internal/domain"
	"github.com/honeycarbs/talentry/internal/repository"
	redisstore "github.com/honeycarbs/talentry/internal/storage/redis"
)

// countingStore wraps a miniredis-backed store and counts calls per collection
type countingStore struct {
	repository.RecordStore

	mu       sync.Mutex
	gets     map[string]int
	sets     map[string]int
	getErr   error
	setErr   error
	queryErr error
}

func newCountingStore(t *testing.T) *countingStore {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return &countingStore{
		RecordStore: redisstore.NewStore(client),
		gets:        make(map[string]int),
		sets:        make(map[string]int),
	}
}

func (s *countingStore) Get(ctx context.Context, collection, key string) (repository.Document, error) {
	s.mu.Lock()
	s.gets[collection]++
	err := s.getErr
	s.mu.Unlock()
	if err != nil {
		return repository.Document{}, err
	}
	return s.RecordStore.Get(ctx, collection, key)
}

func (s *countingStore) Set(ctx context.Context, collection, key string, data json.RawMessage) error {
	s.mu.Lock()
	s.sets[collection]++
	err := s.setErr
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.RecordStore.Set(ctx, collection, key, data)
}

func (s *countingStore) QueryAll(ctx context.Context, collection string) ([]repository.Document, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	return s.RecordStore.QueryAll(ctx, collection)
}

func (s *countingStore) setCount(collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets[collection]
}

func (s *countingStore) putJSON(t *testing.T, collection, key string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := s.RecordStore.Set(context.Background(), collection, key, data); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

type providerCall struct {
	query     string
	page      int
	pageCount int
	country   string
}

type fakeProvider struct {
	mu      sync.Mutex
	calls   []providerCall
	records []domain.JobRecord
	err     error
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Search(_ context.Context, query string, page, pageCount int, country string) (domain.ProviderPayload, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, providerCall{query: query, page: page, pageCount: pageCount, country: country})
	if p.err != nil {
		return domain.ProviderPayload{}, p.err
	}
	return domain.ProviderPayload{Status: "OK", RequestID: "req", Data: p.records}, nil
}

func (p *fakeProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type recordedLookups struct {
	mu       sync.Mutex
	lookups  []Lookup
	failures int
}

func (r *recordedLookups) CacheLookup(l Lookup) {
	r.mu.Lock()
	r.lookups = append(r.lookups, l)
	r.mu.Unlock()
}

func (r *recordedLookups) ProviderRequest(_ string, err error) {
	if err != nil {
		r.mu.Lock()
		r.failures++
		r.mu.Unlock()
	}
}

func (r *recordedLookups) SearchCompleted(string, time.Duration) {}

func ptr[T any](v T) *T {
	return &v
}
