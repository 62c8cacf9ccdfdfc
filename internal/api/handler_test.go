package api

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/talentry/internal/domain"
	"github.com/honeycarbs/talentry/internal/domain/application"
	"github.com/honeycarbs/talentry/internal/domain/job"
	"github.com/honeycarbs/talentry/internal/errs"
	"github.com/honeycarbs/talentry/internal/repository"
	redisstore "github.com/honeycarbs/talentry/internal/storage/redis"
	"github.com/honeycarbs/talentry/pkg/logging/loggingtest"
)

type stubProvider struct {
	calls   int
	payload domain.ProviderPayload
	err     error
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Search(context.Context, string, int, int, string) (domain.ProviderPayload, error) {
	p.calls++
	return p.payload, p.err
}

type fixture struct {
	mux      *http.ServeMux
	store    repository.RecordStore
	paths    repository.Paths
	provider *stubProvider
}

func ptr[T any](v T) *T { return &v }

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := redisstore.NewStore(client)
	paths := repository.NewPaths("test-app")
	provider := &stubProvider{payload: domain.ProviderPayload{
		Status: "OK",
		Data: []domain.JobRecord{
			{ID: "p1", Title: "Backend Engineer", EmployerName: "Acme", EmploymentType: "FULLTIME"},
			{ID: "p2", Title: "Designer", EmployerName: "Globex", EmploymentType: "CONTRACT"},
		},
	}}
	logger := loggingtest.New(t)

	jobs, err := job.NewService(
		job.WithStore(store),
		job.WithProvider(provider),
		job.WithPaths(paths),
		job.WithLogger(logger),
	)
	require.NoError(t, err)
	apps, err := application.NewService(store, paths, application.WithLogger(logger))
	require.NoError(t, err)

	mux := http.NewServeMux()
	NewHandler(jobs, apps, logger).Register(mux)
	return &fixture{mux: mux, store: store, paths: paths, provider: provider}
}

func (f *fixture) seed(t *testing.T, records ...domain.JobRecord) {
	t.Helper()
	for _, r := range records {
		data, err := json.Marshal(r)
		require.NoError(t, err)
		require.NoError(t, f.store.Set(context.Background(), f.paths.Jobs(), r.ID, data))
	}
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func TestSearchJobs_Provider(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/jobs?query=engineer&employmentTypes=FULLTIME", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp domain.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "OK", resp.Status)
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, "engineer", resp.Parameters.FreeText)
	assert.Equal(t, 1, resp.TotalResults)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "p1", resp.Data[0].ID)

	rec = f.do(t, http.MethodGet, "/api/jobs?query=engineer&employmentTypes=FULLTIME", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, f.provider.calls)
}

func TestSearchJobs_ProviderFailure(t *testing.T) {
	f := newFixture(t)
	f.provider.err = errs.ProviderFetch("stub", http.StatusTooManyRequests, assert.AnError)

	rec := f.do(t, http.MethodGet, "/api/jobs?freeText=go", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, errs.CodeProviderFetch, body.Code)
	assert.Contains(t, body.Error, "stub")
}

func TestSearchJobs_BadParams(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/jobs?salaryMin=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, f.provider.calls)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, errs.CodeValidation, body.Code)
	assert.Equal(t, []string{"salaryMin must be a number"}, body.Details)
}

func TestSearchJobs_Corpus(t *testing.T) {
	f := newFixture(t)
	f.seed(t,
		domain.JobRecord{ID: "a", Title: "Go Developer", EmployerName: "Acme", PostedAt: ptr(int64(100))},
		domain.JobRecord{ID: "b", Title: "Go Lead", EmployerName: "Acme", PostedAt: ptr(int64(300))},
	)

	rec := f.do(t, http.MethodGet, "/api/jobs?source=corpus&freeText=go&sortOrder=newest", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "b", resp.Data[0].ID)
	assert.Zero(t, f.provider.calls)
}

func TestSearchJobs_HugePagingValues(t *testing.T) {
	f := newFixture(t)
	f.seed(t,
		domain.JobRecord{ID: "a", Title: "Go Developer"},
		domain.JobRecord{ID: "b", Title: "Go Lead"},
	)
	maxInt := strconv.Itoa(math.MaxInt)

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{"corpus page count", "/api/jobs?source=corpus&freeText=go&pageCount=" + maxInt, []string{"a", "b"}},
		{"corpus page", "/api/jobs?source=corpus&freeText=go&page=" + maxInt, []string{}},
		{"corpus page size", "/api/jobs?source=corpus&freeText=go&pageSize=" + maxInt + "&pageCount=" + maxInt, []string{"a", "b"}},
		{"provider page count", "/api/jobs?freeText=engineer&employmentTypes=FULLTIME&pageCount=" + maxInt, []string{"p1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var resp domain.SearchResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			got := make([]string, 0, len(resp.Data))
			for _, r := range resp.Data {
				got = append(got, r.ID)
			}
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestGetJob(t *testing.T) {
	f := newFixture(t)
	f.seed(t, domain.JobRecord{ID: "job-1", Title: "SRE", EmployerName: "Initech"})

	rec := f.do(t, http.MethodGet, "/api/job/job-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var record domain.JobRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	assert.Equal(t, "SRE", record.Title)

	rec = f.do(t, http.MethodGet, "/api/job/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListCompanies(t *testing.T) {
	f := newFixture(t)
	f.seed(t,
		domain.JobRecord{ID: "1", EmployerName: "Acme"},
		domain.JobRecord{ID: "2", EmployerName: "Globex", EmployerLogoURL: ptr("https://globex/logo.png")},
		domain.JobRecord{ID: "3", EmployerName: "Acme"},
	)

	rec := f.do(t, http.MethodGet, "/api/companies", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp companiesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "OK", resp.Status)
	assert.Equal(t, 2, resp.TotalCompanies)
	assert.Equal(t, "Acme", resp.Data[0].Name)
	assert.Equal(t, 2, resp.Data[0].JobCount)
}

func TestCuratedJobs(t *testing.T) {
	f := newFixture(t)
	f.seed(t,
		domain.JobRecord{ID: "old", PostedAt: ptr(int64(1))},
		domain.JobRecord{ID: "new", PostedAt: ptr(int64(9))},
	)

	rec := f.do(t, http.MethodGet, "/api/jobs/curated", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var curated domain.CuratedJobs
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &curated))
	require.Len(t, curated.Latest, 2)
	assert.Equal(t, "new", curated.Latest[0].ID)
}

func TestSubmitApplication(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/applications", `{
		"userId": "u1",
		"jobId": "job-1",
		"jobTitle": "SRE",
		"companyName": "Initech",
		"applicantName": "Sam Doe",
		"applicantEmail": "sam@example.com",
		"applicantPhone": "555-0100"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp applicationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)

	doc, err := f.store.Get(context.Background(), f.paths.Applications("u1"), resp.ID)
	require.NoError(t, err)
	assert.Contains(t, string(doc.Data), `"jobId":"job-1"`)
}

func TestSubmitApplication_Invalid(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/applications", `{"userId": "u1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, errs.CodeValidation, body.Code)
	assert.NotEmpty(t, body.Details)
}

func TestUnknownMethod(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodDelete, "/api/jobs", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
