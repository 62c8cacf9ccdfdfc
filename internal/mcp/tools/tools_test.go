package tools

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/talentry/internal/domain"
	"github.com/honeycarbs/talentry/internal/errs"
	"github.com/honeycarbs/talentry/pkg/logging/loggingtest"
)

type fakeService struct {
	mu       sync.Mutex
	criteria []domain.SearchCriteria
	records  []domain.JobRecord
}

func (f *fakeService) Search(_ context.Context, c domain.SearchCriteria) (domain.SearchResponse, error) {
	f.mu.Lock()
	f.criteria = append(f.criteria, c)
	f.mu.Unlock()
	return domain.SearchResponse{
		Status:       "OK",
		RequestID:    "req-1",
		Parameters:   c,
		Data:         f.records,
		TotalResults: len(f.records),
	}, nil
}

func (f *fakeService) GetJob(_ context.Context, id string) (domain.JobRecord, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.JobRecord{}, errs.NotFound("job " + id + " not found")
}

func (f *fakeService) ListCompanies(context.Context) ([]domain.Company, error) {
	return []domain.Company{{Name: "Acme", JobCount: len(f.records)}}, nil
}

func (f *fakeService) Curated(context.Context) (domain.CuratedJobs, error) {
	return domain.CuratedJobs{}, nil
}

type fakeSheets struct {
	cleared  []string
	appended [][]any
}

func (f *fakeSheets) AppendValues(_ context.Context, _, _ string, values [][]any) error {
	f.appended = append(f.appended, values...)
	return nil
}

func (f *fakeSheets) ClearValues(_ context.Context, _, a1Range string) error {
	f.cleared = append(f.cleared, a1Range)
	return nil
}

func ptr[T any](v T) *T { return &v }

func sampleRecords() []domain.JobRecord {
	return []domain.JobRecord{
		{
			ID:             "j1",
			Title:          "Go Engineer",
			EmployerName:   "Acme",
			City:           ptr("Berlin"),
			Country:        ptr("DE"),
			EmploymentType: "FULLTIME",
			SalaryMin:      ptr(50000.0),
			SalaryMax:      ptr(70000.0),
			SalaryCurrency: ptr("EUR"),
			SalaryPeriod:   ptr("YEAR"),
			PostedAt:       ptr(int64(0)),
			ApplyLink:      ptr("https://acme.example/apply"),
		},
		{ID: "j2", Title: "UX Researcher", EmployerName: "Acme", IsRemote: true},
	}
}

func connect(t *testing.T, opts ...Option) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "test", Version: "0.0.1"}, nil)
	Register(server, loggingtest.New(t), opts...)

	serverT, clientT := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverT, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, clientT, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func callText(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	txt, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	return txt.Text, res.IsError
}

func TestJobSearchTool(t *testing.T) {
	svc := &fakeService{records: sampleRecords()}
	session := connect(t, WithJobSearch(svc))

	text, isErr := callText(t, session, "job_search", map[string]any{
		"freeText":        "engineer",
		"employmentTypes": []string{"FULLTIME"},
		"salaryMin":       40000,
		"sortOrder":       "newest",
		"source":          "corpus",
	})
	require.False(t, isErr, text)

	var resp domain.SearchResponse
	require.NoError(t, json.Unmarshal([]byte(text), &resp))
	assert.Equal(t, 2, resp.TotalResults)

	require.Len(t, svc.criteria, 1)
	c := svc.criteria[0]
	assert.Equal(t, "engineer", c.FreeText)
	assert.Equal(t, []string{"FULLTIME"}, c.EmploymentTypes)
	require.NotNil(t, c.SalaryMin)
	assert.Equal(t, 40000.0, *c.SalaryMin)
	assert.Equal(t, domain.SortNewest, c.SortOrder)
	assert.Equal(t, domain.SourceCorpus, c.Source)
}

func TestJobSearchTool_BadSortOrder(t *testing.T) {
	svc := &fakeService{}
	session := connect(t, WithJobSearch(svc))

	_, isErr := callText(t, session, "job_search", map[string]any{"sortOrder": "sideways"})
	assert.True(t, isErr)
	assert.Empty(t, svc.criteria)
}

func TestJobDetailTool(t *testing.T) {
	session := connect(t, WithJobDetail(&fakeService{records: sampleRecords()}))

	text, isErr := callText(t, session, "job_detail", map[string]any{"jobId": "j2"})
	require.False(t, isErr, text)
	var record domain.JobRecord
	require.NoError(t, json.Unmarshal([]byte(text), &record))
	assert.Equal(t, "UX Researcher", record.Title)

	_, isErr = callText(t, session, "job_detail", map[string]any{"jobId": "missing"})
	assert.True(t, isErr)
}

func TestListCompaniesTool(t *testing.T) {
	session := connect(t, WithListCompanies(&fakeService{records: sampleRecords()}))

	text, isErr := callText(t, session, "list_companies", map[string]any{})
	require.False(t, isErr, text)

	var out struct {
		Data           []domain.Company `json:"data"`
		TotalCompanies int              `json:"totalCompanies"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	assert.Equal(t, 1, out.TotalCompanies)
	assert.Equal(t, 2, out.Data[0].JobCount)
}

func TestSheetsExportTool(t *testing.T) {
	sheets := &fakeSheets{}
	session := connect(t, WithSheetsExport(&fakeService{records: sampleRecords()}, sheets))

	text, isErr := callText(t, session, "sheets_export", map[string]any{
		"spreadsheetId": "sheet-1",
		"clearTab":      true,
		"search":        map[string]any{"freeText": "all"},
	})
	require.False(t, isErr, text)

	var res SheetsExportResult
	require.NoError(t, json.Unmarshal([]byte(text), &res))
	assert.Equal(t, "Jobs", res.Tab)
	assert.Equal(t, 2, res.WrittenRows)

	assert.Equal(t, []string{"Jobs"}, sheets.cleared)
	require.Len(t, sheets.appended, 3)
	assert.Equal(t, sheetHeader, sheets.appended[0])
	assert.Equal(t, []any{
		"Go Engineer",
		"Acme",
		"Berlin, DE",
		"FULLTIME",
		"50000-70000 EUR/year",
		"https://acme.example/apply",
		"1970-01-01T00:00:00Z",
	}, sheets.appended[1])
	assert.Equal(t, "Remote", sheets.appended[2][2])
}

func TestSheetsExportTool_RequiresSpreadsheet(t *testing.T) {
	sheets := &fakeSheets{}
	session := connect(t, WithSheetsExport(&fakeService{records: sampleRecords()}, sheets))

	_, isErr := callText(t, session, "sheets_export", map[string]any{
		"spreadsheetId": " ",
		"search":        map[string]any{},
	})
	assert.True(t, isErr)
	assert.Empty(t, sheets.appended)
}

func TestWithSheetsExport_NilClient(t *testing.T) {
	assert.Nil(t, WithSheetsExport(&fakeService{}, nil))
}
