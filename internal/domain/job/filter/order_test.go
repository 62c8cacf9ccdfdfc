package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/honeycarbs/talentry/internal/domain"
)

func TestSort_ScenarioB(t *testing.T) {
	records := []domain.JobRecord{
		{ID: "a", PostedAt: ptr(int64(100))},
		{ID: "b", PostedAt: ptr(int64(300))},
		{ID: "c", PostedAt: ptr(int64(200))},
	}

	got := Sort(records, domain.SortNewest)
	assert.Equal(t, []string{"b", "c", "a"}, ids(got))
	assert.Equal(t, []string{"a", "b", "c"}, ids(records))

	got = Sort(records, domain.SortOldest)
	assert.Equal(t, []string{"a", "c", "b"}, ids(got))
}

func TestSort_MissingValuesCountAsZero(t *testing.T) {
	records := []domain.JobRecord{
		{ID: "none"},
		{ID: "low", SalaryMin: ptr(10.0)},
		{ID: "neg", SalaryMin: ptr(-5.0)},
	}

	assert.Equal(t, []string{"neg", "none", "low"}, ids(Sort(records, domain.SortSalaryAsc)))
	assert.Equal(t, []string{"low", "none", "neg"}, ids(Sort(records, domain.SortSalaryDesc)))
}

func TestSort_Stable(t *testing.T) {
	records := []domain.JobRecord{
		{ID: "first", PostedAt: ptr(int64(5))},
		{ID: "x", PostedAt: ptr(int64(9))},
		{ID: "second", PostedAt: ptr(int64(5))},
		{ID: "third"},
		{ID: "third-b", PostedAt: ptr(int64(0))},
	}

	assert.Equal(t, []string{"x", "first", "second", "third", "third-b"}, ids(Sort(records, domain.SortNewest)))
	assert.Equal(t, []string{"third", "third-b", "first", "second", "x"}, ids(Sort(records, domain.SortOldest)))
}

func TestSort_RelevanceKeepsOrder(t *testing.T) {
	records := sampleRecords()
	assert.Equal(t, ids(records), ids(Sort(records, domain.SortRelevance)))
}

func TestPaginate(t *testing.T) {
	records := make([]domain.JobRecord, 7)
	for i := range records {
		records[i].ID = string(rune('a' + i))
	}

	tests := []struct {
		name                      string
		page, pageSize, pageCount int
		want                      []string
	}{
		{"first page", 1, 3, 1, []string{"a", "b", "c"}},
		{"second page", 2, 3, 1, []string{"d", "e", "f"}},
		{"two pages", 1, 3, 2, []string{"a", "b", "c", "d", "e", "f"}},
		{"clamped tail", 3, 3, 1, []string{"g"}},
		{"past end", 4, 3, 1, []string{}},
		{"zero values default", 0, 0, 0, []string{"a"}},
		{"huge page", math.MaxInt, 3, 1, []string{}},
		{"huge page count", 1, 3, math.MaxInt, []string{"a", "b", "c", "d", "e", "f", "g"}},
		{"huge page count from middle", 2, 3, math.MaxInt, []string{"d", "e", "f", "g"}},
		{"huge page size", 1, math.MaxInt, 2, []string{"a", "b", "c", "d", "e", "f", "g"}},
		{"huge page size second page", 2, math.MaxInt, 1, []string{}},
		{"all huge", math.MaxInt, math.MaxInt, math.MaxInt, []string{}},
		{"exact fit", 1, 7, 1, []string{"a", "b", "c", "d", "e", "f", "g"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Paginate(records, tt.page, tt.pageSize, tt.pageCount)))
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	assert.Equal(t, []domain.JobRecord{}, Paginate(nil, math.MaxInt, math.MaxInt, math.MaxInt))
}
