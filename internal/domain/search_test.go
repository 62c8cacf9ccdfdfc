package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCriteria_NormalizeDefaults(t *testing.T) {
	c := SearchCriteria{FreeText: "  engineer ", Country: " US "}.Normalize(0)

	assert.Equal(t, "engineer", c.FreeText)
	assert.Equal(t, "us", c.Country)
	assert.Equal(t, 1, c.Page)
	assert.Equal(t, 1, c.PageCount)
	assert.Equal(t, DefaultPageSize, c.PageSize)
	assert.Equal(t, SortRelevance, c.SortOrder)
	assert.Equal(t, SourceProvider, c.Source)
}

func TestSearchCriteria_NormalizeKeepsExplicitValues(t *testing.T) {
	c := SearchCriteria{Page: 3, PageCount: 2, PageSize: 25, Country: "de"}.Normalize(10)

	assert.Equal(t, 3, c.Page)
	assert.Equal(t, 2, c.PageCount)
	assert.Equal(t, 25, c.PageSize)
	assert.Equal(t, "de", c.Country)
}

func TestSearchCriteria_NormalizeDropsBlankListEntries(t *testing.T) {
	c := SearchCriteria{
		EmploymentTypes:  []string{" ", "CONTRACT", ""},
		JobLevelKeywords: []string{"", "  "},
	}.Normalize(10)

	assert.Equal(t, []string{"CONTRACT"}, c.EmploymentTypes)
	assert.Nil(t, c.JobLevelKeywords)
}

func TestSearchCriteria_IsSpecific(t *testing.T) {
	tests := []struct {
		name     string
		criteria SearchCriteria
		want     bool
	}{
		{"empty", SearchCriteria{}, false},
		{"match all sentinel", SearchCriteria{FreeText: "all"}, false},
		{"match all star", SearchCriteria{FreeText: "*"}, false},
		{"free text", SearchCriteria{FreeText: "engineer"}, true},
		{"location only", SearchCriteria{Location: "Berlin"}, true},
		{"sentinel with location", SearchCriteria{FreeText: "ALL", Location: "Remote"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.criteria.IsSpecific())
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	got, err := ParseSortOrder("")
	require.NoError(t, err)
	assert.Equal(t, SortRelevance, got)

	got, err = ParseSortOrder("Salary-Desc")
	require.NoError(t, err)
	assert.Equal(t, SortSalaryDesc, got)

	_, err = ParseSortOrder("random")
	assert.Error(t, err)
}

func TestParseSearchSource(t *testing.T) {
	got, err := ParseSearchSource("corpus")
	require.NoError(t, err)
	assert.Equal(t, SourceCorpus, got)

	_, err = ParseSearchSource("elsewhere")
	assert.Error(t, err)
}
