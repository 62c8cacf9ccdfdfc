package api

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/talentry/internal/domain"
	"github.com/honeycarbs/talentry/internal/errs"
)

func TestParseCriteria(t *testing.T) {
	q := url.Values{}
	q.Set("freeText", "engineer")
	q.Set("location", "Remote")
	q.Set("page", "2")
	q.Set("pageCount", "3")
	q.Set("employmentTypes", "FULLTIME, CONTRACT,,")
	q.Set("jobLevelKeywords", "senior")
	q.Set("salaryMin", "2000")
	q.Set("salaryMax", "9000.5")
	q.Set("sortOrder", "salary-desc")
	q.Set("source", "corpus")

	c, err := ParseCriteria(q)
	require.NoError(t, err)

	assert.Equal(t, "engineer", c.FreeText)
	assert.Equal(t, "Remote", c.Location)
	assert.Equal(t, 2, c.Page)
	assert.Equal(t, 3, c.PageCount)
	assert.Equal(t, []string{"FULLTIME", "CONTRACT"}, c.EmploymentTypes)
	assert.Equal(t, []string{"senior"}, c.JobLevelKeywords)
	require.NotNil(t, c.SalaryMin)
	require.NotNil(t, c.SalaryMax)
	assert.Equal(t, 2000.0, *c.SalaryMin)
	assert.Equal(t, 9000.5, *c.SalaryMax)
	assert.Equal(t, domain.SortSalaryDesc, c.SortOrder)
	assert.Equal(t, domain.SourceCorpus, c.Source)
}

func TestParseCriteria_Aliases(t *testing.T) {
	c, err := ParseCriteria(url.Values{
		"query":     {"designer"},
		"num_pages": {"2"},
	})
	require.NoError(t, err)
	assert.Equal(t, "designer", c.FreeText)
	assert.Equal(t, 2, c.PageCount)
}

func TestParseCriteria_Empty(t *testing.T) {
	c, err := ParseCriteria(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, domain.SearchCriteria{}, c)
}

func TestParseCriteria_Invalid(t *testing.T) {
	_, err := ParseCriteria(url.Values{
		"page":      {"0"},
		"salaryMin": {"lots"},
		"sortOrder": {"random"},
	})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.CodeValidation))

	var coded *errs.Error
	require.ErrorAs(t, err, &coded)
	assert.Len(t, coded.Details, 3)
}

func TestParseCriteria_NonFiniteSalary(t *testing.T) {
	for _, raw := range []string{"NaN", "Inf", "+Inf", "-Inf", "infinity"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseCriteria(url.Values{"salaryMin": {raw}, "salaryMax": {raw}})
			require.Error(t, err)

			var coded *errs.Error
			require.ErrorAs(t, err, &coded)
			assert.Equal(t, errs.CodeValidation, coded.Code)
			assert.Equal(t, []string{"salaryMin must be a number", "salaryMax must be a number"}, coded.Details)
		})
	}
}
