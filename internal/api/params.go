package api

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/honeycarbs/talentry/internal/domain"
	"github.com/honeycarbs/talentry/internal/errs"
)

// queryParam lists accepted names for one criteria field, preferred first
type queryParam []string

var (
	paramFreeText   = queryParam{"freeText", "query"}
	paramLocation   = queryParam{"location"}
	paramCountry    = queryParam{"country"}
	paramPage       = queryParam{"page"}
	paramPageCount  = queryParam{"pageCount", "num_pages"}
	paramPageSize   = queryParam{"pageSize"}
	paramEmployment = queryParam{"employmentTypes"}
	paramCategory   = queryParam{"category"}
	paramLevels     = queryParam{"jobLevelKeywords"}
	paramSalaryMin  = queryParam{"salaryMin"}
	paramSalaryMax  = queryParam{"salaryMax"}
	paramSortOrder  = queryParam{"sortOrder"}
	paramSource     = queryParam{"source"}
)

func (p queryParam) get(q url.Values) (string, string) {
	for _, name := range p {
		if v := strings.TrimSpace(q.Get(name)); v != "" {
			return name, v
		}
	}
	return p[0], ""
}

// ParseCriteria builds SearchCriteria from query string values. List fields
// are comma separated. Every malformed value is reported in the error details.
func ParseCriteria(q url.Values) (domain.SearchCriteria, error) {
	var (
		c       domain.SearchCriteria
		details []string
	)

	_, c.FreeText = paramFreeText.get(q)
	_, c.Location = paramLocation.get(q)
	_, c.Country = paramCountry.get(q)
	_, c.Category = paramCategory.get(q)
	c.EmploymentTypes = splitList(q, paramEmployment)
	c.JobLevelKeywords = splitList(q, paramLevels)

	positive := func(p queryParam) int {
		name, raw := p.get(q)
		if raw == "" {
			return 0
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			details = append(details, name+" must be a positive integer")
			return 0
		}
		return n
	}
	c.Page = positive(paramPage)
	c.PageCount = positive(paramPageCount)
	c.PageSize = positive(paramPageSize)

	number := func(p queryParam) *float64 {
		name, raw := p.get(q)
		if raw == "" {
			return nil
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			details = append(details, name+" must be a number")
			return nil
		}
		return &f
	}
	c.SalaryMin = number(paramSalaryMin)
	c.SalaryMax = number(paramSalaryMax)

	var err error
	if _, raw := paramSortOrder.get(q); raw != "" {
		if c.SortOrder, err = domain.ParseSortOrder(raw); err != nil {
			details = append(details, err.Error())
		}
	}
	if _, raw := paramSource.get(q); raw != "" {
		if c.Source, err = domain.ParseSearchSource(raw); err != nil {
			details = append(details, err.Error())
		}
	}

	if len(details) > 0 {
		return domain.SearchCriteria{}, errs.Validation("invalid search parameters", details...)
	}
	return c, nil
}

func splitList(q url.Values, p queryParam) []string {
	_, raw := p.get(q)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
