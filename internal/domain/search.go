package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// SortOrder selects how filtered records are ordered
type SortOrder string

const (
	SortRelevance  SortOrder = "relevance"
	SortNewest     SortOrder = "newest"
	SortOldest     SortOrder = "oldest"
	SortSalaryAsc  SortOrder = "salary-asc"
	SortSalaryDesc SortOrder = "salary-desc"
)

// ParseSortOrder maps user input to a SortOrder; empty means relevance
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortRelevance:
		return SortRelevance, nil
	case SortNewest:
		return SortNewest, nil
	case SortOldest:
		return SortOldest, nil
	case SortSalaryAsc:
		return SortSalaryAsc, nil
	case SortSalaryDesc:
		return SortSalaryDesc, nil
	default:
		return "", fmt.Errorf("unknown sort order %q", s)
	}
}

// SearchSource selects the candidate pool the filter engine runs over
type SearchSource string

const (
	SourceProvider SearchSource = "provider"
	SourceCorpus   SearchSource = "corpus"
)

// ParseSearchSource maps user input to a SearchSource; empty means provider
func ParseSearchSource(s string) (SearchSource, error) {
	switch SearchSource(strings.ToLower(strings.TrimSpace(s))) {
	case "", SourceProvider:
		return SourceProvider, nil
	case SourceCorpus:
		return SourceCorpus, nil
	default:
		return "", fmt.Errorf("unknown search source %q", s)
	}
}

const (
	DefaultCountry   = "us"
	DefaultPageSize  = 10
	defaultPage      = 1
	defaultPageCount = 1
)

// matchAllTerms are free-text values that mean "no text filter"
var matchAllTerms = map[string]struct{}{
	"all": {},
	"*":   {},
}

// IsMatchAll reports whether text is the "match everything" sentinel
func IsMatchAll(text string) bool {
	_, ok := matchAllTerms[strings.ToLower(strings.TrimSpace(text))]
	return ok
}

// SearchCriteria is the caller-supplied search request. It is never persisted.
type SearchCriteria struct {
	FreeText         string       `json:"freeText"`
	Location         string       `json:"location"`
	Country          string       `json:"country"`
	EmploymentTypes  []string     `json:"employmentTypes,omitempty"`
	Category         string       `json:"category,omitempty"`
	JobLevelKeywords []string     `json:"jobLevelKeywords,omitempty"`
	SalaryMin        *float64     `json:"salaryMin,omitempty"`
	SalaryMax        *float64     `json:"salaryMax,omitempty"`
	Page             int          `json:"page"`
	PageSize         int          `json:"pageSize"`
	PageCount        int          `json:"pageCount"`
	SortOrder        SortOrder    `json:"sortOrder"`
	Source           SearchSource `json:"source"`
}

// Normalize trims text fields and fills defaults. pageSize is used when the
// criteria carry none.
func (c SearchCriteria) Normalize(pageSize int) SearchCriteria {
	c.FreeText = strings.TrimSpace(c.FreeText)
	c.Location = strings.TrimSpace(c.Location)
	c.Category = strings.TrimSpace(c.Category)
	c.Country = strings.ToLower(strings.TrimSpace(c.Country))
	if c.Country == "" {
		c.Country = DefaultCountry
	}
	if c.Page < 1 {
		c.Page = defaultPage
	}
	if c.PageCount < 1 {
		c.PageCount = defaultPageCount
	}
	if c.PageSize < 1 {
		c.PageSize = pageSize
	}
	if c.PageSize < 1 {
		c.PageSize = DefaultPageSize
	}
	if c.SortOrder == "" {
		c.SortOrder = SortRelevance
	}
	if c.Source == "" {
		c.Source = SourceProvider
	}
	c.EmploymentTypes = compact(c.EmploymentTypes)
	c.JobLevelKeywords = compact(c.JobLevelKeywords)
	return c
}

// HasTextFilter reports whether the free-text stage is active
func (c SearchCriteria) HasTextFilter() bool {
	return c.FreeText != "" && !IsMatchAll(c.FreeText)
}

// IsSpecific reports whether the request is a specific search rather than
// "browse all"; only specific searches are paginated.
func (c SearchCriteria) IsSpecific() bool {
	return c.HasTextFilter() || c.Location != ""
}

func compact(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ProviderPayload is one response from the external search provider
type ProviderPayload struct {
	Status     string         `json:"status"`
	RequestID  string         `json:"request_id"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Data       []JobRecord    `json:"data"`
}

// CachedSearchResult memoizes a provider payload under a deterministic key
type CachedSearchResult struct {
	CacheKey  string          `json:"cacheKey"`
	Payload   json.RawMessage `json:"payload"`
	FetchedAt time.Time       `json:"fetchedAt"`
	Query     string          `json:"query"`
	Location  string          `json:"location"`
	Page      int             `json:"page"`
	PageCount int             `json:"pageCount"`
	Country   string          `json:"country"`
}

// SearchResponse is what callers of the search operation receive
type SearchResponse struct {
	Status       string         `json:"status"`
	RequestID    string         `json:"requestId"`
	Parameters   SearchCriteria `json:"parameters"`
	Data         []JobRecord    `json:"data"`
	TotalResults int            `json:"totalResults"`
}
