package adzuna

import (
	"fmt"
	"net/http"
	"time"
)

// Config defines Adzuna API client settings
type Config struct {
	AppID      string
	AppKey     string
	BaseURL    string
	HTTPClient *http.Client
	PageSize   int
}

// Client queries Adzuna job search API
type Client struct {
	appID      string
	appKey     string
	baseURL    string
	httpClient *http.Client
	pageSize   int
}

// SearchParams describe one page of a job search
type SearchParams struct {
	Page    int
	Country string
	Where   string
}

// APIError is returned when Adzuna answers with a non-success status
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("adzuna: API error (%d): %s", e.StatusCode, e.Body)
}

type jobSearchResponse struct {
	Count   int          `json:"count"`
	Results []jobPosting `json:"results"`
}

type jobPosting struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Company      companySummary  `json:"company"`
	Location     locationSummary `json:"location"`
	Description  string          `json:"description"`
	Created      string          `json:"created"`
	RedirectURL  string          `json:"redirect_url"`
	ContractTime string          `json:"contract_time"`
	ContractType string          `json:"contract_type"`
	Category     struct {
		Label string `json:"label"`
	} `json:"category"`
	SalaryMin *float64 `json:"salary_min"`
	SalaryMax *float64 `json:"salary_max"`
}

type companySummary struct {
	DisplayName string `json:"display_name"`
}

type locationSummary struct {
	DisplayName string   `json:"display_name"`
	Area        []string `json:"area"`
}

// Job represents a normalized Adzuna job posting.
type Job struct {
	ID           string
	Title        string
	CompanyName  string
	Location     string
	Country      string
	Region       string
	City         string
	URL          string
	Description  string
	Category     string
	ContractTime string
	ContractType string
	Remote       bool
	PostedAt     time.Time
	SalaryMin    *float64
	SalaryMax    *float64
}

// SearchResult is one page of Adzuna results
type SearchResult struct {
	Count int
	Jobs  []Job
}
