package jsearch

import (
	"fmt"
	"net/http"
)

// Config defines JSearch (RapidAPI) client settings
type Config struct {
	APIKey     string
	Host       string
	BaseURL    string
	HTTPClient *http.Client
}

// Client queries the JSearch job search API
type Client struct {
	apiKey     string
	host       string
	baseURL    string
	httpClient *http.Client
}

// SearchParams describe the paging window of a search
type SearchParams struct {
	Page     int
	NumPages int
	Country  string
}

// APIError is returned when JSearch answers with a non-success status
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("jsearch: API error (%d): %s", e.StatusCode, e.Body)
}

// SearchResponse is the /search envelope
type SearchResponse struct {
	Status     string         `json:"status"`
	RequestID  string         `json:"request_id"`
	Parameters map[string]any `json:"parameters"`
	Data       []Job          `json:"data"`
}

// Job is a posting as JSearch returns it
type Job struct {
	ID                     string      `json:"job_id"`
	Title                  string      `json:"job_title"`
	EmployerName           string      `json:"employer_name"`
	EmployerLogo           *string     `json:"employer_logo"`
	City                   *string     `json:"job_city"`
	State                  *string     `json:"job_state"`
	Country                *string     `json:"job_country"`
	IsRemote               bool        `json:"job_is_remote"`
	EmploymentType         string      `json:"job_employment_type"`
	Description            string      `json:"job_description"`
	RequiredSkills         []string    `json:"job_required_skills"`
	MinSalary              *float64    `json:"job_min_salary"`
	MaxSalary              *float64    `json:"job_max_salary"`
	SalaryCurrency         *string     `json:"job_salary_currency"`
	SalaryPeriod           *string     `json:"job_salary_period"`
	PostedAtTimestamp      *int64      `json:"job_posted_at_timestamp"`
	ApplyLink              *string     `json:"job_apply_link"`
	Highlights             *Highlights `json:"job_highlights"`
	OccupationalCategories []string    `json:"job_occupational_categories"`
}

// Highlights groups the bullet lists attached to a posting
type Highlights struct {
	Qualifications   []string `json:"Qualifications"`
	Responsibilities []string `json:"Responsibilities"`
	Benefits         []string `json:"Benefits"`
}
