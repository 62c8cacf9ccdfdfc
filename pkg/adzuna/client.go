package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL  = "https://api.adzuna.com"
	defaultCountry  = "us"
	defaultPageSize = 10
)

// NewClient instantiates an Adzuna API client
func NewClient(cfg Config) (*Client, error) {
	if cfg.AppID == "" || cfg.AppKey == "" {
		return nil, fmt.Errorf("adzuna: app_id and app_key are required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &Client{
		appID:      cfg.AppID,
		appKey:     cfg.AppKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		pageSize:   pageSize,
	}, nil
}

// SearchJobs fetches one result page for query
func (c *Client) SearchJobs(ctx context.Context, query string, params SearchParams) (SearchResult, error) {
	if c == nil {
		return SearchResult{}, fmt.Errorf("adzuna: client is nil")
	}

	u, err := c.buildSearchURL(query, params)
	if err != nil {
		return SearchResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return SearchResult{}, fmt.Errorf("adzuna: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return SearchResult{}, fmt.Errorf("adzuna: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return SearchResult{}, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var payload jobSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return SearchResult{}, fmt.Errorf("adzuna: decode response: %w", err)
	}

	jobs := make([]Job, 0, len(payload.Results))
	for _, posting := range payload.Results {
		jobs = append(jobs, mapPosting(posting))
	}

	return SearchResult{Count: payload.Count, Jobs: jobs}, nil
}

func (c *Client) buildSearchURL(query string, params SearchParams) (string, error) {
	if query == "" {
		return "", fmt.Errorf("adzuna: query is required")
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("adzuna: parse base url: %w", err)
	}

	country := strings.ToLower(params.Country)
	if country == "" {
		country = defaultCountry
	}
	page := params.Page
	if page < 1 {
		page = 1
	}

	u.Path = path.Join(u.Path, "v1", "api", "jobs", country, "search", strconv.Itoa(page))

	values := url.Values{}
	values.Set("app_id", c.appID)
	values.Set("app_key", c.appKey)
	values.Set("what", query)
	values.Set("results_per_page", strconv.Itoa(c.pageSize))
	values.Set("content-type", "application/json")

	if params.Where != "" {
		values.Set("where", params.Where)
	}

	u.RawQuery = values.Encode()
	return u.String(), nil
}

func mapPosting(posting jobPosting) Job {
	job := Job{
		ID:           posting.ID,
		Title:        posting.Title,
		CompanyName:  posting.Company.DisplayName,
		Location:     posting.Location.DisplayName,
		URL:          posting.RedirectURL,
		Description:  posting.Description,
		Category:     posting.Category.Label,
		ContractTime: posting.ContractTime,
		ContractType: posting.ContractType,
		SalaryMin:    posting.SalaryMin,
		SalaryMax:    posting.SalaryMax,
	}

	// area runs from country down to city
	area := posting.Location.Area
	if len(area) > 0 {
		job.Country = area[0]
	}
	if len(area) > 1 {
		job.Region = area[1]
	}
	if len(area) > 2 {
		job.City = area[len(area)-1]
	}

	if posting.Created != "" {
		if ts, err := time.Parse(time.RFC3339, posting.Created); err == nil {
			job.PostedAt = ts
		}
	}

	if strings.Contains(strings.ToLower(posting.Title+" "+posting.Location.DisplayName), "remote") {
		job.Remote = true
	}

	return job
}
