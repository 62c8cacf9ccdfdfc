package jsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	defaultHost = "jsearch.p.rapidapi.com"
)

// NewClient instantiates a JSearch API client
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("jsearch: api key is required")
	}

	host := cfg.Host
	if host == "" {
		host = defaultHost
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://" + host
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		apiKey:     cfg.APIKey,
		host:       host,
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// Search runs a /search request for the composed query
func (c *Client) Search(ctx context.Context, query string, params SearchParams) (SearchResponse, error) {
	if c == nil {
		return SearchResponse{}, fmt.Errorf("jsearch: client is nil")
	}
	if query == "" {
		return SearchResponse{}, fmt.Errorf("jsearch: query is required")
	}

	values := url.Values{}
	values.Set("query", query)
	values.Set("page", strconv.Itoa(max(params.Page, 1)))
	values.Set("num_pages", strconv.Itoa(max(params.NumPages, 1)))
	if params.Country != "" {
		values.Set("country", params.Country)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+values.Encode(), nil)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("jsearch: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("jsearch: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return SearchResponse{}, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var payload SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return SearchResponse{}, fmt.Errorf("jsearch: decode response: %w", err)
	}

	return payload, nil
}
