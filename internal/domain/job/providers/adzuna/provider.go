package adzuna

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/honeycarbs/talentry/internal/domain"
	jobdomain "github.com/honeycarbs/talentry/internal/domain/job"
	"github.com/honeycarbs/talentry/internal/errs"
	"github.com/honeycarbs/talentry/pkg/adzuna"
)

// searchClient describes the subset of the Adzuna client used by the provider.
type searchClient interface {
	SearchJobs(ctx context.Context, query string, params adzuna.SearchParams) (adzuna.SearchResult, error)
}

// Provider implements job.Provider using Adzuna API
type Provider struct {
	client searchClient
}

var _ jobdomain.Provider = (*Provider)(nil)

// NewProvider builds an Adzuna provider
func NewProvider(client searchClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("adzuna provider: client is required")
	}
	return &Provider{client: client}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return "adzuna"
}

// Search fetches pageCount consecutive Adzuna pages. The composed
// "<what> in <where>" query is split back into Adzuna's two parameters.
func (p *Provider) Search(ctx context.Context, query string, page, pageCount int, country string) (domain.ProviderPayload, error) {
	what, where := splitQuery(query)
	page = max(page, 1)
	pageCount = max(pageCount, 1)

	records := make([]domain.JobRecord, 0)
	for i := 0; i < pageCount; i++ {
		res, err := p.client.SearchJobs(ctx, what, adzuna.SearchParams{
			Page:    page + i,
			Country: country,
			Where:   where,
		})
		if err != nil {
			var apiErr *adzuna.APIError
			if errors.As(err, &apiErr) {
				return domain.ProviderPayload{}, errs.ProviderFetch(p.Name(), apiErr.StatusCode, err)
			}
			return domain.ProviderPayload{}, errs.ProviderFetch(p.Name(), 0, err)
		}

		for _, j := range res.Jobs {
			records = append(records, mapJob(j))
		}
		if len(res.Jobs) == 0 {
			break
		}
	}

	return domain.ProviderPayload{
		Status:    "OK",
		RequestID: uuid.NewString(),
		Parameters: map[string]any{
			"query":     query,
			"page":      page,
			"num_pages": pageCount,
			"country":   country,
		},
		Data: records,
	}, nil
}

func splitQuery(query string) (string, string) {
	i := strings.LastIndex(query, " in ")
	if i <= 0 {
		return query, ""
	}
	return query[:i], strings.TrimSpace(query[i+len(" in "):])
}

func mapJob(j adzuna.Job) domain.JobRecord {
	r := domain.JobRecord{
		ID:             j.ID,
		Title:          j.Title,
		EmployerName:   j.CompanyName,
		City:           optional(j.City),
		Region:         optional(j.Region),
		Country:        optional(j.Country),
		IsRemote:       j.Remote,
		EmploymentType: employmentType(j.ContractTime, j.ContractType),
		Category:       optional(j.Category),
		Description:    j.Description,
		SalaryMin:      j.SalaryMin,
		SalaryMax:      j.SalaryMax,
		ApplyLink:      optional(j.URL),
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if !j.PostedAt.IsZero() {
		ts := j.PostedAt.Unix()
		r.PostedAt = &ts
	}
	return r
}

// employmentType maps Adzuna contract fields onto JSearch style values
func employmentType(contractTime, contractType string) string {
	if strings.EqualFold(contractType, "contract") {
		return "CONTRACT"
	}
	switch strings.ToLower(contractTime) {
	case "full_time":
		return "FULLTIME"
	case "part_time":
		return "PARTTIME"
	}
	return strings.ToUpper(contractTime)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
