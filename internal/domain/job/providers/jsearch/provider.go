package jsearch

import (
	"context"
	"errors"
	"fmt"

	"github.com/honeycarbs/talentry/internal/domain"
	jobdomain "github.com/honeycarbs/talentry/internal/domain/job"
	"github.com/honeycarbs/talentry/internal/errs"
	"github.com/honeycarbs/talentry/pkg/jsearch"
)

// searchClient describes the subset of the JSearch client used by the provider.
type searchClient interface {
	Search(ctx context.Context, query string, params jsearch.SearchParams) (jsearch.SearchResponse, error)
}

// Provider implements job.Provider using the JSearch API
type Provider struct {
	client searchClient
}

var _ jobdomain.Provider = (*Provider)(nil)

// NewProvider builds a JSearch provider
func NewProvider(client searchClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("jsearch provider: client is required")
	}
	return &Provider{client: client}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return "jsearch"
}

// Search runs one JSearch request covering pageCount pages
func (p *Provider) Search(ctx context.Context, query string, page, pageCount int, country string) (domain.ProviderPayload, error) {
	resp, err := p.client.Search(ctx, query, jsearch.SearchParams{
		Page:     page,
		NumPages: pageCount,
		Country:  country,
	})
	if err != nil {
		var apiErr *jsearch.APIError
		if errors.As(err, &apiErr) {
			return domain.ProviderPayload{}, errs.ProviderFetch(p.Name(), apiErr.StatusCode, err)
		}
		return domain.ProviderPayload{}, errs.ProviderFetch(p.Name(), 0, err)
	}

	records := make([]domain.JobRecord, 0, len(resp.Data))
	for _, j := range resp.Data {
		records = append(records, mapJob(j))
	}

	return domain.ProviderPayload{
		Status:     resp.Status,
		RequestID:  resp.RequestID,
		Parameters: resp.Parameters,
		Data:       records,
	}, nil
}

func mapJob(j jsearch.Job) domain.JobRecord {
	r := domain.JobRecord{
		ID:              j.ID,
		Title:           j.Title,
		EmployerName:    j.EmployerName,
		EmployerLogoURL: j.EmployerLogo,
		City:            j.City,
		Region:          j.State,
		Country:         j.Country,
		IsRemote:        j.IsRemote,
		EmploymentType:  j.EmploymentType,
		Description:     j.Description,
		RequiredSkills:  j.RequiredSkills,
		SalaryMin:       j.MinSalary,
		SalaryMax:       j.MaxSalary,
		SalaryCurrency:  j.SalaryCurrency,
		SalaryPeriod:    j.SalaryPeriod,
		PostedAt:        j.PostedAtTimestamp,
		ApplyLink:       j.ApplyLink,
	}
	if len(j.OccupationalCategories) > 0 {
		category := j.OccupationalCategories[0]
		r.Category = &category
	}
	if j.Highlights != nil {
		r.Highlights = &domain.Highlights{
			Qualifications:   j.Highlights.Qualifications,
			Responsibilities: j.Highlights.Responsibilities,
			Benefits:         j.Highlights.Benefits,
		}
	}
	return r
}
