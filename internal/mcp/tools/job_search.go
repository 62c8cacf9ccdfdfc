package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/talentry/internal/domain"
	"github.com/honeycarbs/talentry/internal/domain/job"
)

// JobSearchParams defines the arguments for the job_search tool
type JobSearchParams struct {
	FreeText         string   `json:"freeText,omitempty" jsonschema:"Text matched against title, employer and description; all or * matches everything"`
	Location         string   `json:"location,omitempty" jsonschema:"Country text or Remote"`
	Country          string   `json:"country,omitempty" jsonschema:"Two letter country code passed to the provider, default us"`
	EmploymentTypes  []string `json:"employmentTypes,omitempty" jsonschema:"Allowed employment types e.g. FULLTIME, CONTRACT"`
	Category         string   `json:"category,omitempty" jsonschema:"Exact category name"`
	JobLevelKeywords []string `json:"jobLevelKeywords,omitempty" jsonschema:"Keywords searched in qualifications and responsibilities"`
	SalaryMin        *float64 `json:"salaryMin,omitempty" jsonschema:"Minimum acceptable lower salary bound"`
	SalaryMax        *float64 `json:"salaryMax,omitempty" jsonschema:"Maximum acceptable upper salary bound"`
	Page             int      `json:"page,omitempty" jsonschema:"Page number starting at 1"`
	PageCount        int      `json:"pageCount,omitempty" jsonschema:"Number of pages to return"`
	PageSize         int      `json:"pageSize,omitempty" jsonschema:"Rows per page"`
	SortOrder        string   `json:"sortOrder,omitempty" jsonschema:"relevance, newest, oldest, salary-asc or salary-desc"`
	Source           string   `json:"source,omitempty" jsonschema:"provider (live search, default) or corpus (stored jobs)"`
}

// Criteria converts tool arguments to SearchCriteria
func (p JobSearchParams) Criteria() (domain.SearchCriteria, error) {
	order, err := domain.ParseSortOrder(p.SortOrder)
	if err != nil {
		return domain.SearchCriteria{}, err
	}
	source, err := domain.ParseSearchSource(p.Source)
	if err != nil {
		return domain.SearchCriteria{}, err
	}

	return domain.SearchCriteria{
		FreeText:         p.FreeText,
		Location:         p.Location,
		Country:          p.Country,
		EmploymentTypes:  p.EmploymentTypes,
		Category:         p.Category,
		JobLevelKeywords: p.JobLevelKeywords,
		SalaryMin:        p.SalaryMin,
		SalaryMax:        p.SalaryMax,
		Page:             p.Page,
		PageCount:        p.PageCount,
		PageSize:         p.PageSize,
		SortOrder:        order,
		Source:           source,
	}, nil
}

// WithJobSearch registers the job_search tool
func WithJobSearch(svc job.Service) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "job_search",
			Description: "Search job postings through the cached provider or the stored corpus, then filter, sort and page them",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params JobSearchParams) (*sdkmcp.CallToolResult, any, error) {
			criteria, err := params.Criteria()
			if err != nil {
				return nil, nil, err
			}

			resp, err := svc.Search(ctx, criteria)
			if err != nil {
				reg.logger.Warn("job_search failed", "error", err)
				return nil, nil, fmt.Errorf("job_search: %w", err)
			}

			res, err := jsonResult(resp)
			return res, nil, err
		})
	}
}
