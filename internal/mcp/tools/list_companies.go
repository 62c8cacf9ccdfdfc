package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/talentry/internal/domain/job"
)

// ListCompaniesParams takes no arguments
type ListCompaniesParams struct{}

// WithListCompanies registers the list_companies tool
func WithListCompanies(svc job.Service) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "list_companies",
			Description: "List employers of stored jobs with their job counts",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListCompaniesParams) (*sdkmcp.CallToolResult, any, error) {
			companies, err := svc.ListCompanies(ctx)
			if err != nil {
				return nil, nil, fmt.Errorf("list_companies: %w", err)
			}
			res, err := jsonResult(map[string]any{
				"data":           companies,
				"totalCompanies": len(companies),
			})
			return res, nil, err
		})
	}
}
