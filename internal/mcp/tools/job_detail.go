package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/talentry/internal/domain/job"
)

// JobDetailParams defines the arguments for the job_detail tool
type JobDetailParams struct {
	JobID string `json:"jobId" jsonschema:"Identifier of a stored job"`
}

// WithJobDetail registers the job_detail tool
func WithJobDetail(svc job.Service) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "job_detail",
			Description: "Load one stored job posting by id",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params JobDetailParams) (*sdkmcp.CallToolResult, any, error) {
			record, err := svc.GetJob(ctx, params.JobID)
			if err != nil {
				return nil, nil, fmt.Errorf("job_detail: %w", err)
			}
			res, err := jsonResult(record)
			return res, nil, err
		})
	}
}
