// Package mcp exposes the job operations as an MCP server over streamable HTTP.
package mcp

import (
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/talentry/internal/domain/job"
	"github.com/honeycarbs/talentry/internal/mcp/tools"
	"github.com/honeycarbs/talentry/pkg/logging"
)

const (
	// StreamPath is where the streamable HTTP handler is mounted
	StreamPath = "/mcp/stream"

	implName    = "talentry"
	implVersion = "0.1.0"
)

// NewServer builds an MCP server with the job tools registered. A nil sheets
// client leaves sheets_export out.
func NewServer(logger *logging.Logger, svc job.Service, sheets tools.SheetsClient) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    implName,
		Version: implVersion,
	}, nil)

	opts := []tools.Option{
		tools.WithJobSearch(svc),
		tools.WithJobDetail(svc),
		tools.WithListCompanies(svc),
	}
	if sheets != nil {
		opts = append(opts, tools.WithSheetsExport(svc, sheets))
	}
	tools.Register(server, logger, opts...)

	return server
}

// NewHandler wraps server in a streamable HTTP handler
func NewHandler(server *sdkmcp.Server) http.Handler {
	return sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return server
	}, nil)
}
