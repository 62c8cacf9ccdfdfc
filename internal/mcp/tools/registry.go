// Package tools registers the job board operations as MCP tools.
package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/talentry/pkg/logging"
)

// Option configures which tools are registered
type Option func(*registry)

type registry struct {
	server *sdkmcp.Server
	logger *logging.Logger
}

// Register applies the provided tool options
func Register(server *sdkmcp.Server, logger *logging.Logger, opts ...Option) {
	if logger == nil {
		logger = logging.NewNop()
	}
	reg := &registry{server: server, logger: logger}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(reg)
	}
}
