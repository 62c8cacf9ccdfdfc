// Package app wires configuration, storage, providers and surfaces into a
// runnable application.
package app

import (
	"github.com/honeycarbs/talentry/internal/config"
	"github.com/honeycarbs/talentry/internal/domain/job"
	"github.com/honeycarbs/talentry/internal/metrics"
	"github.com/honeycarbs/talentry/internal/repository"
	"github.com/honeycarbs/talentry/internal/server"
)

// App holds the long-lived components built at startup
type App struct {
	Config  config.Config
	Server  *server.Server
	Jobs    job.Service
	Store   repository.RecordStore
	Metrics *metrics.Collectors
}
