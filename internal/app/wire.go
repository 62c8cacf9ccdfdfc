//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/talentry/internal/api"
	"github.com/honeycarbs/talentry/internal/config"
	"github.com/honeycarbs/talentry/internal/domain/application"
	"github.com/honeycarbs/talentry/internal/domain/job"
	"github.com/honeycarbs/talentry/internal/metrics"
	"github.com/honeycarbs/talentry/internal/repository"
	"github.com/honeycarbs/talentry/internal/server"
	"github.com/honeycarbs/talentry/pkg/logging"
)

// InitializeApp creates the App with all components wired up
func InitializeApp(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, func(), error) {
	wire.Build(
		// Storage
		StoreSet,

		// Search
		provideHTTPClient,
		provideSearchProvider,
		metrics.New,
		wire.Bind(new(job.Recorder), new(*metrics.Collectors)),
		provideEngine,
		provideJobSettings,
		job.NewServiceWithDeps,

		// Applications
		provideApplicationService,
		wire.Bind(new(api.Submitter), new(*application.Service)),

		// Surfaces
		api.NewHandler,
		provideSheetsClient,
		provideMCPHandler,
		provideServerConfig,
		server.New,

		wire.Struct(new(App), "*"),
	)

	return &App{}, nil, nil
}

// InitializeStore connects only the record store
func InitializeStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (repository.RecordStore, func(), error) {
	wire.Build(provideRecordStore)

	return nil, nil, nil
}
