package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/wire"

	"github.com/honeycarbs/talentry/internal/api"
	"github.com/honeycarbs/talentry/internal/config"
	"github.com/honeycarbs/talentry/internal/domain/application"
	"github.com/honeycarbs/talentry/internal/domain/job"
	"github.com/honeycarbs/talentry/internal/domain/job/filter"
	adzunaprovider "github.com/honeycarbs/talentry/internal/domain/job/providers/adzuna"
	jsearchprovider "github.com/honeycarbs/talentry/internal/domain/job/providers/jsearch"
	"github.com/honeycarbs/talentry/internal/errs"
	"github.com/honeycarbs/talentry/internal/mcp"
	"github.com/honeycarbs/talentry/internal/mcp/tools"
	"github.com/honeycarbs/talentry/internal/metrics"
	"github.com/honeycarbs/talentry/internal/repository"
	"github.com/honeycarbs/talentry/internal/server"
	neo4jstore "github.com/honeycarbs/talentry/internal/storage/neo4j"
	pgstore "github.com/honeycarbs/talentry/internal/storage/postgres"
	redisstore "github.com/honeycarbs/talentry/internal/storage/redis"
	"github.com/honeycarbs/talentry/pkg/adzuna"
	"github.com/honeycarbs/talentry/pkg/jsearch"
	"github.com/honeycarbs/talentry/pkg/logging"
	pkgneo4j "github.com/honeycarbs/talentry/pkg/neo4j"
	pkgpostgres "github.com/honeycarbs/talentry/pkg/postgres"
	pkgredis "github.com/honeycarbs/talentry/pkg/redis"
	"github.com/honeycarbs/talentry/pkg/sheets"
)

// StoreSet builds the configured RecordStore
var StoreSet = wire.NewSet(provideRecordStore, providePaths)

// provideRecordStore connects the configured backend. The cleanup closes
// the underlying client.
func provideRecordStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (repository.RecordStore, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendRedis:
		client, err := pkgredis.NewClient(pkgredis.Config{URL: cfg.Store.RedisURL})
		if err != nil {
			return nil, nil, errs.Configuration("connect redis", err)
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				logger.Warn("closing redis client", "err", err)
			}
		}
		return redisstore.NewStore(client), cleanup, nil

	case config.BackendNeo4j:
		client, err := pkgneo4j.NewClient(pkgneo4j.Config{
			URI:      cfg.Store.Neo4j.URI,
			Username: cfg.Store.Neo4j.Username,
			Password: cfg.Store.Neo4j.Password,
			Database: cfg.Store.Neo4j.Database,
		})
		if err != nil {
			return nil, nil, errs.Configuration("connect neo4j", err)
		}
		cleanup := func() {
			if err := client.Close(context.Background()); err != nil {
				logger.Warn("closing neo4j client", "err", err)
			}
		}
		store := neo4jstore.NewStore(client)
		if err := store.EnsureConstraints(ctx); err != nil {
			cleanup()
			return nil, nil, errs.RecordStore("create neo4j constraints", err)
		}
		return store, cleanup, nil

	case config.BackendPostgres:
		pool, err := pkgpostgres.NewPool(pkgpostgres.Config{DatabaseURL: cfg.Store.DatabaseURL})
		if err != nil {
			return nil, nil, errs.Configuration("connect postgres", err)
		}
		store := pgstore.NewStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, errs.RecordStore("create postgres schema", err)
		}
		return store, pool.Close, nil

	default:
		return nil, nil, errs.Configuration(fmt.Sprintf("unknown store backend %q", cfg.Store.Backend), nil)
	}
}

func providePaths(cfg config.Config) repository.Paths {
	return repository.NewPaths(cfg.AppID)
}

func provideHTTPClient(cfg config.Config) *http.Client {
	return &http.Client{Timeout: cfg.Provider.Timeout}
}

// provideSearchProvider builds the configured external search provider
func provideSearchProvider(cfg config.Config, httpClient *http.Client) (job.Provider, error) {
	switch cfg.Provider.Name {
	case config.ProviderJSearch:
		client, err := jsearch.NewClient(jsearch.Config{
			APIKey:     cfg.Provider.RapidAPIKey,
			Host:       cfg.Provider.RapidAPIHost,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, errs.Configuration("jsearch client", err)
		}
		return jsearchprovider.NewProvider(client)

	case config.ProviderAdzuna:
		client, err := adzuna.NewClient(adzuna.Config{
			AppID:      cfg.Provider.AdzunaAppID,
			AppKey:     cfg.Provider.AdzunaAppKey,
			HTTPClient: httpClient,
			PageSize:   cfg.Search.PageSize,
		})
		if err != nil {
			return nil, errs.Configuration("adzuna client", err)
		}
		return adzunaprovider.NewProvider(client)

	default:
		return nil, errs.Configuration(fmt.Sprintf("unknown search provider %q", cfg.Provider.Name), nil)
	}
}

func provideEngine(cfg config.Config, logger *logging.Logger, collectors *metrics.Collectors) *filter.Engine {
	return filter.NewEngine(
		filter.WithMatchMode(cfg.Search.MatchMode),
		filter.WithLogger(logger),
		filter.WithPatternErrorHook(collectors.PatternError),
	)
}

func provideJobSettings(cfg config.Config) job.Settings {
	return job.Settings{
		PageSize:      cfg.Search.PageSize,
		IngestResults: cfg.Search.IngestResults,
	}
}

func provideApplicationService(store repository.RecordStore, paths repository.Paths, logger *logging.Logger) (*application.Service, error) {
	return application.NewService(store, paths, application.WithLogger(logger))
}

// provideSheetsClient returns nil when no credentials are configured
func provideSheetsClient(ctx context.Context, cfg config.Config) (tools.SheetsClient, error) {
	if !cfg.Sheets.Enabled() {
		return nil, nil
	}
	client, err := sheets.NewClient(ctx, sheets.Config{CredentialsPath: cfg.Sheets.CredentialsPath})
	if err != nil {
		return nil, errs.Configuration("sheets client", err)
	}
	return client, nil
}

func provideMCPHandler(logger *logging.Logger, svc job.Service, sheetsClient tools.SheetsClient) http.Handler {
	return mcp.NewHandler(mcp.NewServer(logger, svc, sheetsClient))
}

func provideServerConfig(cfg config.Config) server.Config {
	return server.Config{Host: cfg.Host, Port: cfg.Port}
}

var _ api.Submitter = (*application.Service)(nil)
