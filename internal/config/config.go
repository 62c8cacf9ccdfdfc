// Package config loads runtime settings from the environment, an optional
// .env file and an optional YAML file named by CONFIG_FILE.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/honeycarbs/talentry/internal/domain/job/filter"
	"github.com/honeycarbs/talentry/internal/errs"
)

// Store backends
const (
	BackendRedis    = "redis"
	BackendNeo4j    = "neo4j"
	BackendPostgres = "postgres"
)

// Search providers
const (
	ProviderJSearch = "jsearch"
	ProviderAdzuna  = "adzuna"
)

// Config contains runtime settings for the server and tools
type Config struct {
	LogLevel string
	Host     string
	Port     string
	AppID    string

	Store    StoreConfig
	Provider ProviderConfig
	Search   SearchConfig
	Sheets   SheetsConfig
}

type StoreConfig struct {
	Backend     string
	RedisURL    string
	DatabaseURL string
	Neo4j       struct {
		URI      string
		Username string
		Password string
		Database string
	}
}

type ProviderConfig struct {
	Name         string
	RapidAPIKey  string
	RapidAPIHost string
	AdzunaAppID  string
	AdzunaAppKey string
	Timeout      time.Duration
}

type SearchConfig struct {
	MatchMode     filter.MatchMode
	PageSize      int
	IngestResults bool
}

// SheetsConfig enables the sheets_export tool when CredentialsPath is set
type SheetsConfig struct {
	CredentialsPath string
}

func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != ""
}

var defaults = map[string]any{
	"log_level":             "info",
	"host":                  "0.0.0.0",
	"port":                  "8080",
	"app_id":                "default-app-id",
	"store_backend":         BackendRedis,
	"redis_url":             "redis://localhost:6379/0",
	"search_provider":       ProviderJSearch,
	"rapidapi_host":         "jsearch.p.rapidapi.com",
	"provider_timeout":      "15s",
	"search_match_mode":     string(filter.MatchLiteral),
	"search_page_size":      10,
	"search_ingest_results": false,
}

// keys read without a default
var optionalKeys = []string{
	"neo4j_uri", "neo4j_username", "neo4j_password", "neo4j_database",
	"database_url",
	"rapidapi_key",
	"adzuna_app_id", "adzuna_app_key",
	"google_sheets_credentials_path",
	"config_file",
}

// Load populates config from .env, CONFIG_FILE and environment variables,
// in increasing priority
func Load() (Config, error) {
	return load(true)
}

// LoadStore is Load without the search provider checks, for tools that
// only touch the record store
func LoadStore() (Config, error) {
	return load(false)
}

func load(withProvider bool) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, errs.Configuration("failed to read .env", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for _, key := range optionalKeys {
		_ = v.BindEnv(key)
	}
	v.AutomaticEnv()

	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errs.Configuration(fmt.Sprintf("failed to read config file %s", path), err)
		}
	}

	return fromViper(v, withProvider)
}

func fromViper(v *viper.Viper, withProvider bool) (Config, error) {
	cfg := Config{
		LogLevel: v.GetString("log_level"),
		Host:     v.GetString("host"),
		Port:     v.GetString("port"),
		AppID:    v.GetString("app_id"),
	}

	cfg.Store.Backend = strings.ToLower(v.GetString("store_backend"))
	cfg.Store.RedisURL = v.GetString("redis_url")
	cfg.Store.DatabaseURL = v.GetString("database_url")
	cfg.Store.Neo4j.URI = v.GetString("neo4j_uri")
	cfg.Store.Neo4j.Username = v.GetString("neo4j_username")
	cfg.Store.Neo4j.Password = v.GetString("neo4j_password")
	cfg.Store.Neo4j.Database = v.GetString("neo4j_database")

	cfg.Provider.Name = strings.ToLower(v.GetString("search_provider"))
	cfg.Provider.RapidAPIKey = v.GetString("rapidapi_key")
	cfg.Provider.RapidAPIHost = v.GetString("rapidapi_host")
	cfg.Provider.AdzunaAppID = v.GetString("adzuna_app_id")
	cfg.Provider.AdzunaAppKey = v.GetString("adzuna_app_key")
	cfg.Provider.Timeout = v.GetDuration("provider_timeout")

	cfg.Search.PageSize = v.GetInt("search_page_size")
	cfg.Search.IngestResults = v.GetBool("search_ingest_results")

	cfg.Sheets.CredentialsPath = v.GetString("google_sheets_credentials_path")

	var (
		missingVars []string
		invalid     []string
	)
	require := func(name, value string) {
		if value == "" {
			missingVars = append(missingVars, name)
		}
	}

	switch cfg.Store.Backend {
	case BackendRedis:
		require("REDIS_URL", cfg.Store.RedisURL)
	case BackendNeo4j:
		require("NEO4J_URI", cfg.Store.Neo4j.URI)
		require("NEO4J_USERNAME", cfg.Store.Neo4j.Username)
		require("NEO4J_PASSWORD", cfg.Store.Neo4j.Password)
	case BackendPostgres:
		require("DATABASE_URL", cfg.Store.DatabaseURL)
	default:
		invalid = append(invalid, fmt.Sprintf("STORE_BACKEND %q", cfg.Store.Backend))
	}

	if withProvider {
		switch cfg.Provider.Name {
		case ProviderJSearch:
			require("RAPIDAPI_KEY", cfg.Provider.RapidAPIKey)
			require("RAPIDAPI_HOST", cfg.Provider.RapidAPIHost)
		case ProviderAdzuna:
			require("ADZUNA_APP_ID", cfg.Provider.AdzunaAppID)
			require("ADZUNA_APP_KEY", cfg.Provider.AdzunaAppKey)
		default:
			invalid = append(invalid, fmt.Sprintf("SEARCH_PROVIDER %q", cfg.Provider.Name))
		}
	}

	mode, err := filter.ParseMatchMode(v.GetString("search_match_mode"))
	if err != nil {
		invalid = append(invalid, fmt.Sprintf("SEARCH_MATCH_MODE %q", v.GetString("search_match_mode")))
	}
	cfg.Search.MatchMode = mode

	if cfg.Search.PageSize < 1 {
		invalid = append(invalid, fmt.Sprintf("SEARCH_PAGE_SIZE %d", cfg.Search.PageSize))
	}
	if cfg.Provider.Timeout <= 0 {
		invalid = append(invalid, fmt.Sprintf("PROVIDER_TIMEOUT %q", v.GetString("provider_timeout")))
	}

	var problems []string
	if len(missingVars) > 0 {
		problems = append(problems, "missing required environment variables: "+strings.Join(missingVars, ", "))
	}
	if len(invalid) > 0 {
		problems = append(problems, "invalid values: "+strings.Join(invalid, ", "))
	}
	if len(problems) > 0 {
		e := errs.Configuration(strings.Join(problems, "; "), nil)
		e.Details = slices.Concat(missingVars, invalid)
		return cfg, e
	}

	return cfg, nil
}
