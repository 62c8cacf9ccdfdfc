// Command seed loads a JSON array of job records into the record store.
// Records whose id already exists are left untouched.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/honeycarbs/talentry/internal/app"
	"github.com/honeycarbs/talentry/internal/config"
	"github.com/honeycarbs/talentry/internal/domain"
	"github.com/honeycarbs/talentry/internal/domain/job"
	"github.com/honeycarbs/talentry/internal/repository"
	"github.com/honeycarbs/talentry/pkg/logging"
)

func main() {
	file := flag.String("file", "", "path to a JSON array of job records (- for stdin)")
	appID := flag.String("app-id", "", "record store namespace, overrides APP_ID")
	timeout := flag.Duration("timeout", time.Minute, "overall deadline")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadStore()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *appID != "" {
		cfg.AppID = *appID
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	records, err := readRecords(*file)
	if err != nil {
		logger.Error("failed to read records", "file", *file, "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	store, cleanup, err := app.InitializeStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to connect record store", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	created, err := job.Ingest(ctx, store, repository.NewPaths(cfg.AppID), records)
	if err != nil {
		logger.Error("seeding stopped early", "created", created, "err", err)
		os.Exit(1)
	}

	logger.Info("seed complete", "read", len(records), "created", created, "skipped", len(records)-created)
}

func readRecords(path string) ([]domain.JobRecord, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var records []domain.JobRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}
