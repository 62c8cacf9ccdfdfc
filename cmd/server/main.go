package main

import (
	"context"
	"log"
	"os"
	"syscall"
	"time"

	"github.com/honeycarbs/talentry/internal/app"
	"github.com/honeycarbs/talentry/internal/config"
	"github.com/honeycarbs/talentry/pkg/logging"
	"github.com/honeycarbs/talentry/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	application, cleanup, err := app.InitializeApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	go shutdown.Graceful(
		ctx,
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		10*time.Second,
		logger,
		application.Server,
	)

	logger.Info("server initialized and starting",
		"addr", application.Server.Addr(),
		"store", cfg.Store.Backend,
		"provider", cfg.Provider.Name,
		"matchMode", cfg.Search.MatchMode,
		"sheetsExport", cfg.Sheets.Enabled(),
	)

	if err := application.Server.Run(); err != nil {
		logger.Error("server exited with error", "err", err)
	} else {
		logger.Info("server stopped")
	}
}
