package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github-stats/internal/backfill"
	"github-stats/internal/shared/configs"
	"github-stats/internal/shared/filestorages"
	"github-stats/internal/shared/loggers"
	"github-stats/internal/stores"
)

func main() {
	configPath := flag.String("config", "./configs/configs.yml", "path to configuration file")
	dryRun := flag.Bool("dry-run", false, "decode and count archived events without inserting")
	flag.Parse()

	// Load configuration
	cfg, err := configs.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := loggers.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger = logger.With().
		Str(loggers.FieldApp, "github-stats-backfill").
		Logger()

	// Replaying into memory would be lost on exit; require persisted storage.
	if cfg.Storage.Backend != stores.BackendClickHouse {
		logger.Error().Msgf("backfill requires the %s storage backend, got %q", stores.BackendClickHouse, cfg.Storage.Backend)
		os.Exit(1)
	}

	fileStorage, err := filestorages.NewFileStorage(cfg.FileStorage.RootDir)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize file storage")
		os.Exit(1)
	}

	eventStore, err := stores.New(cfg.Storage, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize event store")
		os.Exit(1)
	}
	archive := stores.NewRawPayloadStore(fileStorage, cfg.Poller.ArchiveDir)

	backfiller := backfill.New(archive, eventStore, logger)
	stats, err := backfiller.Run(context.Background(), *dryRun)
	if err != nil {
		logger.Error().Err(err).Msg("backfill failed")
		os.Exit(1)
	}
	if stats.Errors > 0 {
		os.Exit(1)
	}
}
