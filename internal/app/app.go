package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	internalhttp "github-stats/internal/http"
	"github-stats/internal/poller"
	"github-stats/internal/shared/configs"
	"github-stats/internal/shared/filestorages"
	"github-stats/internal/shared/loggers"
	"github-stats/internal/stores"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	poller           *poller.Poller
	backgroundCtx    context.Context
	backgroundCancel context.CancelFunc
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "github-stats").
		Logger()

	// Initialize blob store
	fileStorage, err := filestorages.NewFileStorage(config.FileStorage.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize event store
	storeLogger := appLogger.With().Str(loggers.FieldComponent, "stores").Logger()
	eventStore, err := stores.New(config.Storage, storeLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize event store: %w", err)
	}

	// Initialize poller
	var eventPoller *poller.Poller
	if config.Poller.Enabled {
		archive := stores.NewRawPayloadStore(fileStorage, config.Poller.ArchiveDir)
		stateStore := poller.NewStateStore(fileStorage, config.Poller.StateKey)
		client := poller.NewClient(config.Poller.URL)
		pollerLogger := appLogger.With().Str(loggers.FieldComponent, "poller").Logger()
		eventPoller = poller.New(
			client,
			eventStore,
			archive,
			stateStore,
			time.Duration(config.Poller.RetryDelaySec)*time.Second,
			config.Poller.RateLimitThreshold,
			pollerLogger,
		)
	}

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(eventStore, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:    config,
		appLogger: appLogger,
		server:    server,
		poller:    eventPoller,
	}, nil
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting github-stats service on port %d (log_level=%s, storage_backend=%s, poller_enabled=%t)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.Storage.Backend,
			app.config.Poller.Enabled)

	// start background poller
	app.backgroundCtx, app.backgroundCancel = context.WithCancel(context.Background())
	if app.poller != nil {
		if err := app.poller.Start(app.backgroundCtx); err != nil {
			return fmt.Errorf("failed to start poller: %w", err)
		}
	}

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Cancel the background poller
	if app.backgroundCancel != nil {
		app.backgroundCancel()
	}

	// 3) Wait for the in-flight polling cycle to finish
	if app.poller != nil {
		app.poller.Stop()
		app.appLogger.Info().Msg("Poller stopped")
	}

	return nil
}
