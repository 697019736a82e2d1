package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/taskin/taskin-api/internal/config"
	"github.com/taskin/taskin-api/internal/idcodec"
	"github.com/taskin/taskin-api/internal/platform/postgres"
	"github.com/taskin/taskin-api/internal/service"
	"github.com/taskin/taskin-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	taskStore store.TaskStore

	// Identifier codec, shared by every component that crosses the boundary
	codec *idcodec.Codec

	// Services
	userService *service.UserService
	taskService *service.TaskService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// The codec is constructed once; a bad encryption configuration fails
	// startup here instead of surfacing on the first request.
	codec, err := idcodec.New(cfg.Encryption)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize identifier codec: %w", err)
	}
	app.codec = codec
	logger.Info("identifier codec initialized", "algorithm", cfg.Encryption.Algorithm)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	app.userService = service.NewUserService(app.userStore, app.codec, logger)
	app.taskService = service.NewTaskService(app.taskStore, app.codec, logger)

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
