package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"drive-file-copy/internal/config"
	"drive-file-copy/internal/database"
	"drive-file-copy/internal/drive"
	"drive-file-copy/internal/event"
	"drive-file-copy/internal/gauth"
	"drive-file-copy/internal/handler"
	"drive-file-copy/internal/middleware"
	"drive-file-copy/internal/repository"
	"drive-file-copy/internal/router"
	"drive-file-copy/internal/service"
)

type App struct {
	server       *http.Server
	db           *database.Database
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	ctx := context.Background()

	slog.Info("authorizing against Google Drive", "credentials", cfg.CredentialsFile)
	driveSvc, err := gauth.NewService(ctx, cfg.CredentialsFile, cfg.TokenFile, os.Stdout, os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize drive client: %w", err)
	}
	driveClient := drive.NewClient(driveSvc, cfg.DrivePageSize, cfg.DriveRateLimit, cfg.DriveBurst)

	var db *database.Database
	var history service.BatchHistory
	if cfg.HistoryEnabled() {
		slog.Info("connecting to PostgreSQL")
		db, err = database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.Migrate(ctx, slog.Default()); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		history = repository.NewHistoryRepository(db.Pool)
		slog.Info("copy history enabled")
	} else {
		slog.Info("copy history disabled, DATABASE_URL not set")
	}

	bus := event.NewBus()

	catalogService := service.NewCatalogService(driveClient, bus)
	fileService := service.NewFileService(driveClient)
	copyService := service.NewCopyService(driveClient, fileService, bus, history, slog.Default())

	var authMiddleware *middleware.AuthMiddleware
	var authHandler *handler.AuthHandler
	if cfg.AuthEnabled() {
		authService := service.NewAuthService(cfg.APIPassphraseHash, cfg.JWTSecret, cfg.JWTAccessTTL)
		authMiddleware = middleware.NewAuthMiddleware(authService)
		authHandler = handler.NewAuthHandler(authService)
	} else {
		slog.Warn("API auth disabled, API_PASSPHRASE_HASH not set")
	}

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:    authHandler,
		Catalog: handler.NewCatalogHandler(catalogService),
		Files:   handler.NewFilesHandler(fileService),
		Copy:    handler.NewCopyHandler(copyService),
		Events:  handler.NewEventsHandler(bus),
		Health:  handler.NewHealthHandler(db),
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	app := &App{server: server, db: db}
	if db != nil {
		app.cleanupFuncs = append(app.cleanupFuncs, db.Close)
	}

	return app, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	slog.Info("server stopped")
	return nil
}
