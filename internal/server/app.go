// Package server initializes and runs the file-hosting service: it opens
// the document store, wires repositories and services, bootstraps the
// admin account, and starts the HTTP server with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/filehost/internal/logging"
	"github.com/dmitrijs2005/filehost/internal/server/blobs"
	"github.com/dmitrijs2005/filehost/internal/server/config"
	"github.com/dmitrijs2005/filehost/internal/server/httpapi"
	"github.com/dmitrijs2005/filehost/internal/server/repositories/apps"
	"github.com/dmitrijs2005/filehost/internal/server/repositories/files"
	"github.com/dmitrijs2005/filehost/internal/server/repositories/users"
	"github.com/dmitrijs2005/filehost/internal/server/services"
	"github.com/dmitrijs2005/filehost/internal/server/storage"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	store       *storage.Store
	userService *services.UserService
	httpServer  *httpapi.Server
}

func NewApp(c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	store, err := storage.Open(c.DatabaseFile, logger)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	blobStore, err := blobs.NewStore(c.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	us := services.NewUserService(users.NewStoreRepository(store), logger)
	fs := services.NewFileService(files.NewStoreRepository(store), blobStore, logger)
	as := services.NewAppService(apps.NewStoreRepository(store), blobStore, logger)

	hs := httpapi.NewServer(c, logger, us, fs, as, blobStore)

	return &App{config: c, logger: logger, store: store, userService: us, httpServer: hs}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	created, err := app.userService.EnsureAdmin(ctx, app.config.AdminUsername, app.config.AdminPassword, app.config.AdminEmail)
	if err != nil {
		app.logger.Error(ctx, "admin bootstrap failed", "error", err.Error())
		cancelFunc()
		return
	}
	if created {
		app.logger.Warn(ctx, "bootstrap admin created with configured credentials, change the password", "username", app.config.AdminUsername)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.store.Close(); err != nil {
		app.logger.Error(ctx, "store close failed", "error", err.Error())
	}
}
