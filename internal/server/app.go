// Package server wires configuration, storage, services and the HTTP API
// into a runnable application with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/scanmed/internal/logging"
	"github.com/dmitrijs2005/scanmed/internal/server/config"
	httpapi "github.com/dmitrijs2005/scanmed/internal/server/http"
	"github.com/dmitrijs2005/scanmed/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/scanmed/internal/server/services"
	"github.com/dmitrijs2005/scanmed/internal/server/views"
	"github.com/gin-gonic/gin"
)

var newRepositoryManager = repomanager.New

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	httpServer  *httpapi.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, out io.Writer) (*App, error) {
	logger, err := logging.New(out, c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	formatter, err := views.LoadFormatter(c.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("display timezone %q: %w", c.DisplayTimezone, err)
	}

	rm, err := newRepositoryManager(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close(ctx)
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	if c.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	records := services.NewRecordService(rm, logger)
	svc := httpapi.Services{
		Records: records,
		History: services.NewHistoryServiceWithRecords(records, formatter, logger),
		Images:  services.NewImageService(rm, c, logger),
		Admin:   services.NewAdminService(rm, logger),
	}

	srv := httpapi.NewServer(c.EndpointAddrHTTP, logger, svc, httpapi.Options{
		SecretKey:      c.SecretKey,
		AllowedOrigins: c.AllowedOrigins,
	})

	logger.Info(ctx, "storage ready", "backend", c.Storage)
	return &App{config: c, logger: logger, repomanager: rm, httpServer: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
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

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the storage backend.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repomanager.Close(context.Background()); err != nil {
		app.logger.Error(ctx, "storage close error", "error", err)
	}
	app.logger.Info(ctx, "Stopped")
}
