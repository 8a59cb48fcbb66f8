// Package httpapi exposes the ScanMed REST API over gin.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/scanmed/internal/logging"
	"github.com/dmitrijs2005/scanmed/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

// Services groups the business services the handlers call.
type Services struct {
	Records *services.RecordService
	History *services.HistoryService
	Images  *services.ImageService
	Admin   *services.AdminService
}

// Options configure the router.
type Options struct {
	SecretKey      string
	AllowedOrigins []string
}

type Server struct {
	address string
	logger  logging.Logger
	handler http.Handler
}

func NewServer(address string, l logging.Logger, svc Services, opts Options) *Server {
	logger := l.With("module", "http_server")
	return &Server{
		address: address,
		logger:  logger,
		handler: NewRouter(logger, svc, opts),
	}
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.handler }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *Server) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{Handler: s.handler}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "http shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}
