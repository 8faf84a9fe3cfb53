package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/chetanya04/Copilot-Clone/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

type httpServer struct {
	server *http.Server
}

func NewHTTPServer(addr string, handler http.Handler) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *httpServer) Name() string { return "http server" }

func (s *httpServer) Run(ctx context.Context) error {
	slog.Info("Starting service", "name", s.Name(), "addr", s.server.Addr)
	defer slog.Info("Service stopped", "name", s.Name())

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()

		shutdownCtx, cancelFn := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelFn()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutting down http server", logger.Err(err))
		}
	}()

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-stopped
	return nil
}
