package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/BheruLalM/edustore-api/internal/config"
	"github.com/BheruLalM/edustore-api/internal/transport/web/mw"
)

type Server struct {
	log    zerolog.Logger
	server *http.Server
	cfg    *config.Config
}

func New(logger zerolog.Logger, cfg *config.Config, h Handlers, authn mw.Authenticator, lat *mw.Latency) *Server {
	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           newRouter(h, authn, lat, logger),
		ReadTimeout:       30 * time.Second, // multipart-загрузка до MAX_UPLOAD_MB
		WriteTimeout:      30 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{server: srv, cfg: cfg, log: logger}
}

// Run блокируется до Close; http.ErrServerClosed ошибкой не считается.
func (ws *Server) Run() error {
	ws.log.Info().Str("addr", ws.server.Addr).Msg("started")
	if err := ws.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (ws *Server) Close(ctx context.Context) error {
	if err := ws.server.Shutdown(ctx); err != nil {
		ws.log.Warn().Err(err).Msg("forced to shutdown")
		return err
	}
	ws.log.Info().Msg("exited gracefully")
	return nil
}
