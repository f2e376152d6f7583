// Package ingest is a small in-memory stand-in for the log ingestion backend.
// It serves the same ingest endpoints the uploader talks to so uploads can be
// tried locally.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-ID"

type Server struct {
	config *StubConfig
	router *gin.Engine
	store  *EventStore
	logger zerolog.Logger
	now    func() time.Time
}

func NewServer(cfg *StubConfig, logger zerolog.Logger) *Server {
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config: cfg,
		router: gin.New(),
		store:  NewEventStore(cfg.Storage.MaxEvents),
		logger: logger,
		now:    time.Now,
	}
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.RegisterRoutes(s.router)

	return s
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Store() *EventStore {
	return s.store
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.config.Address(),
		Handler: s.router,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", httpServer.Addr).Msg("ingest stub listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	timeout := time.Duration(s.config.Server.ShutdownTimeoutSeconds) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info().Int("stored_events", s.store.Len()).Msg("shutting down ingest stub")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// requestLogger writes one access log line per request and makes sure every
// response carries a request id.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		requestID := ctx.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Header(requestIDHeader, requestID)

		ctx.Next()

		event := s.logger.Info()
		if ctx.Writer.Status() >= http.StatusInternalServerError {
			event = s.logger.Error()
		}
		event.
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Int("status", ctx.Writer.Status()).
			Int("bytes_in", int(ctx.Request.ContentLength)).
			Dur("latency", time.Since(start)).
			Str("request_id", requestID).
			Msg("request")
	}
}
