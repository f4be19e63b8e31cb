// Package httpapi serves quiz sessions as a JSON API over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/huangsam/cybercompass/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server timeouts.
const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// Options configures a Server.
type Options struct {
	Version     string
	CORSOrigins []string // "*" allows every origin; empty disables CORS
	Logger      *zap.Logger
	Gatherer    prometheus.Gatherer // nil means the default registry
}

// Server routes API requests to a session registry.
type Server struct {
	reg     *session.Registry
	opts    Options
	logger  *zap.Logger
	engine  *gin.Engine
	started time.Time
}

// NewServer builds the gin engine and registers every route.
func NewServer(reg *session.Registry, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	engine := gin.New()
	engine.Use(requestLogger(opts.Logger))
	engine.Use(gin.Recovery())
	if len(opts.CORSOrigins) > 0 {
		engine.Use(cors.New(corsConfig(opts.CORSOrigins)))
	}

	s := &Server{
		reg:     reg,
		opts:    opts,
		logger:  opts.Logger,
		engine:  engine,
		started: time.Now(),
	}
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) setupRoutes() {
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{})))

	api := s.engine.Group("/v1")
	api.GET("/questions", s.handleListQuestions)

	sessions := api.Group("/sessions")
	{
		sessions.POST("", s.handleStartSession)
		sessions.GET("/:id", s.handleGetSession)
		sessions.GET("/:id/question", s.handleGetQuestion)
		sessions.POST("/:id/answers", s.handleAnswer)
		sessions.POST("/:id/reflex", s.handleReflex)
		sessions.GET("/:id/dossier", s.handleGetDossier)
		sessions.GET("/:id/gaps", s.handleGetGaps)
		sessions.DELETE("/:id", s.handleEndSession)
	}
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	return cfg
}

// requestLogger logs one line per request through zap.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}
