package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/cybercompass/internal/httpapi"
	"github.com/huangsam/cybercompass/internal/metrics"
	"github.com/spf13/cobra"
)

// serveCmd runs the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve quiz sessions over an HTTP JSON API",
	Long: `Start an HTTP server exposing quiz sessions as a JSON API.

Routes:
  POST   /v1/sessions               start a session ({"path": "specialist"})
  GET    /v1/sessions/:id           session progress
  GET    /v1/sessions/:id/question  current question
  POST   /v1/sessions/:id/answers   answer it ({"choice": "b"})
  POST   /v1/sessions/:id/reflex    reflex drill action ({"action": "DROP"})
  GET    /v1/sessions/:id/dossier   agent dossier
  GET    /v1/sessions/:id/gaps      capability gap analysis
  DELETE /v1/sessions/:id           end the session
  GET    /v1/questions?path=...     questions of a path
  GET    /healthz                   liveness
  GET    /metrics                   Prometheus metrics

Sessions live in memory and expire after --session-ttl.

Examples:
  cybercompass serve --addr :9000 --cors-origins https://quiz.example.com
  CYBERCOMPASS_LOG_FORMAT=json cybercompass serve`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		reg, err := newRegistry(log, metrics.Default())
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := httpapi.NewServer(reg, httpapi.Options{
			Version:     version,
			CORSOrigins: cfg.CORSOrigins,
			Logger:      log,
		})
		return srv.Run(ctx, cfg.Addr)
	},
}
