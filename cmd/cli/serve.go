package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	api "meeting-notes-backend/cmd/api"
	"meeting-notes-backend/pkg/ai"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "listen port (defaults to PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp()
	if err := a.validate(); err != nil {
		return err
	}
	defer a.close(context.Background())

	gin.SetMode(a.cfg.GinMode)

	summarizer := a.summarizer(ctx)
	m := a.mailer()
	uc, err := a.usecase(ctx, summarizer, m)
	if err != nil {
		a.logger.Error().Err(err).Str("driver", a.cfg.DBDriver).Msg("failed to connect to database")
		return err
	}

	settings := api.Settings{
		AIProvider:     a.cfg.AIProvider,
		AIReady:        summarizer != nil,
		StoreDriver:    a.cfg.DBDriver,
		SMTPConfigured: m.Configured(),
		SMTPHost:       a.cfg.SMTPHost,
		MaxUploadBytes: a.cfg.MaxUploadBytes,
	}
	if summarizer != nil {
		settings.AIModel = summarizer.Model()
	}
	var pinger api.OllamaPinger
	if o, ok := summarizer.(*ai.OllamaService); ok {
		pinger = o
	}

	handler := api.NewHandler(a.cfg, uc, api.NewSettingsHandler(settings, m, pinger), a.logger)

	port := servePort
	if port == "" {
		port = a.cfg.Port
	}
	return handler.Start(ctx, ":"+port)
}
