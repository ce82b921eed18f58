package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	summaryDelivery "meeting-notes-backend/internal/summary/delivery"
	summaryUsecase "meeting-notes-backend/internal/summary/usecase"
	"meeting-notes-backend/pkg/config"
	"meeting-notes-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

type Handler struct {
	config          *config.Config
	summaryHandler  *summaryDelivery.SummaryHandler
	settingsHandler *SettingsHandler
	logger          zerolog.Logger
}

func NewHandler(cfg *config.Config, summaryUc summaryUsecase.SummaryUsecase, settingsHandler *SettingsHandler, log zerolog.Logger) *Handler {
	return &Handler{
		config:          cfg,
		summaryHandler:  summaryDelivery.NewSummaryHandler(summaryUc, cfg.MaxUploadBytes, logger.Component(log, "summary")),
		settingsHandler: settingsHandler,
		logger:          log,
	}
}

// Engine builds the gin engine with middleware and routes.
func (h *Handler) Engine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(logger.Component(h.logger, "http")))
	r.Use(corsMiddleware())
	r.MaxMultipartMemory = h.config.MaxUploadBytes

	SetupRoutes(r, h.summaryHandler, h.settingsHandler)
	return r
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (h *Handler) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info().Str("addr", addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	h.logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
