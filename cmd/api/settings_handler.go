package api

import (
	"context"
	"net/http"

	"meeting-notes-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// Settings is the non-secret runtime configuration reported by GET /api/settings.
type Settings struct {
	AIProvider     string `json:"ai_provider"`
	AIModel        string `json:"ai_model"`
	AIReady        bool   `json:"ai_ready"`
	StoreDriver    string `json:"store_driver"`
	SMTPConfigured bool   `json:"smtp_configured"`
	SMTPHost       string `json:"smtp_host,omitempty"`
	MaxUploadBytes int64  `json:"max_upload_bytes"`
}

// SMTPVerifier dials and authenticates without sending.
type SMTPVerifier interface {
	Verify(ctx context.Context) error
}

// OllamaPinger checks that the local Ollama server answers.
type OllamaPinger interface {
	Ping(ctx context.Context) error
	BaseURL() string
}

type SettingsHandler struct {
	settings Settings
	smtp     SMTPVerifier
	ollama   OllamaPinger
}

// NewSettingsHandler creates a SettingsHandler. ollama may be nil when
// another provider is active.
func NewSettingsHandler(settings Settings, smtp SMTPVerifier, ollama OllamaPinger) *SettingsHandler {
	return &SettingsHandler{settings: settings, smtp: smtp, ollama: ollama}
}

// GetSettings returns current configuration
// GET /api/settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.settings)
}

// TestSMTPConnection checks that the configured SMTP server accepts the credentials
// POST /api/settings/smtp/test
func (h *SettingsHandler) TestSMTPConnection(c *gin.Context) {
	if err := h.smtp.Verify(c.Request.Context()); err != nil {
		resp := gin.H{"connected": false, "error": "Failed to send email. Please check your email configuration."}
		if appErr, ok := apperror.As(err); ok {
			resp["error"] = appErr.Message
			resp["code"] = appErr.Code
		}
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"connected": true,
		"message":   "Successfully connected to SMTP server",
	})
}

// TestOllamaConnection tests if the Ollama server is reachable
// POST /api/settings/ollama/test
func (h *SettingsHandler) TestOllamaConnection(c *gin.Context) {
	if h.ollama == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ollama is not the active AI provider"})
		return
	}

	if err := h.ollama.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"connected":       false,
			"ollama_base_url": h.ollama.BaseURL(),
			"error":           err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"connected":       true,
		"ollama_base_url": h.ollama.BaseURL(),
		"message":         "Successfully connected to Ollama server",
	})
}
