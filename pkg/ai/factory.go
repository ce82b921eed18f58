package ai

import (
	"context"
	"fmt"

	"meeting-notes-backend/pkg/gemini"
)

// Config holds AI provider configuration
type Config struct {
	Provider ProviderType

	// Groq config
	GroqAPIKey  string
	GroqModel   string
	GroqBaseURL string

	// Gemini config
	GeminiAPIKey string
	GeminiModel  string

	// Ollama config
	OllamaBaseURL string // e.g., "http://localhost:11434"
	OllamaModel   string // e.g., "llama3", "mistral"
}

// NewSummarizerService creates a SummarizerService based on the config.
// Switch AI provider by changing cfg.Provider.
func NewSummarizerService(ctx context.Context, cfg Config) (SummarizerService, error) {
	switch cfg.Provider {
	case ProviderGroq, "":
		if cfg.GroqAPIKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY is required for Groq provider")
		}
		return NewGroqService(cfg.GroqBaseURL, cfg.GroqAPIKey, cfg.GroqModel), nil

	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider")
		}
		svc, err := gemini.NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return geminiAdapter{svc}, nil

	case ProviderOllama:
		return NewOllamaService(cfg.OllamaBaseURL, cfg.OllamaModel), nil

	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

// geminiAdapter lets the gemini client satisfy SummarizerService without
// that package importing this one.
type geminiAdapter struct {
	*gemini.GeminiService
}

func (geminiAdapter) Provider() ProviderType { return ProviderGemini }
