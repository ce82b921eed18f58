package ai

import "context"

// SummarizerService is the interface for transcript summarization.
// Implement this interface to add new AI providers.
//
// An empty completion is returned as "" with a nil error; the caller decides
// how to treat it.
type SummarizerService interface {
	SummarizeTranscript(ctx context.Context, transcript, instruction string) (string, error)
	Provider() ProviderType
	Model() string
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderGroq   ProviderType = "groq"
	ProviderGemini ProviderType = "gemini"
	ProviderOllama ProviderType = "ollama"
)
