package gemini

import (
	"context"
	"fmt"
	"strings"

	"meeting-notes-backend/pkg/ai/prompt"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

type GeminiService struct {
	client *genai.Client
	model  string
}

func NewGeminiService(ctx context.Context, apiKey, model string) (*GeminiService, error) {
	return newGeminiService(ctx, apiKey, model, "")
}

// newGeminiService allows pointing the client at another endpoint.
func newGeminiService(ctx context.Context, apiKey, model, baseURL string) (*GeminiService, error) {
	if model == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiService{client: client, model: model}, nil
}

func (g *GeminiService) SummarizeTranscript(ctx context.Context, transcript, instruction string) (string, error) {
	temperature := float32(prompt.Temperature)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.System, genai.RoleUser),
		Temperature:       &temperature,
		MaxOutputTokens:   prompt.MaxTokens,
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt.User(instruction, transcript)), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	// First candidate only; a response without candidates is an empty completion.
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", nil
	}
	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			text.WriteString(part.Text)
		}
	}
	return text.String(), nil
}

func (g *GeminiService) Model() string {
	return g.model
}
