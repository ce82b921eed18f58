package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"meeting-notes-backend/pkg/ai/prompt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *GeminiService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := newGeminiService(context.Background(), "test-key", "gemini-test", srv.URL)
	require.NoError(t, err)
	return svc
}

func TestSummarizeTranscript(t *testing.T) {
	var got map[string]any
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-test:generateContent"), r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"1. Alice "},{"text":"drafts budget"}]}}]}`))
	})

	summary, err := svc.SummarizeTranscript(context.Background(), "Alice and Bob discussed budget.", "List action items")
	require.NoError(t, err)

	assert.Equal(t, "1. Alice drafts budget", summary)
	assert.Equal(t, "gemini-test", svc.Model())

	cfg, ok := got["generationConfig"].(map[string]any)
	require.True(t, ok, "generationConfig missing: %v", got)
	assert.InDelta(t, prompt.Temperature, cfg["temperature"], 1e-6)
	assert.Equal(t, float64(prompt.MaxTokens), cfg["maxOutputTokens"])

	raw, err := json.Marshal(got["contents"])
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Alice and Bob discussed budget.")
	assert.Contains(t, string(raw), "List action items")
}

func TestSummarizeTranscript_NoCandidates(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	summary, err := svc.SummarizeTranscript(context.Background(), "t", "p")
	require.NoError(t, err)
	assert.Empty(t, summary)
}

func TestSummarizeTranscript_ProviderError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`))
	})

	_, err := svc.SummarizeTranscript(context.Background(), "t", "p")
	assert.Error(t, err)
}

func TestNewGeminiService_DefaultModel(t *testing.T) {
	svc, err := NewGeminiService(context.Background(), "test-key", "")
	require.NoError(t, err)
	assert.Equal(t, defaultModel, svc.Model())
}
