package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"meeting-notes-backend/pkg/ai/prompt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroqService_SummarizeTranscript(t *testing.T) {
	var got chatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"- Bob: send budget"}},{"message":{"content":"ignored"}}]}`))
	}))
	defer srv.Close()

	svc := NewGroqService(srv.URL+"/", "test-key", "llama-test")
	summary, err := svc.SummarizeTranscript(context.Background(), "Alice and Bob discussed budget.", "List action items")
	require.NoError(t, err)

	assert.Equal(t, "- Bob: send budget", summary)
	assert.Equal(t, "llama-test", got.Model)
	assert.InDelta(t, 0.3, got.Temperature, 1e-9)
	assert.Equal(t, 2048, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, prompt.System, got.Messages[0].Content)
	assert.Equal(t, prompt.User("List action items", "Alice and Bob discussed budget."), got.Messages[1].Content)
}

func TestGroqService_NoChoicesIsEmptyCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	summary, err := NewGroqService(srv.URL, "k", "").SummarizeTranscript(context.Background(), "t", "i")

	require.NoError(t, err)
	assert.Empty(t, summary)
}

func TestGroqService_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid API Key"}}`))
	}))
	defer srv.Close()

	_, err := NewGroqService(srv.URL, "bad", "").SummarizeTranscript(context.Background(), "t", "i")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestGroqService_Defaults(t *testing.T) {
	svc := NewGroqService("", "k", "")

	assert.Equal(t, ProviderGroq, svc.Provider())
	assert.Equal(t, "llama-3.1-8b-instant", svc.Model())
	assert.Equal(t, "https://api.groq.com/openai/v1", svc.baseURL)
}
