package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaService_SummarizeTranscript(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"Summary text"},"done":true}`))
	}))
	defer srv.Close()

	svc := NewOllamaService(srv.URL, "mistral")
	summary, err := svc.SummarizeTranscript(context.Background(), "transcript", "instruction")
	require.NoError(t, err)

	assert.Equal(t, "Summary text", summary)
	assert.Equal(t, "mistral", got["model"])
	assert.Equal(t, false, got["stream"])
	options := got["options"].(map[string]any)
	assert.InDelta(t, 0.3, options["temperature"], 1e-9)
	assert.Equal(t, float64(2048), options["num_predict"])
}

func TestOllamaService_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewOllamaService(srv.URL, "").SummarizeTranscript(context.Background(), "t", "i")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestOllamaService_Ping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	assert.NoError(t, NewOllamaService(srv.URL, "").Ping(context.Background()))

	srv.Close()
	assert.Error(t, NewOllamaService(srv.URL, "").Ping(context.Background()))
}
