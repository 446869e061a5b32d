package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-chatlog-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletePassesOptions(t *testing.T) {
	var captured ollamaGenerateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		fmt.Fprint(w, `{"response":"full answer","done":true}`)
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL, "llama3")
	out, err := provider.Complete(context.Background(), "question",
		llm.WithMaxTokens(256),
		llm.WithTemperature(0.5),
	)
	require.NoError(t, err)
	assert.Equal(t, "full answer", out)

	assert.Equal(t, "llama3", captured.Model)
	assert.Equal(t, "question", captured.Prompt)
	assert.False(t, captured.Stream)
	require.NotNil(t, captured.Options)
	assert.Equal(t, 256, captured.Options.NumPredict)
	assert.InDelta(t, 0.5, captured.Options.Temperature, 1e-9)
}

func TestStreamNdjson(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"response":"Hel","done":false}`)
		fmt.Fprintln(w, `{"response":"lo","done":false}`)
		fmt.Fprintln(w, `{"response":"","done":true}`)
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL, "llama3")
	chunks, err := provider.Stream(context.Background(), "hi")
	require.NoError(t, err)

	var text string
	for chunk := range chunks {
		require.NoError(t, chunk.Err)
		text += chunk.Text
	}
	assert.Equal(t, "Hello", text)
}

func TestStreamErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model missing", http.StatusNotFound)
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL, "llama3")
	_, err := provider.Stream(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		fmt.Fprint(w, `{"models":[]}`)
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL, "llama3")
	assert.NoError(t, provider.Ping(context.Background()))

	server.Close()
	assert.Error(t, provider.Ping(context.Background()))
}
