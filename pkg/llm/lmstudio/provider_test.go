package lmstudio

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

func TestCompleteReturnsFirstChoice(t *testing.T) {
	var captured completionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		fmt.Fprint(w, `{"choices":[{"text":"hello from the model"}]}`)
	}))
	defer server.Close()

	provider := NewLMStudioProvider(server.URL, "test-model")
	out, err := provider.Complete(context.Background(), "say hello",
		llm.WithTemperature(0.3),
		llm.WithMaxTokens(128),
	)
	require.NoError(t, err)
	assert.Equal(t, "hello from the model", out)

	assert.Equal(t, "test-model", captured.Model)
	assert.Equal(t, "say hello", captured.Prompt)
	assert.Equal(t, 128, captured.MaxTokens)
	assert.InDelta(t, 0.3, captured.Temperature, 1e-9)
	assert.False(t, captured.Stream)
}

func TestCompleteServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := NewLMStudioProvider(server.URL, "test-model")
	_, err := provider.Complete(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestCompleteEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer server.Close()

	provider := NewLMStudioProvider(server.URL, "test-model")
	_, err := provider.Complete(context.Background(), "hi")
	require.Error(t, err)
}

func TestStreamCollectsEventChunks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req completionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"text\":\"Hel\"}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"text\":\"lo\"}]}\n\n")
		fmt.Fprint(w, ": keep-alive comment\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	provider := NewLMStudioProvider(server.URL, "test-model")
	chunks, err := provider.Stream(context.Background(), "hi")
	require.NoError(t, err)

	var text string
	for chunk := range chunks {
		require.NoError(t, chunk.Err)
		text += chunk.Text
	}
	assert.Equal(t, "Hello", text)
}

func TestStreamStatusErrorBeforeBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer server.Close()

	provider := NewLMStudioProvider(server.URL, "test-model")
	_, err := provider.Stream(context.Background(), "hi")
	require.Error(t, err)
}
