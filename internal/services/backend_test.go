package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/config"
)

func TestGroqBackend_Complete(t *testing.T) {
	var got chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}]}`))
	}))
	defer server.Close()

	backend := NewGroqBackend("test-key", "llama-test", server.URL+"/")
	text, err := backend.Complete(context.Background(), ChatRequest{
		SystemPrompt: "sys",
		UserPrompt:   "user",
		Temperature:  0.3,
		MaxTokens:    100,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, text)
	assert.Equal(t, "llama-test", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Content)
	assert.Equal(t, 100, got.MaxTokens)
}

func TestGroqBackend_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit"}}`))
	}))
	defer server.Close()

	_, err := NewGroqBackend("k", "m", server.URL).Complete(context.Background(), ChatRequest{UserPrompt: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "rate limit")
}

func TestGroqBackend_MissingKey(t *testing.T) {
	_, err := NewGroqBackend("", "m", "").Complete(context.Background(), ChatRequest{UserPrompt: "x"})

	assert.ErrorIs(t, err, ErrBackendNotConfigured)
}

func TestNewChatBackend(t *testing.T) {
	backend, err := NewChatBackend(config.LLMConfig{Provider: "gemini"})
	require.NoError(t, err)
	_, err = backend.Complete(context.Background(), ChatRequest{UserPrompt: "x"})
	assert.ErrorIs(t, err, ErrBackendNotConfigured)
	_, isEmbedder := backend.(Embedder)
	assert.True(t, isEmbedder)

	backend, err = NewChatBackend(config.LLMConfig{Provider: "GROQ"})
	require.NoError(t, err)
	assert.IsType(t, &GroqBackend{}, backend)

	_, err = NewChatBackend(config.LLMConfig{Provider: "openai"})
	assert.Error(t, err)
}

func TestInvokeOptionsFromConfig(t *testing.T) {
	opts := InvokeOptionsFromConfig(config.LLMConfig{MaxRetries: 5, MaxTokens: 512, Temperature: 0.1})

	assert.Equal(t, 5, opts.MaxRetries)
	assert.Equal(t, 512, opts.MaxTokens)
	assert.InDelta(t, 0.1, opts.Temperature, 1e-6)
	assert.True(t, opts.UseCache)

	opts = InvokeOptionsFromConfig(config.LLMConfig{})
	assert.Equal(t, 3, opts.MaxRetries)
	assert.Equal(t, 2000, opts.MaxTokens)
}

func TestAnalyze_UnconfiguredBackendFallsBack(t *testing.T) {
	backend, err := NewChatBackend(config.LLMConfig{})
	require.NoError(t, err)
	inv, _ := newTestInvoker(backend, nil)

	result := NewProposalAnalyzer(inv, nil, DefaultInvokeOptions()).Analyze(context.Background(), analysisRequest("offer"))

	assert.True(t, result.Fallback)
}
