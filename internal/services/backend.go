package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/config"
)

// ErrBackendNotConfigured is returned by backends built without an API key.
var ErrBackendNotConfigured = errors.New("llm backend not configured")

type ChatRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float32
	MaxTokens    int
}

// ChatBackend sends one system+user exchange to a text-generation model and
// returns the raw reply text.
type ChatBackend interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// NewChatBackend builds the backend selected by cfg.Provider. A missing API
// key is not an error here; calls fail later with ErrBackendNotConfigured.
func NewChatBackend(cfg config.LLMConfig) (ChatBackend, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "gemini":
		return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
	case "groq":
		return NewGroqBackend(cfg.GroqAPIKey, cfg.GroqModel, cfg.GroqBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// InvokeOptionsFromConfig applies configured overrides to the defaults.
func InvokeOptionsFromConfig(cfg config.LLMConfig) InvokeOptions {
	opts := DefaultInvokeOptions()
	if cfg.MaxRetries > 0 {
		opts.MaxRetries = cfg.MaxRetries
	}
	if cfg.MaxTokens > 0 {
		opts.MaxTokens = cfg.MaxTokens
	}
	if cfg.Temperature >= 0 {
		opts.Temperature = float32(cfg.Temperature)
	}
	return opts
}
