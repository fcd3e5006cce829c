package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

var (
	// ErrRetriesExhausted wraps the last attempt error once every retry failed.
	ErrRetriesExhausted = errors.New("llm retries exhausted")
	ErrNoJSONFound      = errors.New("no JSON found in response")
)

type InvokeOptions struct {
	MaxRetries  int
	Temperature float32
	MaxTokens   int
	UseCache    bool
	// Schema, when set, is a JSON schema the reply must satisfy.
	Schema string
}

func DefaultInvokeOptions() InvokeOptions {
	return InvokeOptions{
		MaxRetries:  3,
		Temperature: 0.3,
		MaxTokens:   2000,
		UseCache:    true,
	}
}

// LLMInvoker calls a ChatBackend, pulls a JSON payload out of the reply and
// retries with exponential backoff. Successful payloads are cached by prompt.
type LLMInvoker struct {
	backend   ChatBackend
	cache     ResponseCache
	baseDelay time.Duration
	sleep     func(ctx context.Context, d time.Duration) error
}

// NewLLMInvoker wires the invoker. The wait after failed attempt n is
// baseDelay * 2^n. A nil cache disables caching.
func NewLLMInvoker(backend ChatBackend, cache ResponseCache, baseDelay time.Duration) *LLMInvoker {
	if cache == nil {
		cache = NewNoopCache()
	}
	if baseDelay <= 0 {
		baseDelay = time.Second
	}
	return &LLMInvoker{
		backend:   backend,
		cache:     cache,
		baseDelay: baseDelay,
		sleep:     sleepContext,
	}
}

func (i *LLMInvoker) Cache() ResponseCache {
	return i.cache
}

// Invoke returns the JSON payload of the model reply to prompt/systemPrompt.
// Cancelling ctx aborts both an in-flight call and a pending backoff.
func (i *LLMInvoker) Invoke(ctx context.Context, prompt, systemPrompt string, opts InvokeOptions) (json.RawMessage, error) {
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultInvokeOptions().MaxTokens
	}

	key := CacheKey(prompt, systemPrompt)
	if opts.UseCache {
		if cached, ok := i.cache.Get(key); ok {
			log.Printf("💾 LLM cache hit (key %s)", key)
			return cached, nil
		}
	}

	var lastErr error
	for attempt := 1; attempt <= opts.MaxRetries; attempt++ {
		result, err := i.attempt(ctx, prompt, systemPrompt, opts)
		if err == nil {
			if opts.UseCache {
				i.cache.Set(key, result)
			}
			return result, nil
		}

		lastErr = err
		log.Printf("⚠️  LLM attempt %d/%d failed: %v", attempt, opts.MaxRetries, err)

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("llm call cancelled: %w", ctxErr)
		}

		if attempt < opts.MaxRetries {
			delay := i.baseDelay * time.Duration(1<<attempt)
			if err := i.sleep(ctx, delay); err != nil {
				return nil, fmt.Errorf("llm call cancelled during backoff: %w", err)
			}
		}
	}

	return nil, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, opts.MaxRetries, lastErr)
}

func (i *LLMInvoker) attempt(ctx context.Context, prompt, systemPrompt string, opts InvokeOptions) (json.RawMessage, error) {
	text, err := i.backend.Complete(ctx, ChatRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   prompt,
		Temperature:  opts.Temperature,
		MaxTokens:    opts.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	jsonStr, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}
	if !json.Valid([]byte(jsonStr)) {
		return nil, fmt.Errorf("invalid JSON in response: %s", truncate(jsonStr, 200))
	}

	if opts.Schema != "" {
		if err := ValidateJSONSchema(opts.Schema, []byte(jsonStr)); err != nil {
			return nil, err
		}
	}

	return json.RawMessage(jsonStr), nil
}

// ExtractJSON returns the first object or array in text, spanning from the
// first opening bracket to the last matching closer. Markdown fences are
// ignored. Whichever bracket opens first decides the shape, so prose like
// "see [1]" ahead of an object yields "[1]" and the caller's validity check
// rejects the reply.
func ExtractJSON(text string) (string, error) {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")

	candidates := []struct {
		start int
		close string
	}{
		{startObj, "}"},
		{startArr, "]"},
	}
	if startArr != -1 && (startObj == -1 || startArr < startObj) {
		candidates[0], candidates[1] = candidates[1], candidates[0]
	}

	for _, c := range candidates {
		if c.start == -1 {
			continue
		}
		end := strings.LastIndex(text, c.close)
		if end > c.start {
			return strings.TrimSpace(text[c.start : end+1]), nil
		}
	}

	return "", ErrNoJSONFound
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
