package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lazypower/petd/internal/config"
)

// Client is the interface for chat providers.
type Client interface {
	Chat(ctx context.Context, req Request) (*Response, error)
}

// Message is one turn of the conversation.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Request is a single chat completion request.
type Request struct {
	System   string
	Messages []Message
	// Schema is the JSON schema the reply must satisfy. Providers that
	// support structured output enforce it; the rest get it in the prompt.
	Schema map[string]any
}

// Response holds the result of a chat completion.
type Response struct {
	Content    string
	Provider   string
	Model      string
	TokensUsed int
}

// ErrBadResponse means the provider answered but the content was unusable.
var ErrBadResponse = errors.New("unusable model response")

// ProviderError is a non-200 answer from a provider API.
type ProviderError struct {
	Provider string
	Status   int
	Body     string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s api status %d: %s", e.Provider, e.Status, e.Body)
}

// HTTPStatus is the status to report to our own callers: rate limits pass
// through, auth failures become 401, everything else is a bad gateway.
func (e *ProviderError) HTTPStatus() int {
	switch e.Status {
	case http.StatusTooManyRequests:
		return http.StatusTooManyRequests
	case http.StatusUnauthorized, http.StatusForbidden:
		return http.StatusUnauthorized
	default:
		return http.StatusBadGateway
	}
}

// NewClient creates a chat client based on the config provider setting.
func NewClient(cfg config.LLMConfig) (Client, error) {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	switch strings.ToLower(cfg.Provider) {
	case "openai", "":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("openai provider requires OPENAI_API_KEY or config")
		}
		model := cfg.OpenAIModel
		if model == "" {
			model = "gpt-5"
		}
		return NewOpenAI(cfg.OpenAIKey, model, cfg.ReasoningEffort, timeout), nil
	case "anthropic":
		if cfg.AnthropicKey == "" {
			return nil, fmt.Errorf("anthropic provider requires ANTHROPIC_API_KEY or config")
		}
		model := cfg.AnthropicModel
		if model == "" {
			model = "claude-haiku-4-5-20251001"
		}
		return NewAnthropic(cfg.AnthropicKey, model, timeout), nil
	case "gemini":
		if cfg.GeminiKey == "" {
			return nil, fmt.Errorf("gemini provider requires GEMINI_API_KEY or config")
		}
		model := cfg.GeminiModel
		if model == "" {
			model = "gemini-2.5-flash"
		}
		return NewGemini(cfg.GeminiKey, model, timeout), nil
	case "ollama":
		url := cfg.OllamaURL
		if url == "" {
			url = "http://localhost:11434"
		}
		model := cfg.OllamaModel
		if model == "" {
			model = "llama3.2"
		}
		return NewOllama(url, model, timeout), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
}
