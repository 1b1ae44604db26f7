package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Model defines the contract for text model backends.
// Generate sends one prompt and returns the raw text the model produced.
type Model interface {
	Name() string
	Provider() string
	Generate(ctx context.Context, prompt string) (string, error)
	Available() bool
}

// ModelInfo is exposed via GET /api/health.
type ModelInfo struct {
	Provider   string `json:"provider"`
	Name       string `json:"name"`
	Configured bool   `json:"configured"`
	Available  bool   `json:"available"`
}

const (
	ProviderGemini   = "gemini"
	ProviderClaude   = "claude"
	ProviderLlamaCpp = "llamacpp"
	ProviderOllama   = "ollama"
	ProviderMock     = "mock"
)

// ErrMissingCredential is returned by New when a hosted provider has no API key.
var ErrMissingCredential = errors.New("model API key is not set")

// ErrUnknownProvider is returned by New for a provider name it does not know.
var ErrUnknownProvider = errors.New("unknown model provider")

// Settings selects and parameterises the single active model backend.
type Settings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

var defaultModels = map[string]string{
	ProviderGemini:   "gemini-1.5-flash",
	ProviderClaude:   "claude-sonnet-4-5-20250929",
	ProviderLlamaCpp: "qwen2.5-1.5b-gpu",
	ProviderOllama:   "qwen2.5:1.5b",
	ProviderMock:     "mock",
}

// Known reports whether name is a supported provider.
func Known(name string) bool {
	_, ok := defaultModels[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// DefaultModel returns the model used when none is configured.
func DefaultModel(provider string) string {
	return defaultModels[strings.ToLower(strings.TrimSpace(provider))]
}

// New builds the model for s. Hosted providers without an API key return
// ErrMissingCredential so the caller can run in the unconfigured state.
func New(s Settings) (Model, error) {
	provider := strings.ToLower(strings.TrimSpace(s.Provider))
	if !Known(provider) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, s.Provider)
	}

	model := strings.TrimSpace(s.Model)
	if model == "" {
		model = DefaultModel(provider)
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	apiKey := strings.TrimSpace(s.APIKey)

	switch provider {
	case ProviderGemini:
		if apiKey == "" {
			return nil, fmt.Errorf("%s: %w", provider, ErrMissingCredential)
		}
		return &GeminiAdapter{
			BaseURL: s.BaseURL,
			APIKey:  apiKey,
			Model:   model,
			Client:  &http.Client{Timeout: timeout},
		}, nil
	case ProviderClaude:
		if apiKey == "" {
			return nil, fmt.Errorf("%s: %w", provider, ErrMissingCredential)
		}
		return &ClaudeAdapter{
			BaseURL: s.BaseURL,
			APIKey:  apiKey,
			Model:   model,
			Client:  &http.Client{Timeout: timeout},
		}, nil
	case ProviderLlamaCpp:
		baseURL := s.BaseURL
		if baseURL == "" {
			baseURL = llamaCppDefaultBaseURL
		}
		return &LlamaCppAdapter{
			BaseURL: baseURL,
			Model:   model,
			Client:  &http.Client{Timeout: timeout},
		}, nil
	case ProviderOllama:
		baseURL := s.BaseURL
		if baseURL == "" {
			baseURL = ollamaDefaultBaseURL
		}
		o, err := NewOllamaAdapter(baseURL, model, timeout)
		if err != nil {
			return nil, err
		}
		return o, nil
	default:
		return &MockAdapter{}, nil
	}
}

// Describe reports m for the health endpoint. A nil model is the
// unconfigured state.
func Describe(provider string, m Model) ModelInfo {
	if m == nil {
		return ModelInfo{Provider: provider}
	}
	return ModelInfo{
		Provider:   m.Provider(),
		Name:       m.Name(),
		Configured: true,
		Available:  m.Available(),
	}
}
