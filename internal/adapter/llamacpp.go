package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const llamaCppDefaultBaseURL = "http://localhost:8080"

// LlamaCppAdapter talks to llama-server's OpenAI-compatible chat endpoint
// with JSON-constrained sampling.
type LlamaCppAdapter struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

type llamaCppMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type llamaCppResponseFormat struct {
	Type string `json:"type"`
}

type llamaCppChatRequest struct {
	Model          string                  `json:"model"`
	Messages       []llamaCppMessage       `json:"messages"`
	ResponseFormat *llamaCppResponseFormat `json:"response_format,omitempty"`
	Temperature    float64                 `json:"temperature"`
}

type llamaCppChoice struct {
	Message      llamaCppMessage `json:"message"`
	FinishReason string          `json:"finish_reason"`
}

type llamaCppChatResponse struct {
	Choices []llamaCppChoice `json:"choices"`
}

func (l *LlamaCppAdapter) Name() string {
	return fmt.Sprintf("llama.cpp (%s)", l.Model)
}

func (l *LlamaCppAdapter) Provider() string { return ProviderLlamaCpp }

func (l *LlamaCppAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	in := llamaCppChatRequest{
		Model:          l.Model,
		Messages:       []llamaCppMessage{{Role: "user", Content: prompt}},
		ResponseFormat: &llamaCppResponseFormat{Type: "json_object"},
		Temperature:    0.2,
	}

	var out llamaCppChatResponse
	url := endpoint(l.BaseURL, llamaCppDefaultBaseURL, "/v1/chat/completions")
	if err := postJSON(ctx, l.Client, url, nil, in, &out, openAIErrorMessage); err != nil {
		return "", fmt.Errorf("llamacpp: %w", err)
	}

	if len(out.Choices) == 0 {
		return "", errors.New("llamacpp: empty response choices")
	}
	choice := out.Choices[0]
	if choice.FinishReason == "length" {
		return "", errors.New("llamacpp: reply truncated by context length")
	}
	return strings.TrimSpace(choice.Message.Content), nil
}

// Available checks llama-server's /health, which answers 200 once the model is loaded.
func (l *LlamaCppAdapter) Available() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint(l.BaseURL, llamaCppDefaultBaseURL, "/health"), nil)
	if err != nil {
		return false
	}
	resp, err := l.Client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
