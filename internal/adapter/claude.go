package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	claudeDefaultBaseURL = "https://api.anthropic.com"
	claudeAPIVersion     = "2023-06-01"
	claudeMaxTokens      = 1024
)

// The Messages API has no JSON response mode, so the constraint is restated
// as a system prompt.
const claudeJSONSystem = "Reply with exactly one JSON object. No prose, no markdown."

// ClaudeAdapter connects to the Anthropic Messages API.
type ClaudeAdapter struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeMessagesRequest struct {
	Model     string          `json:"model"`
	System    string          `json:"system"`
	Messages  []claudeMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens"`
}

type claudeMessagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func (c *ClaudeAdapter) Name() string {
	return fmt.Sprintf("Claude (%s)", c.Model)
}

func (c *ClaudeAdapter) Provider() string { return ProviderClaude }

func (c *ClaudeAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	in := claudeMessagesRequest{
		Model:     c.Model,
		System:    claudeJSONSystem,
		Messages:  []claudeMessage{{Role: "user", Content: prompt}},
		MaxTokens: claudeMaxTokens,
	}
	header := http.Header{}
	header.Set("x-api-key", c.APIKey)
	header.Set("anthropic-version", claudeAPIVersion)

	var out claudeMessagesResponse
	url := endpoint(c.BaseURL, claudeDefaultBaseURL, "/v1/messages")
	if err := postJSON(ctx, c.Client, url, header, in, &out, openAIErrorMessage); err != nil {
		return "", fmt.Errorf("claude: %w", err)
	}

	var text strings.Builder
	for _, block := range out.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", errors.New("claude: empty response content")
	}
	// A cut-off reply cannot be a complete JSON object.
	if out.StopReason == "max_tokens" {
		return "", fmt.Errorf("claude: reply truncated at %d tokens", claudeMaxTokens)
	}
	return strings.TrimSpace(text.String()), nil
}

func (c *ClaudeAdapter) Available() bool {
	return c.APIKey != ""
}
