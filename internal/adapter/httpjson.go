package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody caps how much of a failed reply is read for its message.
const maxErrorBody = 64 << 10

// StatusError is returned when a provider answers with a non-200 status.
// Message is the provider's own explanation, empty when it sent none.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("API error (status %d): %s", e.Code, e.Message)
}

// postJSON sends in as a JSON POST and decodes a 200 reply into out.
// apiMessage extracts the provider message from an error body; it may be nil.
func postJSON(ctx context.Context, client *http.Client, url string, header http.Header, in, out any, apiMessage func([]byte) string) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		se := &StatusError{Code: resp.StatusCode}
		if apiMessage != nil {
			raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			se.Message = strings.TrimSpace(apiMessage(raw))
		}
		return se
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// openAIErrorMessage reads the {"error":{"message":...}} shape shared by the
// Anthropic and OpenAI-compatible APIs.
func openAIErrorMessage(raw []byte) string {
	var e struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(raw, &e) != nil {
		return ""
	}
	return e.Error.Message
}

func endpoint(baseURL, fallback, path string) string {
	if baseURL == "" {
		baseURL = fallback
	}
	return strings.TrimRight(baseURL, "/") + path
}
