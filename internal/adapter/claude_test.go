package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClaudeAdapterGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("expected /v1/messages, got %s", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "sk-test" {
			t.Errorf("x-api-key: got %q, want %q", got, "sk-test")
		}
		if got := r.Header.Get("anthropic-version"); got != "2023-06-01" {
			t.Errorf("anthropic-version: got %q, want %q", got, "2023-06-01")
		}

		var req claudeMessagesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.System != claudeJSONSystem {
			t.Errorf("system: got %q, want %q", req.System, claudeJSONSystem)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Fatalf("messages: got %+v", req.Messages)
		}
		if req.Messages[0].Content != "the prompt" {
			t.Errorf("content: got %q", req.Messages[0].Content)
		}

		w.Write([]byte(`{"content":[{"type":"text","text":" {\"mood\":\"Calm\"} "}],"stop_reason":"end_turn"}`))
	}))
	defer srv.Close()

	a := &ClaudeAdapter{
		BaseURL: srv.URL,
		APIKey:  "sk-test",
		Model:   "claude-sonnet-4-5-20250929",
		Client:  &http.Client{Timeout: 5 * time.Second},
	}

	got, err := a.Generate(context.Background(), "the prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != `{"mood":"Calm"}` {
		t.Errorf("got %q, want %q", got, `{"mood":"Calm"}`)
	}
}

func TestClaudeAdapterServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": "invalid_request_error", "message": "max_tokens too large"},
		})
	}))
	defer srv.Close()

	a := &ClaudeAdapter{BaseURL: srv.URL, APIKey: "sk-test", Model: "m", Client: &http.Client{Timeout: 5 * time.Second}}

	_, err := a.Generate(context.Background(), "p")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "max_tokens too large") {
		t.Errorf("error: got %q", err)
	}
}

func TestClaudeAdapterRejectsTruncatedReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[{"type":"text","text":"{\"purpose\":\"Sa"}],"stop_reason":"max_tokens"}`))
	}))
	defer srv.Close()

	a := &ClaudeAdapter{BaseURL: srv.URL, APIKey: "sk-test", Model: "m", Client: &http.Client{Timeout: 5 * time.Second}}

	_, err := a.Generate(context.Background(), "p")
	if err == nil || !strings.Contains(err.Error(), "truncated") {
		t.Errorf("got %v, want truncation error", err)
	}
}

func TestClaudeAdapterAvailable(t *testing.T) {
	if (&ClaudeAdapter{}).Available() {
		t.Error("expected unavailable without API key")
	}
	if !(&ClaudeAdapter{APIKey: "sk"}).Available() {
		t.Error("expected available with API key")
	}
}
