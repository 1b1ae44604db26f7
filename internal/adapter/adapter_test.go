package adapter

import (
	"errors"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name         string
		settings     Settings
		wantProvider string
		wantName     string
		wantErr      error
	}{
		{"gemini default model", Settings{Provider: "gemini", APIKey: "k"}, ProviderGemini, "Gemini (gemini-1.5-flash)", nil},
		{"gemini custom model", Settings{Provider: "Gemini", APIKey: "k", Model: "gemini-2.0-flash"}, ProviderGemini, "Gemini (gemini-2.0-flash)", nil},
		{"gemini without key", Settings{Provider: "gemini"}, "", "", ErrMissingCredential},
		{"gemini whitespace key", Settings{Provider: "gemini", APIKey: "   "}, "", "", ErrMissingCredential},
		{"claude without key", Settings{Provider: "claude"}, "", "", ErrMissingCredential},
		{"claude", Settings{Provider: "claude", APIKey: "sk"}, ProviderClaude, "Claude (claude-sonnet-4-5-20250929)", nil},
		{"llamacpp needs no key", Settings{Provider: "llamacpp"}, ProviderLlamaCpp, "llama.cpp (qwen2.5-1.5b-gpu)", nil},
		{"ollama needs no key", Settings{Provider: "ollama", Timeout: time.Second}, ProviderOllama, "Ollama (qwen2.5:1.5b)", nil},
		{"mock", Settings{Provider: "mock"}, ProviderMock, "Mock", nil},
		{"unknown", Settings{Provider: "bard"}, "", "", ErrUnknownProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.settings)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error: got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if m.Provider() != tt.wantProvider {
				t.Errorf("provider: got %q, want %q", m.Provider(), tt.wantProvider)
			}
			if m.Name() != tt.wantName {
				t.Errorf("name: got %q, want %q", m.Name(), tt.wantName)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	info := Describe("gemini", nil)
	if info.Configured || info.Available {
		t.Errorf("nil model: got %+v, want unconfigured", info)
	}
	if info.Provider != "gemini" {
		t.Errorf("provider: got %q", info.Provider)
	}

	info = Describe("mock", &MockAdapter{})
	if !info.Configured || !info.Available || info.Name != "Mock" {
		t.Errorf("mock: got %+v", info)
	}
}
