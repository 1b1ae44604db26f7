package adapter

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// MockFlashSaleResponse is the canned verdict the mock returns by default.
const MockFlashSaleResponse = `{"purpose":"Promoting a flash sale","mood":"Urgent","fontEvaluations":[{"fontName":"Comic Sans","evaluation":"Not Ideal","recommendation":"Oswald","reason":"Too playful for urgency"},{"fontName":"Arial","evaluation":"Good","recommendation":null,"reason":null}]}`

// MockAdapter returns a fixed response with a configurable delay.
// Used for development and tests without a real model backend.
type MockAdapter struct {
	Delay    time.Duration
	Response string
	Err      error

	calls      atomic.Int64
	lastPrompt atomic.Value
}

func (m *MockAdapter) Name() string { return "Mock" }

func (m *MockAdapter) Provider() string { return ProviderMock }

func (m *MockAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	m.calls.Add(1)
	m.lastPrompt.Store(prompt)

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", fmt.Errorf("mock: %w", ctx.Err())
		}
	}

	if m.Err != nil {
		return "", m.Err
	}
	if m.Response == "" {
		return MockFlashSaleResponse, nil
	}
	return strings.TrimSpace(m.Response), nil
}

func (m *MockAdapter) Available() bool { return true }

// Calls reports how many times Generate ran.
func (m *MockAdapter) Calls() int64 { return m.calls.Load() }

// LastPrompt returns the most recent prompt passed to Generate.
func (m *MockAdapter) LastPrompt() string {
	p, _ := m.lastPrompt.Load().(string)
	return p
}
