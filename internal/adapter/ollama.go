package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JexSrs/go-ollama"
)

const ollamaDefaultBaseURL = "http://localhost:11434"

const ollamaJSONSystem = "You answer with a single JSON object and nothing else."

// OllamaAdapter talks to a local Ollama instance through go-ollama's Generate call.
type OllamaAdapter struct {
	BaseURL string
	Model   string
	Client  *http.Client
	// Timeout bounds one Generate call, both the wait and the upstream request.
	Timeout time.Duration

	api *ollama.Ollama
}

// NewOllamaAdapter parses baseURL and prepares the go-ollama client.
func NewOllamaAdapter(baseURL, model string, timeout time.Duration) (*OllamaAdapter, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("ollama: invalid base URL %q: %w", baseURL, err)
	}
	api := ollama.New(*u)
	api.Http = &http.Client{Timeout: timeout}
	return &OllamaAdapter{
		BaseURL: baseURL,
		Model:   model,
		Client:  &http.Client{Timeout: timeout},
		Timeout: timeout,
		api:     api,
	}, nil
}

type ollamaResult struct {
	text string
	err  error
}

func (o *OllamaAdapter) Name() string {
	return fmt.Sprintf("Ollama (%s)", o.Model)
}

func (o *OllamaAdapter) Provider() string { return ProviderOllama }

// Generate runs the blocking go-ollama call in its own goroutine so ctx and
// Timeout still release the caller. go-ollama takes no context, so the
// upstream request is bounded by the client timeout set in NewOllamaAdapter.
// The buffered channel lets the goroutine exit after an abandoned call.
func (o *OllamaAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	if o.api == nil {
		return "", fmt.Errorf("ollama: client not initialised")
	}
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}

	done := make(chan ollamaResult, 1)
	go func() {
		res, err := o.api.Generate(
			o.api.Generate.WithModel(o.Model),
			o.api.Generate.WithSystem(ollamaJSONSystem),
			o.api.Generate.WithPrompt(prompt),
		)
		if err != nil {
			done <- ollamaResult{err: fmt.Errorf("ollama: generate: %w", err)}
			return
		}
		if !res.Done {
			done <- ollamaResult{err: fmt.Errorf("ollama: generation did not complete")}
			return
		}
		done <- ollamaResult{text: strings.TrimSpace(res.Response)}
	}()

	select {
	case r := <-done:
		return r.text, r.err
	case <-ctx.Done():
		return "", fmt.Errorf("ollama: %w", ctx.Err())
	}
}

func (o *OllamaAdapter) Available() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(o.BaseURL, "/")+"/", nil)
	if err != nil {
		return false
	}

	resp, err := o.Client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
