package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/mlorentedev/fonttree/internal/adapter"
)

// Reason tags why an analysis did not produce a result.
type Reason string

const (
	ReasonUnconfigured    Reason = "unconfigured"
	ReasonInvalidRequest  Reason = "invalid_request"
	ReasonUpstream        Reason = "upstream"
	ReasonMalformedOutput Reason = "malformed_output"
)

// ErrUnconfigured is the cause of every ReasonUnconfigured failure.
var ErrUnconfigured = errors.New("model is not configured")

// Failure is the error Analyze returns. Err keeps the detail for logs;
// callers decide from Reason alone what the client may see.
type Failure struct {
	Reason Reason
	Err    error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("analysis %s: %v", f.Reason, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// ReasonOf extracts the failure reason from err, or "" if err is not a Failure.
func ReasonOf(err error) Reason {
	var f *Failure
	if errors.As(err, &f) {
		return f.Reason
	}
	return ""
}

// Service runs design analyses against one model fixed at construction.
// A nil model puts the service in the unconfigured state for its lifetime.
type Service struct {
	model adapter.Model
}

func NewService(model adapter.Model) *Service {
	return &Service{model: model}
}

// Configured reports whether a model was available at startup.
func (s *Service) Configured() bool {
	return s.model != nil
}

// Model returns the backing model, nil when unconfigured.
func (s *Service) Model() adapter.Model {
	return s.model
}

// Analyze validates req, sends the prompt to the model once and parses the
// reply. There is no retry; two identical requests may return different
// verdicts because the model is not deterministic.
func (s *Service) Analyze(ctx context.Context, req Request) (Result, error) {
	if s.model == nil {
		return nil, &Failure{Reason: ReasonUnconfigured, Err: ErrUnconfigured}
	}
	if err := req.Validate(); err != nil {
		return nil, &Failure{Reason: ReasonInvalidRequest, Err: err}
	}

	text, err := s.model.Generate(ctx, BuildPrompt(req))
	if err != nil {
		return nil, &Failure{Reason: ReasonUpstream, Err: err}
	}

	res, err := parseResult(text)
	if err != nil {
		return nil, &Failure{Reason: ReasonMalformedOutput, Err: err}
	}
	return res, nil
}
