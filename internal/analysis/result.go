package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	EvaluationGood     = "Good"
	EvaluationNotIdeal = "Not Ideal"
)

// FontEvaluation is the model's verdict on one font.
type FontEvaluation struct {
	FontName       string  `json:"fontName"`
	Evaluation     string  `json:"evaluation"`
	Recommendation *string `json:"recommendation"`
	Reason         *string `json:"reason"`
}

// Report is the typed view of a Result, for callers that render it.
type Report struct {
	Purpose         string           `json:"purpose"`
	Mood            string           `json:"mood"`
	FontEvaluations []FontEvaluation `json:"fontEvaluations"`
}

// Result is the model output exactly as decoded, without any schema check.
// The HTTP endpoint relays it as-is.
type Result json.RawMessage

// MarshalJSON writes the stored document unchanged.
func (r Result) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return []byte(r), nil
}

// parseResult accepts any syntactically valid JSON document and stores it compacted.
func parseResult(text string) (Result, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(text)); err != nil {
		return nil, fmt.Errorf("model output is not valid JSON: %w", err)
	}
	return Result(buf.Bytes()), nil
}

// Report decodes the result into the expected shape. Fields the model left
// out stay zero; nothing is validated.
func (r Result) Report() (Report, error) {
	var rep Report
	if err := json.Unmarshal([]byte(r), &rep); err != nil {
		return Report{}, fmt.Errorf("decode report: %w", err)
	}
	return rep, nil
}
