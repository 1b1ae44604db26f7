// Package analysis turns a design description into a prompt, runs it through
// the configured model and hands back the model's JSON verdict.
package analysis

import (
	"encoding/json"
	"errors"
	"strings"
)

const (
	DefaultDocType = "a design"
	DefaultHeading = "N/A"
)

// ErrMissingFullText is returned when fullText is absent or blank.
var ErrMissingFullText = errors.New("fullText is required")

// Request describes one design sent by the editor extension.
type Request struct {
	DocType   string   `json:"docType"`
	Heading   string   `json:"heading"`
	FullText  string   `json:"fullText"`
	UsedFonts []string `json:"usedFonts"`
}

// wireRequest keeps absent and null fields distinguishable from empty strings.
type wireRequest struct {
	DocType   *string  `json:"docType"`
	Heading   *string  `json:"heading"`
	FullText  *string  `json:"fullText"`
	UsedFonts []string `json:"usedFonts"`
}

// UnmarshalJSON applies the defaults for fields the caller left out.
func (r *Request) UnmarshalJSON(data []byte) error {
	var w wireRequest
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = Request{
		DocType:   DefaultDocType,
		Heading:   DefaultHeading,
		UsedFonts: w.UsedFonts,
	}
	if w.DocType != nil {
		r.DocType = *w.DocType
	}
	if w.Heading != nil {
		r.Heading = *w.Heading
	}
	if w.FullText != nil {
		r.FullText = *w.FullText
	}
	if r.UsedFonts == nil {
		r.UsedFonts = []string{}
	}
	return nil
}

// WithDefaults fills empty optional fields. Used by callers that build a
// Request in code rather than decoding one.
func (r Request) WithDefaults() Request {
	if r.DocType == "" {
		r.DocType = DefaultDocType
	}
	if r.Heading == "" {
		r.Heading = DefaultHeading
	}
	if r.UsedFonts == nil {
		r.UsedFonts = []string{}
	}
	return r
}

// Validate checks the only required field.
func (r Request) Validate() error {
	if strings.TrimSpace(r.FullText) == "" {
		return ErrMissingFullText
	}
	return nil
}
