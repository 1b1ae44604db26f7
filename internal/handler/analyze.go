package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/mlorentedev/fonttree/internal/analysis"
	"github.com/mlorentedev/fonttree/internal/metrics"
	"github.com/mlorentedev/fonttree/internal/middleware"
)

// Client-facing messages. Upstream detail is only ever logged.
const (
	msgMissingFullText = "The 'fullText' field is required for analysis."
	msgUnconfigured    = "Server is not configured with a valid model API key."
	msgModelFailure    = "Failed to get a valid response from the AI model."
	msgInvalidJSON     = "invalid JSON body"
	msgBodyTooLarge    = "request body too large"
)

// AnalyzeDesign serves POST /analyze-design. provider labels metrics.
func AnalyzeDesign(svc *analysis.Service, provider string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		if !svc.Configured() {
			metrics.AnalyzeFailures.WithLabelValues(string(analysis.ReasonUnconfigured)).Inc()
			writeError(w, http.StatusInternalServerError, msgUnconfigured)
			return
		}

		var req analysis.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var maxBytesErr *http.MaxBytesError
			switch {
			case errors.As(err, &maxBytesErr):
				writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			case errors.Is(err, io.EOF):
				writeError(w, http.StatusBadRequest, msgMissingFullText)
			default:
				writeError(w, http.StatusBadRequest, msgInvalidJSON)
			}
			return
		}

		metrics.InputChars.Observe(float64(inputChars(req)))
		metrics.FontsPerRequest.Observe(float64(len(req.UsedFonts)))

		start := time.Now()
		res, err := svc.Analyze(r.Context(), req)
		elapsed := time.Since(start)

		if err != nil {
			reason := analysis.ReasonOf(err)
			metrics.AnalyzeFailures.WithLabelValues(string(reason)).Inc()

			switch reason {
			case analysis.ReasonInvalidRequest:
				writeError(w, http.StatusBadRequest, msgMissingFullText)
			case analysis.ReasonUnconfigured:
				writeError(w, http.StatusInternalServerError, msgUnconfigured)
			default:
				metrics.AnalyzeDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
				slog.Error("analysis failed",
					"request_id", middleware.RequestIDFromContext(r.Context()),
					"reason", reason,
					"elapsed_ms", elapsed.Milliseconds(),
					"error", err,
				)
				writeError(w, http.StatusInternalServerError, msgModelFailure)
			}
			return
		}

		metrics.AnalyzeDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
		writeJSON(w, http.StatusOK, res)
	}
}

// inputChars counts characters, not bytes, so accented and CJK text is
// measured the way a reader would.
func inputChars(req analysis.Request) int {
	return utf8.RuneCountInString(req.FullText)
}
