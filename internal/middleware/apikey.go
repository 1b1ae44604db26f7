package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// DefaultPublicPaths stay reachable without a key so monitoring works.
var DefaultPublicPaths = []string{"/api/health", "/metrics"}

// APIKey requires a matching X-API-Key header on every path not listed in
// public. An empty expectedKey disables the check. With no public paths given,
// DefaultPublicPaths apply.
func APIKey(expectedKey string, public ...string) func(http.Handler) http.Handler {
	if len(public) == 0 {
		public = DefaultPublicPaths
	}
	open := make(map[string]bool, len(public))
	for _, p := range public {
		open[p] = true
	}

	return func(next http.Handler) http.Handler {
		if expectedKey == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if open[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get("X-API-Key")
			switch {
			case provided == "":
				writeJSONError(w, http.StatusUnauthorized, "missing API key")
			case subtle.ConstantTimeCompare([]byte(provided), []byte(expectedKey)) != 1:
				writeJSONError(w, http.StatusUnauthorized, "invalid API key")
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// writeJSONError answers in the same {"error": ...} shape as the handlers.
func writeJSONError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
