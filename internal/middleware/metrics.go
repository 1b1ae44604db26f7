package middleware

import (
	"net/http"
	"strconv"

	"github.com/mlorentedev/fonttree/internal/metrics"
)

// metricPaths are the routes recorded under their own label. Anything else is
// folded into "other" to keep label cardinality bounded.
var metricPaths = map[string]bool{
	"/analyze-design": true,
	"/api/health":     true,
	"/metrics":        true,
}

func metricPath(p string) string {
	if metricPaths[p] {
		return p
	}
	return "other"
}

// Metrics records request count by method, path, and status code.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		metrics.RequestsTotal.WithLabelValues(r.Method, metricPath(r.URL.Path), strconv.Itoa(sw.status)).Inc()
	})
}
