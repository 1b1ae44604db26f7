package middleware

import (
	"net/http"
	"time"

	"github.com/mlorentedev/fonttree/internal/ratelimit"
)

// Options configures the middleware stack.
type Options struct {
	Limiter      ratelimit.Limiter
	APIKey       string
	MaxBodyBytes int64
	Timeout      time.Duration
}

// Chain wraps the handler with the full middleware stack.
// Order: CORS → RequestID → Logging → Metrics → RateLimit → APIKey → MaxBytes → Timeout → router
func Chain(handler http.Handler, opts Options) http.Handler {
	h := handler
	if opts.Timeout > 0 {
		h = http.TimeoutHandler(h, opts.Timeout, `{"error":"request timeout"}`)
	}
	if opts.MaxBodyBytes > 0 {
		h = MaxBytes(opts.MaxBodyBytes)(h)
	}
	h = APIKey(opts.APIKey)(h)
	if opts.Limiter != nil {
		h = RateLimit(opts.Limiter)(h)
	}
	h = Metrics(h)
	h = Logging(h)
	h = RequestID(h)
	h = CORS(h)
	return h
}
