package httpkit

import (
	"net/http"
	"time"

	"tsdash/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack from CORE_API_* settings
type StackOptions struct {
	Timeout     time.Duration
	CORSOrigins []string
	SlowRequest time.Duration
}

// CommonStack is the middleware every /api/v1 route runs behind
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	mw := middleware.Defaults(o.Timeout)
	mw = append(mw, middleware.AccessLog(middleware.AccessLogOptions{Slow: o.SlowRequest, Skip: []string{"/api/v1/health", "/api/v1/ready"}}))
	if len(o.CORSOrigins) > 0 {
		mw = append(mw, middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins, MaxAge: 300}))
	}
	return mw
}

// Throttle is per module backpressure for expensive routes, pass it to modkit.WithMiddlewares
func Throttle(limit, backlog int, wait time.Duration) func(http.Handler) http.Handler {
	return middleware.Throttle(limit, backlog, wait)
}
