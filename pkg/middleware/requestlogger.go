package middleware

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/carmitra/carmitra/pkg/logger"
)

// RequestLogger builds a request-scoped logger enriched with correlation_id,
// client_ip, trace_id and span_id and stores it in the request context, where
// handlers and httputil.WriteError pick it up via logger.FromContext.
//
// Mount it after RequestLogging (correlation id) and Tracing (span context).
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if ip := clientIP(r); ip != "" {
				ctx = logger.WithClientIP(ctx, ip)
			}
			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// clientIP returns the host part of RemoteAddr. chi's RealIP middleware, when
// mounted earlier, has already rewritten RemoteAddr from forwarding headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
