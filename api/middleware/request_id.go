package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/washifyapp/driver-backend/pkg/logger"
)

const (
	requestIDHeader = "X-Request-Id"
	requestIDMaxLen = 64
)

// RequestID propagates the caller's request id, or mints one, and carries it
// on both the response header and the log context. Oversized client values
// are replaced rather than truncated.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(requestIDHeader)
			if reqID == "" || len(reqID) > requestIDMaxLen {
				reqID = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
