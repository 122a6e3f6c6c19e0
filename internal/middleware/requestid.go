// AngelaMos | 2026
// requestid.go

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

const (
	HeaderXRequestID = "X-Request-Id"

	RequestIDKey contextKey = "request_id"
	LoggerKey    contextKey = "logger"
)

// RequestID reuses a client supplied X-Request-Id or mints one, echoes it
// on the response and attaches a request scoped logger to the context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderXRequestID)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.New().String()
		}

		w.Header().Set(HeaderXRequestID, requestID)

		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		ctx = context.WithValue(
			ctx,
			LoggerKey,
			slog.Default().With(slog.String("request_id", requestID)),
		)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// LoggerFrom returns the request scoped logger, or the default logger
// outside a request.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
