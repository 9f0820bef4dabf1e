package logger

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// CorrelationMiddleware reuses the caller's correlation ID or mints one, so a
// POS checkout and the gateway failure it logs share the same ID.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ContextWithCorrelationID(c.Request.Context(), c.GetHeader(CorrelationHeader))
		c.Request = c.Request.WithContext(ctx)
		c.Header(CorrelationHeader, CorrelationID(ctx))

		c.Next()
	}
}

// RequestLogger writes one record per request. Bodies are not logged: payment
// requests carry customer emails.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		slog.Log(c.Request.Context(), level, "HTTP Request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", status,
			"latency", time.Since(start),
		)
	}
}
