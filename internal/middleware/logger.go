package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger logs every request once it completes and recovers from
// panics raised by handlers.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		rid := requestID(c)
		c.Writer.Header().Set(requestIDHeader, rid)

		defer func() {
			if recovered := recover(); recovered != nil {
				logger.ErrorContext(c.Request.Context(), "panic",
					append(requestAttrs(c, start, rid),
						"error", fmt.Sprintf("%v", recovered),
						"stack", string(debug.Stack()),
					)...,
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
				return
			}

			attrs := requestAttrs(c, start, rid)
			for _, err := range c.Errors {
				attrs = append(attrs, "error", err.Error())
			}
			switch status := c.Writer.Status(); {
			case status >= http.StatusInternalServerError:
				logger.ErrorContext(c.Request.Context(), "request", attrs...)
			case status >= http.StatusBadRequest:
				logger.WarnContext(c.Request.Context(), "request", attrs...)
			default:
				logger.InfoContext(c.Request.Context(), "request", attrs...)
			}
		}()

		c.Next()
	}
}

func requestAttrs(c *gin.Context, start time.Time, rid string) []any {
	return []any{
		"status", c.Writer.Status(),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"query", c.Request.URL.RawQuery,
		"client_ip", c.ClientIP(),
		"user_id", c.GetInt64("user_id"),
		"request_id", rid,
		"latency", time.Since(start),
	}
}

func requestID(c *gin.Context) string {
	if id := c.GetHeader(requestIDHeader); id != "" {
		return id
	}
	return uuid.NewString()
}
