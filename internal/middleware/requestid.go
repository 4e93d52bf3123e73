package middleware

import (
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	requestIDContextKey = "request_id"
	requestIDHeaderName = "X-Request-ID"
)

// RequestIDFromContext returns the request ID or an empty string when
// unavailable.
func RequestIDFromContext(c echo.Context) string {
	v := c.Get(requestIDContextKey)
	id, _ := v.(string)
	return id
}

// RequestID injects a request ID into context and response headers and logs
// every request with the ID, method, path, status and latency. An incoming
// X-Request-ID is honored so IDs survive proxies; otherwise a fresh UUID is
// generated.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			startedAt := time.Now()
			requestID := normalizeRequestID(c.Request().Header.Get(requestIDHeaderName))
			if requestID == "" {
				requestID = uuid.NewString()
			}

			c.Set(requestIDContextKey, requestID)
			c.Response().Header().Set(requestIDHeaderName, requestID)

			err := next(c)

			log.Printf(
				"request_id=%s method=%s path=%s status=%d latency_ms=%.2f client_ip=%s",
				requestID,
				c.Request().Method,
				c.Path(),
				c.Response().Status,
				float64(time.Since(startedAt).Microseconds())/1000.0,
				c.RealIP(),
			)
			return err
		}
	}
}

func normalizeRequestID(raw string) string {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return ""
	}
	if len(candidate) > 128 {
		candidate = candidate[:128]
	}
	return candidate
}
