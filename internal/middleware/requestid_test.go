package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRequestIDGenerated(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/ping", func(c echo.Context) error {
		if RequestIDFromContext(c) == "" {
			t.Fatal("request id missing from context")
		}
		return c.String(http.StatusOK, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	resp := httptest.NewRecorder()
	e.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID header on response")
	}
}

func TestRequestIDHonorsIncoming(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "  upstream-id-42  ")
	resp := httptest.NewRecorder()
	e.ServeHTTP(resp, req)

	if got := resp.Header().Get("X-Request-ID"); got != "upstream-id-42" {
		t.Fatalf("expected trimmed upstream id, got %q", got)
	}
}

func TestNormalizeRequestIDTruncates(t *testing.T) {
	long := strings.Repeat("a", 300)
	if got := normalizeRequestID(long); len(got) != 128 {
		t.Fatalf("expected 128 chars, got %d", len(got))
	}
}
