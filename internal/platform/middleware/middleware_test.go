package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/HaadiMalik/Newark-Medical-Associates/internal/platform/auth"
)

// newAPIEcho wires Recovery, RequestID, and Logger in the order the server
// uses them and registers a few representative clinical routes.
func newAPIEcho(buf *bytes.Buffer) *echo.Echo {
	logger := zerolog.New(buf)
	e := echo.New()
	e.Use(Recovery(logger))
	e.Use(RequestID())
	e.Use(Logger(logger))

	e.GET("/api/v1/admissions/:id", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"id": c.Param("id")})
	})
	e.GET("/api/v1/rooms", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
	})
	e.GET("/api/v1/surgeries", func(c echo.Context) error {
		panic("nil schedule")
	})
	return e
}

func lastLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v\n%s", err, buf.String())
	}
	return entry
}

func TestLogger_LogsRoutePatternNotPatientID(t *testing.T) {
	var buf bytes.Buffer
	e := newAPIEcho(&buf)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admissions/9b2e4c1d", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	entry := lastLogLine(t, &buf)
	if entry["route"] != "/api/v1/admissions/:id" {
		t.Errorf("expected the matched route pattern, got %v", entry["route"])
	}
	if strings.Contains(buf.String(), "9b2e4c1d") {
		t.Error("request log must not contain the record identifier")
	}
	if entry["status"] != float64(http.StatusOK) {
		t.Errorf("expected status 200 in log, got %v", entry["status"])
	}
}

func TestLogger_RequestIDMatchesResponseHeader(t *testing.T) {
	var buf bytes.Buffer
	e := newAPIEcho(&buf)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admissions/1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	rid := rec.Header().Get(RequestIDHeader)
	if rid == "" {
		t.Fatal("expected a generated X-Request-ID on the response")
	}
	entry := lastLogLine(t, &buf)
	if entry["request_id"] != rid {
		t.Errorf("log carries request_id %v, response header %s", entry["request_id"], rid)
	}
}

func TestLogger_ClientSuppliedRequestIDPreserved(t *testing.T) {
	var buf bytes.Buffer
	e := newAPIEcho(&buf)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admissions/1", nil)
	req.Header.Set(RequestIDHeader, "ward-sync-42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "ward-sync-42" {
		t.Errorf("expected the caller's request id to round-trip, got %s", got)
	}
	entry := lastLogLine(t, &buf)
	if entry["request_id"] != "ward-sync-42" {
		t.Errorf("expected ward-sync-42 in the log, got %v", entry["request_id"])
	}
}

func TestLogger_WarnsOnClientError(t *testing.T) {
	var buf bytes.Buffer
	e := newAPIEcho(&buf)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	entry := lastLogLine(t, &buf)
	if entry["level"] != "warn" {
		t.Errorf("expected a warn-level entry for a 4xx, got %v", entry["level"])
	}
	if entry["status"] != float64(http.StatusForbidden) {
		t.Errorf("expected status 403 in log, got %v", entry["status"])
	}
}

func TestLogger_IncludesAuthenticatedUser(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	e := echo.New()
	e.Use(RequestID())
	// Stand-in for the JWT middleware, which stores the subject the same way.
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := context.WithValue(c.Request().Context(), auth.UserIDKey, "staff-207")
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})
	e.Use(Logger(logger))
	e.GET("/api/v1/shifts", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shifts", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	entry := lastLogLine(t, &buf)
	if entry["user_id"] != "staff-207" {
		t.Errorf("expected user_id staff-207 in the request log, got %v", entry["user_id"])
	}
}

func TestRecovery_PanicBecomes500(t *testing.T) {
	var buf bytes.Buffer
	e := newAPIEcho(&buf)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/surgeries", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(buf.String(), "handler panicked") {
		t.Error("expected the panic to be logged")
	}
	if !strings.Contains(buf.String(), "nil schedule") {
		t.Error("expected the panic value in the log")
	}
	if !strings.Contains(rec.Body.String(), "internal server error") {
		t.Error("expected a generic error body, not the panic detail")
	}
}

func TestRecovery_HealthyRequestUntouched(t *testing.T) {
	var buf bytes.Buffer
	e := newAPIEcho(&buf)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admissions/1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(buf.String(), "handler panicked") {
		t.Error("recovery must not fire on a healthy request")
	}
}

func TestRecovery_RethrowsAbortHandler(t *testing.T) {
	logger := zerolog.New(bytes.NewBuffer(nil))
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Recovery(logger)(func(c echo.Context) error {
		panic(http.ErrAbortHandler)
	})

	defer func() {
		if r := recover(); r != http.ErrAbortHandler {
			t.Errorf("expected http.ErrAbortHandler to propagate, got %v", r)
		}
	}()
	_ = h(c)
	t.Error("expected the panic to propagate")
}
