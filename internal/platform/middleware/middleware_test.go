package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// run applies mw to handler and serves req through it.
func run(t *testing.T, mw echo.MiddlewareFunc, req *http.Request, handler echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, mw(handler)(c)
}

func TestRequestID_GeneratesUUID(t *testing.T) {
	var seen string
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments", nil)

	rec, err := run(t, RequestID(), req, func(c echo.Context) error {
		seen = RequestIDFromContext(c)
		return c.String(http.StatusOK, "ok")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if seen == "" {
		t.Error("expected a generated request ID in context")
	}
	if got := rec.Header().Get(RequestIDHeader); got != seen {
		t.Errorf("response header %q, want context value %q", got, seen)
	}
}

func TestRequestID_PreservesCallerID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/hospitals", nil)
	req.Header.Set(RequestIDHeader, "caller-supplied-id")

	rec, err := run(t, RequestID(), req, func(c echo.Context) error {
		if rid := RequestIDFromContext(c); rid != "caller-supplied-id" {
			t.Errorf("context request ID = %q, want caller-supplied-id", rid)
		}
		return c.String(http.StatusOK, "ok")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := rec.Header().Get(RequestIDHeader); got != "caller-supplied-id" {
		t.Errorf("response header = %q, want caller-supplied-id", got)
	}
}

func TestRequestIDFromContext_WithoutMiddleware(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	if rid := RequestIDFromContext(c); rid != "" {
		t.Errorf("expected empty request ID, got %q", rid)
	}
}

func TestLogger_EmitsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments", nil)
	chain := RequestID()(Logger(logger)(func(c echo.Context) error {
		return c.String(http.StatusCreated, "created")
	}))

	e := echo.New()
	c := e.NewContext(req, httptest.NewRecorder())
	if err := chain(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["method"] != "POST" {
		t.Errorf("method = %v, want POST", entry["method"])
	}
	if entry["path"] != "/api/v1/assessments" {
		t.Errorf("path = %v, want /api/v1/assessments", entry["path"])
	}
	if entry["status"] != float64(http.StatusCreated) {
		t.Errorf("status = %v, want 201", entry["status"])
	}
	if rid, _ := entry["request_id"].(string); rid == "" {
		t.Error("expected request_id field in log line")
	}
}

func TestLogger_ErrorLevelOnHandlerError(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/doctors", nil)
	_, err := run(t, Logger(logger), req, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "bad query")
	})
	if err == nil {
		t.Fatal("expected handler error to propagate")
	}

	var entry map[string]interface{}
	if jsonErr := json.Unmarshal(buf.Bytes(), &entry); jsonErr != nil {
		t.Fatalf("log line is not JSON: %v", jsonErr)
	}
	if entry["level"] != "error" {
		t.Errorf("level = %v, want error", entry["level"])
	}
	if _, ok := entry["error"]; !ok {
		t.Error("expected error field in log line")
	}
}

func TestRecovery_ConvertsPanicTo500(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments", nil)
	_, err := run(t, Recovery(logger), req, func(c echo.Context) error {
		panic("nil snapshot field")
	})

	if err == nil {
		t.Fatal("expected error from recovered panic")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", httpErr.Code)
	}

	var entry map[string]interface{}
	if jsonErr := json.Unmarshal(buf.Bytes(), &entry); jsonErr != nil {
		t.Fatalf("log line is not JSON: %v", jsonErr)
	}
	if entry["panic"] != "nil snapshot field" {
		t.Errorf("panic field = %v, want the panic value", entry["panic"])
	}
}

func TestRecovery_PassesThrough(t *testing.T) {
	logger := zerolog.New(&bytes.Buffer{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	rec, err := run(t, Recovery(logger), req, func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
