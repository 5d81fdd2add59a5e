package logging

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func TestLevelFromString(t *testing.T) {
	t.Parallel()

	cases := map[string]zerolog.Level{
		"error":   zerolog.ErrorLevel,
		" WARN ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"info":    zerolog.InfoLevel,
		"trace":   zerolog.TraceLevel,
		"":        zerolog.DebugLevel,
		"verbose": zerolog.DebugLevel,
	}
	for in, want := range cases {
		if got := levelFromString(in); got != want {
			t.Fatalf("levelFromString(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestMiddlewareRequestID(t *testing.T) {
	t.Parallel()

	var seen string
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if zerolog.Ctx(r.Context()).GetLevel() == zerolog.Disabled {
			t.Error("request context has no logger")
		}
		seen = w.Header().Get(RequestIDHeader)
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if _, err := uuid.Parse(rec.Header().Get(RequestIDHeader)); err != nil {
		t.Fatalf("generated id %q: %v", rec.Header().Get(RequestIDHeader), err)
	}
	if rec.Code != http.StatusTeapot || seen == "" {
		t.Fatalf("status %d, seen %q", rec.Code, seen)
	}

	const given = "6f1c2b7e-8a55-4a5e-9d3f-2b1f0c9a7e11"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, given)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get(RequestIDHeader) != given {
		t.Fatalf("client id not kept: %q", rec.Header().Get(RequestIDHeader))
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get(RequestIDHeader) == "not-a-uuid" {
		t.Fatal("invalid client id was echoed")
	}
}
