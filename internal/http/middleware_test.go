package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = getRequestID(r.Context())
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/", nil)

	RequestIDMiddleware(next).ServeHTTP(recorder, request)

	if seen == "" {
		t.Error("Expected a generated request ID in the context")
	}
	if got := recorder.Header().Get("X-Request-ID"); got != seen {
		t.Errorf("Expected header to carry '%s', got '%s'", seen, got)
	}
}

func TestRequestIDMiddleware_ReusesClientID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = getRequestID(r.Context())
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/", nil)
	request.Header.Set("X-Request-ID", "client-supplied-id")

	RequestIDMiddleware(next).ServeHTTP(recorder, request)

	if seen != "client-supplied-id" {
		t.Errorf("Expected 'client-supplied-id', got '%s'", seen)
	}
	if got := recorder.Header().Get("X-Request-ID"); got != "client-supplied-id" {
		t.Errorf("Expected header 'client-supplied-id', got '%s'", got)
	}
}
