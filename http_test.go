package main

import (
	"net/http/httptest"
	"testing"

	"github.com/Philberto99/philbot/providers"
	"github.com/Philberto99/philbot/session"
)

func TestHandleRootThrottlesCurlQueries(t *testing.T) {
	router := NewRouter(nil, nil, nil, nil, session.NewLog())
	shell := NewHTTPShell(router, providers.NewSearchClient("", ""))

	// Distinct address so the per-IP limiter state is this test's own.
	const addr = "203.0.113.7:40000"

	limited := false
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest("GET", "/?q=anything", nil)
		req.RemoteAddr = addr
		req.Header.Set("User-Agent", "curl/8.5.0")
		rec := httptest.NewRecorder()

		shell.handleRoot(rec, req)

		if rec.Code == 429 {
			limited = true
			break
		}
		if rec.Code != 200 {
			t.Fatalf("request %d: unexpected status %d", i, rec.Code)
		}
	}
	if !limited {
		t.Errorf("GET query path was never rate limited")
	}
}

func TestHandleRootThrottlesSubmits(t *testing.T) {
	router := NewRouter(nil, nil, nil, nil, session.NewLog())
	shell := NewHTTPShell(router, providers.NewSearchClient("", ""))

	const addr = "203.0.113.8:40000"

	limited := false
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest("POST", "/", nil)
		req.RemoteAddr = addr
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()

		shell.handleRoot(rec, req)

		if rec.Code == 429 {
			limited = true
			break
		}
	}
	if !limited {
		t.Errorf("POST path was never rate limited")
	}
}
