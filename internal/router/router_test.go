package router_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"slaved/internal/router"
)

func TestFirstMatchWins(t *testing.T) {
	rt := router.New(nil)
	mustHandle(t, rt, http.MethodGet, "/log/{level:upper}", func(w http.ResponseWriter, _ *http.Request, p router.Params) error {
		fmt.Fprintf(w, "full:%s", p.Get("level"))
		return nil
	})
	mustHandle(t, rt, http.MethodGet, "/log/{level:upper}/{lines:num}", func(w http.ResponseWriter, _ *http.Request, p router.Params) error {
		fmt.Fprintf(w, "tail:%s", p.Get("level"))
		return nil
	})

	w := httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/log/ERROR", nil))
	if w.Body.String() != "full:ERROR" {
		t.Fatalf("unexpected body: %q", w.Body.String())
	}

	w = httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/log/ERROR/10", nil))
	if w.Body.String() != "tail:ERROR" {
		t.Fatalf("unexpected body: %q", w.Body.String())
	}
}

func TestUnmatchedPathIs404(t *testing.T) {
	rt := router.New(nil)
	mustHandle(t, rt, http.MethodGet, "/", func(http.ResponseWriter, *http.Request, router.Params) error {
		return nil
	})

	w := httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nonexistent", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestMethodMismatchIs405(t *testing.T) {
	rt := router.New(nil)
	mustHandle(t, rt, http.MethodGet, "/framework/{id:num}", func(http.ResponseWriter, *http.Request, router.Params) error {
		return nil
	})

	w := httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/framework/3", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

func TestAbortSurfacesStatusAndMessage(t *testing.T) {
	rt := router.New(nil)
	mustHandle(t, rt, http.MethodGet, "/framework-logs/{fid:num}/{type:lower}", func(http.ResponseWriter, *http.Request, router.Params) error {
		return router.Abort(http.StatusForbidden, "Slave not yet registered with master")
	})

	w := httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/framework-logs/9/stdout", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "Slave not yet registered with master" {
		t.Fatalf("message must be surfaced verbatim: %q", w.Body.String())
	}
}

func TestUnknownErrorsBecomeGeneric500(t *testing.T) {
	rt := router.New(nil)
	mustHandle(t, rt, http.MethodGet, "/", func(http.ResponseWriter, *http.Request, router.Params) error {
		return errors.New("sqlite: disk I/O error at block 7")
	})

	w := httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "sqlite") {
		t.Fatalf("internal detail leaked: %q", w.Body.String())
	}
}

func TestPanicBecomes500(t *testing.T) {
	rt := router.New(nil)
	mustHandle(t, rt, http.MethodGet, "/", func(http.ResponseWriter, *http.Request, router.Params) error {
		panic("boom")
	})

	w := httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "boom") {
		t.Fatalf("panic detail leaked: %q", w.Body.String())
	}
}

func mustHandle(t *testing.T, rt *router.Router, method, pattern string, h router.HandlerFunc) {
	t.Helper()
	if err := rt.Handle(method, pattern, h); err != nil {
		t.Fatalf("Handle(%s %s): %v", method, pattern, err)
	}
}
