package router

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"slaved/internal/logging"
)

// HandlerFunc handles a matched request. A returned *HTTPError is written
// verbatim; any other error, and any panic, becomes a generic 500 so handler
// internals never leak to clients.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, params Params) error

// HTTPError carries a deliberate status code and message for the client.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

// Abort builds an HTTPError for a handler to return.
func Abort(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

type route struct {
	method  string
	pattern *Pattern
	handler HandlerFunc
}

// Router dispatches requests over an ordered route table. Routes are
// registered at startup and matched first-to-last; the table is immutable
// once serving begins.
type Router struct {
	routes []route
	logger *slog.Logger
}

// New returns an empty router. A nil logger is replaced with a no-op one.
func New(logger *slog.Logger) *Router {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Router{logger: logger}
}

// Handle compiles pattern and appends a route. Registration order is match
// order.
func (rt *Router) Handle(method, pattern string, handler HandlerFunc) error {
	if handler == nil {
		return fmt.Errorf("route %s %s has no handler", method, pattern)
	}
	compiled, err := Compile(pattern)
	if err != nil {
		return err
	}
	rt.routes = append(rt.routes, route{method: method, pattern: compiled, handler: handler})
	return nil
}

// ServeHTTP resolves the first structurally matching route. Unmatched paths
// get 404; a path that matches only under other methods gets 405.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	pathMatched := false
	for _, route := range rt.routes {
		params, ok := route.pattern.Match(r.URL.Path)
		if !ok {
			continue
		}
		if route.method != r.Method {
			pathMatched = true
			continue
		}
		rt.dispatch(w, r, route, params)
		return
	}

	if pathMatched {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	http.Error(w, "not found", http.StatusNotFound)
}

func (rt *Router) dispatch(w http.ResponseWriter, r *http.Request, route route, params Params) {
	defer func() {
		if rec := recover(); rec != nil {
			rt.logger.Error("handler panic",
				logging.String("path", r.URL.Path),
				logging.Any("panic", rec))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}()

	err := route.handler(w, r, params)
	if err == nil {
		return
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		http.Error(w, httpErr.Message, httpErr.Status)
		return
	}

	rt.logger.Error("handler error",
		logging.String("path", r.URL.Path),
		logging.String("pattern", route.pattern.String()),
		logging.Error(err))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
