package handler

import (
	"errors"
	"net/http"
)

// Response is a function that renders HTTP responses.
// It sets headers, status code, and writes the response body.
// Rendering errors are handled by the ErrorHandler given to ToHTTP.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc is a type-safe HTTP request handler with custom context support.
type HandlerFunc[C Context] func(ctx C) Response

// ErrorHandler handles errors during request processing.
type ErrorHandler[C Context] func(ctx C, err error)

// Middleware wraps handlers to add cross-cutting functionality.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]

// Chain wraps h in middlewares so that the first middleware runs first.
func Chain[C Context](h HandlerFunc[C], middlewares ...Middleware[C]) HandlerFunc[C] {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// ToHTTP converts h into an http.Handler.
//
// newContext builds the per-request context around a writer that tracks whether
// the response was started, so errorHandler can tell if it may still write.
// A nil errorHandler falls back to a plain-text status response.
func ToHTTP[C Context](h HandlerFunc[C], newContext func(w http.ResponseWriter, r *http.Request) C, errorHandler ErrorHandler[C]) http.Handler {
	if errorHandler == nil {
		errorHandler = fallbackErrorHandler[C]
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := NewWriter(w)
		ctx := newContext(ww, r)

		response := h(ctx)
		if response == nil {
			errorHandler(ctx, ErrNilResponse)
			return
		}

		if err := response(ww, r); err != nil {
			errorHandler(ctx, err)
		}
	})
}

// fallbackErrorHandler writes the status carried by err, or 500.
func fallbackErrorHandler[C Context](ctx C, err error) {
	w := ctx.ResponseWriter()
	if ww, ok := w.(*Writer); ok && ww.Written() {
		return
	}

	status := http.StatusInternalServerError
	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}
	http.Error(w, http.StatusText(status), status)
}
