package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/staticmount/core/handler"
	"github.com/dmitrymomot/staticmount/core/logger"
)

// statusCode is implemented by errors that know their HTTP status.
type statusCode interface {
	StatusCode() int
}

// written is implemented by writers that track whether the response started.
type written interface {
	Written() bool
}

// Error returns a handler response that propagates the given error.
func Error(err error) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return err
	}
}

// StatusCode returns the HTTP status carried by err, 500 if none, 200 for nil.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var sc statusCode
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}

// convertToHTTPError maps any error to a public HTTPError.
// The original message is not exposed, since it may contain filesystem paths.
func convertToHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := StatusCode(err)
	if base, ok := httpErrorsByStatus[status]; ok {
		return base
	}
	return HTTPError{
		Status:  status,
		Code:    "error",
		Message: http.StatusText(status),
	}
}

// WriteError renders err as a plain text response.
// It does nothing once the response has started: a status line already on the
// wire cannot be replaced, and the client sees a truncated body instead.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if ww, ok := w.(written); ok && ww.Written() {
		return
	}
	httpErr := convertToHTTPError(err)
	http.Error(w, httpErr.Message, httpErr.Status)
}

// WriteJSONError renders err as a JSON object with code and message fields.
func WriteJSONError(w http.ResponseWriter, r *http.Request, err error) {
	if ww, ok := w.(written); ok && ww.Written() {
		return
	}
	httpErr := convertToHTTPError(err)

	h := w.Header()
	h.Del("Content-Length")
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(httpErr.Status)
	_ = json.NewEncoder(w).Encode(httpErr)
}

// ErrorHandler returns plain text errors.
func ErrorHandler[C handler.Context](ctx C, err error) {
	WriteError(ctx.ResponseWriter(), ctx.Request(), err)
}

// JSONErrorHandler returns errors as JSON responses.
func JSONErrorHandler[C handler.Context](ctx C, err error) {
	WriteJSONError(ctx.ResponseWriter(), ctx.Request(), err)
}

// WithLogging logs server-side failures (5xx) before delegating to next.
// Client errors are left to the request logging middleware.
func WithLogging[C handler.Context](log *slog.Logger, next handler.ErrorHandler[C]) handler.ErrorHandler[C] {
	return func(ctx C, err error) {
		if status := StatusCode(err); status >= http.StatusInternalServerError {
			req := ctx.Request()
			log.ErrorContext(ctx, "request failed",
				logger.Component("http"),
				logger.Method(req.Method),
				logger.Path(req.URL.Path),
				logger.StatusCode(status),
				logger.Error(err),
			)
		}
		next(ctx, err)
	}
}
