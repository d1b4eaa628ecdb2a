// Package handler provides the request-processing types shared by the static
// file server: a generic Context, handlers that return a deferred Response,
// composable middleware, and an adapter to net/http.
//
// A HandlerFunc inspects the request and returns a Response; the Response does
// the writing and reports failures as errors. Errors are passed to an
// ErrorHandler, which decides whether anything can still be written:
//
//	h := handler.Chain(
//		static.Handler[*handler.BaseContext](registry),
//		middleware.RequestID[*handler.BaseContext](),
//		middleware.LoggingWithLogger[*handler.BaseContext](log),
//	)
//
//	srv := handler.ToHTTP(h, handler.NewBaseContext, response.ErrorHandler[*handler.BaseContext])
//
// ToHTTP wraps the http.ResponseWriter in a *Writer so error handlers can check
// Written() and avoid emitting a second status line after a body has started.
package handler
