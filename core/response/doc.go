// Package response renders request failures. It is the error-to-response layer
// that sits outside the static file pipeline: handlers return typed errors, and
// the functions here translate them into HTTP status codes and bodies.
//
// Any error implementing
//
//	interface{ StatusCode() int }
//
// anywhere in its wrap chain keeps its status; everything else becomes 500.
// Messages are taken from the public HTTPError table, never from the error
// itself, so filesystem paths inside wrapped errors do not leak to clients.
//
// Use ErrorHandler or JSONErrorHandler with handler.ToHTTP, optionally wrapped
// in WithLogging to record 5xx failures:
//
//	eh := response.WithLogging(log, response.ErrorHandler[*handler.BaseContext])
//	http.Handle("/", handler.ToHTTP(h, handler.NewBaseContext, eh))
package response
