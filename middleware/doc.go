// Package middleware provides handler.Middleware for request IDs, access
// logging and browser security headers.
//
// All middleware is generic over the handler.Context type and follows the same
// shape: a default constructor plus a WithConfig variant taking a config struct
// with an optional Skip func.
//
//	h := handler.Chain(
//		static.Handler[*handler.BaseContext](reg),
//		middleware.RequestID[*handler.BaseContext](),
//		middleware.LoggingWithLogger[*handler.BaseContext](log),
//		middleware.SecurityHeaders[*handler.BaseContext](),
//	)
//
// RequestID must run before Logging for the ID to appear in access log records.
package middleware
