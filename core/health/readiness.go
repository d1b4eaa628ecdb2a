package health

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/staticmount/core/handler"
	"github.com/dmitrymomot/staticmount/core/logger"
	"github.com/dmitrymomot/staticmount/core/response"
)

// Readiness runs every check and returns "READY", or 503 Service Unavailable
// on the first failure.
//
//	health.Readiness[*handler.BaseContext](log, reg.Check)
func Readiness[C handler.Context](log *slog.Logger, checks ...func(context.Context) error) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		for _, check := range checks {
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", logger.Component("health"), logger.Error(err))
				return response.Error(response.ErrServiceUnavailable)
			}
		}
		return response.String("READY")
	}
}
