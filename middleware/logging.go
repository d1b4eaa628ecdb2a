package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/staticmount/core/handler"
	"github.com/dmitrymomot/staticmount/core/logger"
	"github.com/dmitrymomot/staticmount/core/response"
)

// LoggingConfig configures the access log middleware.
type LoggingConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool

	// Logger is the slog logger to use (default: slog.Default())
	Logger *slog.Logger

	// LogLevel for successful requests (default: slog.LevelInfo)
	LogLevel slog.Level

	// SlowRequestThreshold logs slow requests at warning level (default: 5s).
	// Downloads of large files routinely exceed it; raise it for such mounts.
	SlowRequestThreshold time.Duration

	// Component name for structured logging (default: "http")
	Component string
}

// Logging logs one record per completed request with default configuration.
func Logging[C handler.Context]() handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{})
}

// LoggingWithLogger is Logging writing to log.
func LoggingWithLogger[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{Logger: log})
}

// LoggingWithConfig logs method, path, status, bytes sent and duration of every request.
//
// 5xx responses are logged at error level, 4xx at warn. When the handler
// returned an error before writing anything, the logged status is the one the
// error handler is going to render for it.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.LogLevel == 0 {
		cfg.LogLevel = slog.LevelInfo
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			requestID, _ := GetRequestID(ctx)
			resp := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				ww := handler.NewWriter(w)

				var err error
				if resp == nil {
					err = handler.ErrNilResponse
				} else {
					err = resp(ww, r)
				}

				duration := time.Since(start)
				status := ww.Status()
				if !ww.Written() {
					status = response.StatusCode(err)
				}

				attrs := []slog.Attr{
					logger.Component(cfg.Component),
					logger.Event("request"),
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.StatusCode(status),
					logger.BytesOut(ww.Size()),
					logger.Duration(duration),
					logger.RemoteAddr(r.RemoteAddr),
					logger.RequestID(requestID),
				}
				if rng := r.Header.Get("Range"); rng != "" {
					attrs = append(attrs, slog.String("range", rng))
				}

				level := cfg.LogLevel
				switch {
				case status >= http.StatusInternalServerError:
					level = slog.LevelError
					attrs = append(attrs, logger.Error(err))
				case status >= http.StatusBadRequest:
					level = slog.LevelWarn
				case duration > cfg.SlowRequestThreshold:
					level = slog.LevelWarn
					attrs = append(attrs, slog.Bool("slow_request", true))
				}

				cfg.Logger.LogAttrs(r.Context(), level, "HTTP request completed", attrs...)
				return err
			}
		}
	}
}
