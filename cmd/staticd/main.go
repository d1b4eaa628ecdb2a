// Command staticd serves directories listed in a mounts file over HTTP.
//
// Configuration comes from the environment (and a .env file when present):
//
//	STATIC_MOUNTS_FILE       path to the YAML mounts file (required)
//	STATIC_SECURITY_HEADERS  send nosniff and related headers (default: true)
//	HEALTH_PATH              prefix of the /live and /ready probes, empty disables (default: /_health)
//	LOG_LEVEL                debug, info, warn or error (default: info)
//	LOG_FORMAT               text or json (default: json)
//	SERVICE_NAME             added to every log record (default: staticd)
//	SERVER_ADDR, SERVER_*    see core/server.Config
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/staticmount/core/config"
	"github.com/dmitrymomot/staticmount/core/handler"
	"github.com/dmitrymomot/staticmount/core/health"
	"github.com/dmitrymomot/staticmount/core/logger"
	"github.com/dmitrymomot/staticmount/core/response"
	"github.com/dmitrymomot/staticmount/core/server"
	"github.com/dmitrymomot/staticmount/core/static"
	"github.com/dmitrymomot/staticmount/internal/mountfile"
	"github.com/dmitrymomot/staticmount/middleware"
)

// Config is the process configuration.
type Config struct {
	Server server.Config

	ServiceName     string `env:"SERVICE_NAME" envDefault:"staticd"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string `env:"LOG_FORMAT" envDefault:"json"`
	MountsFile      string `env:"STATIC_MOUNTS_FILE,required"`
	SecurityHeaders bool   `env:"STATIC_SECURITY_HEADERS" envDefault:"true"`
	HealthPath      string `env:"HEALTH_PATH" envDefault:"/_health"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "staticd:", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	reg, err := newRegistry(cfg.MountsFile, log)
	if err != nil {
		return err
	}
	for _, m := range reg.Mounts() {
		log.Info("mount registered",
			logger.Component("static"),
			logger.Mount(m.Prefix, m.Root),
			slog.String("index", m.IndexFile),
			slog.String("dotfiles", m.Dotfiles.String()),
			slog.Bool("etag", m.ETag),
			slog.Duration("max_age", m.MaxAge),
		)
	}

	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Run(ctx, newHandler(reg, log, cfg)))
	return g.Wait()
}

func newLogger(cfg Config) (*slog.Logger, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	opts := []logger.Option{
		logger.WithLevel(level),
		logger.WithAttr(slog.String("service", cfg.ServiceName)),
	}
	switch cfg.LogFormat {
	case "json", "":
		opts = append(opts, logger.WithJSONFormatter())
	case "text":
		opts = append(opts, logger.WithTextFormatter())
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
	return logger.New(opts...), nil
}

func newRegistry(path string, log *slog.Logger) (*static.Registry, error) {
	f, err := mountfile.Load(path)
	if err != nil {
		return nil, err
	}

	reg := static.NewRegistry(static.WithLogger(log))
	if err := mountfile.Register(reg, f); err != nil {
		return nil, err
	}
	return reg, nil
}

// newHandler serves the registry on every path, except the health probes
// which take precedence over any mount.
func newHandler(reg *static.Registry, log *slog.Logger, cfg Config) http.Handler {
	errorHandler := response.WithLogging[*handler.BaseContext](log, response.ErrorHandler[*handler.BaseContext])

	middlewares := []handler.Middleware[*handler.BaseContext]{
		middleware.RequestID[*handler.BaseContext](),
		middleware.LoggingWithLogger[*handler.BaseContext](log),
	}
	if cfg.SecurityHeaders {
		middlewares = append(middlewares, middleware.SecurityHeaders[*handler.BaseContext]())
	}

	files := handler.ToHTTP(
		handler.Chain(static.Handler[*handler.BaseContext](reg), middlewares...),
		handler.NewBaseContext,
		errorHandler,
	)
	if cfg.HealthPath == "" {
		return files
	}

	base := strings.TrimSuffix(cfg.HealthPath, "/")
	live := handler.ToHTTP(health.Liveness[*handler.BaseContext], handler.NewBaseContext, errorHandler)
	ready := handler.ToHTTP(
		health.Readiness[*handler.BaseContext](log, reg.Check),
		handler.NewBaseContext,
		errorHandler,
	)

	// Matched exactly, without ServeMux path cleaning, so "../" paths reach
	// the registry unmodified.
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case base + "/live":
			live.ServeHTTP(w, r)
		case base + "/ready":
			ready.ServeHTTP(w, r)
		default:
			files.ServeHTTP(w, r)
		}
	})
}
