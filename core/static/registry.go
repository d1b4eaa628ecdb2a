package static

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/dmitrymomot/staticmount/core/handler"
	"github.com/dmitrymomot/staticmount/core/logger"
	"github.com/dmitrymomot/staticmount/core/response"
)

// Registry is an ordered list of mounts.
//
// Mounts are registered during setup and only read afterwards, so a Registry
// needs no locking as long as Register is never called while requests are served.
type Registry struct {
	mounts []*Mount
	logger *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register appends a mount serving dir under prefix.
// It fails with ErrInvalidMount if either argument is blank, an option is
// out of range, or dir is not an existing directory.
func (r *Registry) Register(prefix, dir string, opts ...MountOption) error {
	m, err := newMount(prefix, dir, opts...)
	if err != nil {
		return err
	}
	r.mounts = append(r.mounts, m)
	return nil
}

// MustRegister is like Register but panics on error. Use it at startup.
func (r *Registry) MustRegister(prefix, dir string, opts ...MountOption) {
	if err := r.Register(prefix, dir, opts...); err != nil {
		panic("static.Registry: " + err.Error())
	}
}

// Mounts returns the registered mounts in registration order.
func (r *Registry) Mounts() []MountInfo {
	infos := make([]MountInfo, 0, len(r.mounts))
	for _, m := range r.mounts {
		infos = append(infos, m.Info())
	}
	return infos
}

// Check verifies that every mount root is still an accessible directory.
// It has the signature health.Readiness expects.
func (r *Registry) Check(ctx context.Context) error {
	for _, m := range r.mounts {
		if err := ctx.Err(); err != nil {
			return err
		}
		info, err := os.Stat(m.root)
		if err != nil {
			return fmt.Errorf("mount %s: %w", m.prefix, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("mount %s: %s is no longer a directory", m.prefix, m.root)
		}
	}
	return nil
}

// Resolve finds the file for requestPath.
//
// Mounts are tried in registration order. A mount answering ErrNotFound passes
// the request on to the next matching mount; any other error stops the search
// and is returned as is.
func (r *Registry) Resolve(requestPath string) (*Target, error) {
	for _, m := range r.mounts {
		if !m.matches(requestPath) {
			continue
		}

		target, err := m.resolve(requestPath)
		if err == nil {
			return target, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}

		r.logger.Debug("static mount miss, trying next",
			logger.Component("static"),
			logger.Path(requestPath),
			logger.Mount(m.prefix, m.root),
			logger.Error(err),
		)
	}
	return nil, ErrNotFound
}

// serve resolves and writes one request.
func (r *Registry) serve(w http.ResponseWriter, req *http.Request) error {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		return ErrMethodNotAllowed
	}

	target, err := r.Resolve(req.URL.Path)
	if err != nil {
		return err
	}

	if err := serveTarget(w, req, target, ""); err != nil {
		if errors.Is(err, ErrIO) {
			r.logger.WarnContext(req.Context(), "static transfer aborted",
				logger.Component("static"),
				logger.Path(req.URL.Path),
				logger.Error(err),
			)
		}
		return err
	}
	return nil
}

// ServeHTTP lets the registry be used as a plain http.Handler.
// Failures are rendered by response.WriteError.
func (r *Registry) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	ww := handler.NewWriter(w)
	if err := r.serve(ww, req); err != nil {
		response.WriteError(ww, req, err)
	}
}

// Handler adapts the registry to the handler pipeline.
//
//	reg := static.NewRegistry()
//	reg.MustRegister("/assets", "./public/assets", static.WithMaxAge(time.Hour))
//	reg.MustRegister("/assets", "./vendor/assets")
//	h := static.Handler[*handler.BaseContext](reg)
func Handler[C handler.Context](reg *Registry) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		return func(w http.ResponseWriter, req *http.Request) error {
			return reg.serve(w, req)
		}
	}
}
