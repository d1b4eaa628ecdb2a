package static

import (
	"log/slog"
	"time"
)

// mountOptions holds per-mount serving behavior.
type mountOptions struct {
	indexFile string
	dotfiles  DotfilePolicy
	etag      bool
	maxAge    time.Duration
}

func defaultMountOptions() mountOptions {
	return mountOptions{
		indexFile: "index.html",
		dotfiles:  DotfilesIgnore,
		etag:      true,
	}
}

// MountOption configures a mount, or a single SendFile/Download response.
type MountOption func(*mountOptions)

// WithIndexFile sets the file served for directory requests (default: "index.html").
// An empty name disables index resolution, so directories always answer 404.
func WithIndexFile(name string) MountOption {
	return func(o *mountOptions) {
		o.indexFile = name
	}
}

// WithDotfiles sets the dotfile policy (default: DotfilesIgnore).
func WithDotfiles(policy DotfilePolicy) MountOption {
	return func(o *mountOptions) {
		o.dotfiles = policy
	}
}

// WithETag toggles ETag generation and If-None-Match evaluation (default: enabled).
func WithETag(enabled bool) MountOption {
	return func(o *mountOptions) {
		o.etag = enabled
	}
}

// WithMaxAge sets the Cache-Control max-age, truncated to whole seconds (default: 0).
// Negative durations are rejected at registration.
func WithMaxAge(d time.Duration) MountOption {
	return func(o *mountOptions) {
		o.maxAge = d
	}
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for mount fall-through and aborted transfers.
// The default logger discards everything.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}
