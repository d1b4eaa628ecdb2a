package static

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/staticmount/core/handler"
)

// serveTarget writes target to w: validator and cache headers, then either 304,
// 416, or the full (200) or partial (206) body.
//
// 304 and 416 are written here because their headers belong to this protocol.
// A 416 still returns its *RangeError so callers can log it; other failures are
// returned unwritten. Once the body has started, a read error can only cut the
// transfer short, so it is returned after the status line went out.
func serveTarget(w http.ResponseWriter, r *http.Request, target *Target, disposition string) error {
	h := w.Header()

	h.Set("Cache-Control", "public, max-age="+strconv.FormatInt(int64(target.opts.maxAge/time.Second), 10))

	if target.opts.etag {
		etag := ETag(target.Size, target.ModTime)
		h.Set("ETag", etag)
		if Fresh(r.Header.Get("If-None-Match"), etag) {
			w.WriteHeader(http.StatusNotModified)
			return nil
		}
	}

	rng, partial, err := ParseRange(r.Header.Get("Range"), target.Size)
	if err != nil {
		var rangeErr *RangeError
		if errors.As(err, &rangeErr) {
			h.Set("Content-Range", rangeErr.ContentRange())
		}
		w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
		return err
	}
	if !partial {
		rng = FullRange(target.Size)
	}

	// Open before committing to a status so a file removed since the stat still gets a 404.
	f, err := openFile(target.realPath)
	if err != nil {
		h.Del("ETag")
		h.Del("Cache-Control")
		return err
	}
	defer f.Close()

	h.Set("Content-Type", ContentType(target.Path))
	h.Set("Content-Length", strconv.FormatInt(rng.Length(), 10))
	h.Set("Accept-Ranges", "bytes")
	h.Set("Last-Modified", target.ModTime.UTC().Format(http.TimeFormat))
	if disposition != "" {
		h.Set("Content-Disposition", disposition)
	}

	status := http.StatusOK
	if partial {
		h.Set("Content-Range", rng.ContentRange(target.Size))
		status = http.StatusPartialContent
	}
	w.WriteHeader(status)

	if r.Method == http.MethodHead {
		return nil
	}
	return copyRange(r.Context(), w, f, rng)
}

// SendFile serves a single file through the same pipeline as a mount, without
// mount matching. Directories resolve to their index file and the dotfile policy
// applies to the final file name.
// Failures are returned as errors: ErrNotFound, ErrForbidden, *RangeError or ErrIO.
func SendFile(path string, opts ...MountOption) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		target, err := resolveFile(path, opts)
		if err != nil {
			return err
		}
		return serveTarget(w, r, target, "")
	}
}

// Download is like SendFile but forces the browser to save the file.
// If filename is empty, the base name of the served file is used.
func Download(path, filename string, opts ...MountOption) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		target, err := resolveFile(path, opts)
		if err != nil {
			return err
		}

		name := filename
		if name == "" {
			name = filepath.Base(target.Path)
		}
		return serveTarget(w, r, target, attachment(name))
	}
}

func resolveFile(path string, opts []MountOption) (*Target, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty path", ErrNotFound)
	}

	o := defaultMountOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return resolveTarget("", abs, o)
}
