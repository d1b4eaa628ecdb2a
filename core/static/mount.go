package static

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

// Mount associates a URL prefix with a directory. It is immutable once registered.
type Mount struct {
	prefix string
	root   string // absolute, cleaned, symlinks resolved
	opts   mountOptions
}

// MountInfo describes a registered mount.
type MountInfo struct {
	Prefix    string
	Root      string
	IndexFile string
	Dotfiles  DotfilePolicy
	ETag      bool
	MaxAge    time.Duration
}

// Target is a file resolved for a single request. It is never cached.
type Target struct {
	// Path is the absolute path the request named, inside the mount root.
	Path string
	// Size and ModTime come from the stat taken during resolution.
	Size    int64
	ModTime time.Time

	realPath string // Path with symlinks resolved; what gets opened
	opts     mountOptions
}

func newMount(prefix, dir string, opts ...MountOption) (*Mount, error) {
	if strings.TrimSpace(prefix) == "" {
		return nil, fmt.Errorf("%w: url prefix is required", ErrInvalidMount)
	}
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("%w: directory is required", ErrInvalidMount)
	}

	o := defaultMountOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	root, err := canonicalRoot(dir)
	if err != nil {
		return nil, err
	}

	return &Mount{prefix: prefix, root: root, opts: o}, nil
}

func (o mountOptions) validate() error {
	if o.maxAge < 0 {
		return fmt.Errorf("%w: max age must not be negative", ErrInvalidMount)
	}
	if !o.dotfiles.valid() {
		return fmt.Errorf("%w: unknown dotfile policy %d", ErrInvalidMount, int(o.dotfiles))
	}
	if strings.ContainsAny(o.indexFile, `/\`) {
		return fmt.Errorf("%w: index file must be a plain file name", ErrInvalidMount)
	}
	return nil
}

// canonicalRoot resolves dir once, at registration, to an absolute symlink-free directory.
func canonicalRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidMount, err)
	}

	root, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: directory does not exist: %s", ErrInvalidMount, abs)
		}
		return "", fmt.Errorf("%w: error accessing directory: %w", ErrInvalidMount, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("%w: error accessing directory: %w", ErrInvalidMount, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: path is not a directory: %s", ErrInvalidMount, abs)
	}

	return root, nil
}

// matches reports whether requestPath falls under this mount.
// The check is a plain byte prefix: "/static" also matches "/static-foo".
func (m *Mount) matches(requestPath string) bool {
	return strings.HasPrefix(requestPath, m.prefix)
}

// resolvePath maps requestPath to an absolute path inside the root.
func (m *Mount) resolvePath(requestPath string) (string, error) {
	rel := strings.TrimPrefix(requestPath, m.prefix)
	if strings.IndexByte(rel, 0) >= 0 {
		return "", fmt.Errorf("%w: %q", ErrNotFound, requestPath)
	}

	candidate := filepath.Join(m.root, filepath.FromSlash(rel))
	if !within(m.root, candidate) {
		return "", fmt.Errorf("%w: %q escapes mount root", ErrForbidden, requestPath)
	}
	return candidate, nil
}

// resolve runs path resolution, index lookup and the dotfile gate for one request.
func (m *Mount) resolve(requestPath string) (*Target, error) {
	candidate, err := m.resolvePath(requestPath)
	if err != nil {
		return nil, err
	}
	return resolveTarget(m.root, candidate, m.opts)
}

// Info describes the mount.
func (m *Mount) Info() MountInfo {
	return MountInfo{
		Prefix:    m.prefix,
		Root:      m.root,
		IndexFile: m.opts.indexFile,
		Dotfiles:  m.opts.dotfiles,
		ETag:      m.opts.etag,
		MaxAge:    m.opts.maxAge,
	}
}

// resolveTarget stats candidate and descends into the index file for directories.
// A non-empty root additionally confines the symlink-resolved path to root.
func resolveTarget(root, candidate string, opts mountOptions) (*Target, error) {
	target, info, err := statTarget(root, candidate)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		if opts.indexFile == "" {
			return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, candidate)
		}
		candidate = filepath.Join(candidate, opts.indexFile)
		target, info, err = statTarget(root, candidate)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%w: index %s is a directory", ErrNotFound, candidate)
		}
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrNotFound, candidate)
	}

	if err := opts.dotfiles.check(filepath.Base(candidate)); err != nil {
		return nil, err
	}

	return &Target{
		Path:     candidate,
		Size:     info.Size(),
		ModTime:  info.ModTime(),
		realPath: target,
		opts:     opts,
	}, nil
}

func statTarget(root, candidate string) (string, os.FileInfo, error) {
	resolved, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		return "", nil, classifyFSError(err, candidate)
	}
	if root != "" && !within(root, resolved) {
		return "", nil, fmt.Errorf("%w: %s resolves outside mount root", ErrForbidden, candidate)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", nil, classifyFSError(err, candidate)
	}
	return resolved, info, nil
}

func classifyFSError(err error, path string) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return fmt.Errorf("%w: %w", ErrIO, err)
}

// within reports whether path equals root or lies below it.
// Both arguments must be cleaned absolute paths.
func within(root, path string) bool {
	if path == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}
