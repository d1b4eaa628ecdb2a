package static_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/staticmount/core/static"
)

func TestRegistryServesFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"app.js":       "console.log(1)",
		"css/site.css": "body{}",
	})
	reg := newRegistry(t, mount("/static", dir, static.WithMaxAge(90*time.Second)))

	w := do(reg, http.MethodGet, "/static/app.js", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())
	assert.Equal(t, "text/javascript; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, strconv.Itoa(len("console.log(1)")), w.Header().Get("Content-Length"))
	assert.Equal(t, "bytes", w.Header().Get("Accept-Ranges"))
	assert.Equal(t, "public, max-age=90", w.Header().Get("Cache-Control"))
	assert.NotEmpty(t, w.Header().Get("Last-Modified"))
	assert.NotEmpty(t, w.Header().Get("ETag"))

	w = do(reg, http.MethodGet, "/static/css/site.css", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "body{}", w.Body.String())
	assert.Equal(t, "text/css; charset=utf-8", w.Header().Get("Content-Type"))
}

func TestRegistryHead(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "hello"})
	reg := newRegistry(t, mount("/", dir))

	w := do(reg, http.MethodHead, "/a.txt", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "5", w.Header().Get("Content-Length"))
	assert.Empty(t, w.Body.String())
}

func TestRegistryMethodNotAllowed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "hello"})
	reg := newRegistry(t, mount("/", dir))

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		w := do(reg, method, "/a.txt", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, method)
		assert.Equal(t, "GET, HEAD", w.Header().Get("Allow"))
	}
}

func TestRegistryNotFound(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "hello"})
	reg := newRegistry(t, mount("/static", dir))

	tests := []string{
		"/static/missing.txt",
		"/static/a.txt/extra",
		"/other/a.txt",
	}
	for _, target := range tests {
		w := do(reg, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, target)
	}
}

func TestRegistryFallthrough(t *testing.T) {
	t.Parallel()

	primary := t.TempDir()
	fallback := t.TempDir()
	writeFiles(t, primary, map[string]string{
		"only-primary.txt": "primary",
		"both.txt":         "from primary",
		".secret":          "hidden",
	})
	writeFiles(t, fallback, map[string]string{
		"only-fallback.txt": "fallback",
		"both.txt":          "from fallback",
		".secret":           "fallback secret",
	})
	reg := newRegistry(t,
		mount("/assets", primary, static.WithDotfiles(static.DotfilesDeny)),
		mount("/assets", fallback, static.WithDotfiles(static.DotfilesAllow)),
	)

	w := do(reg, http.MethodGet, "/assets/only-primary.txt", nil)
	assert.Equal(t, "primary", w.Body.String())

	w = do(reg, http.MethodGet, "/assets/only-fallback.txt", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fallback", w.Body.String())

	w = do(reg, http.MethodGet, "/assets/both.txt", nil)
	assert.Equal(t, "from primary", w.Body.String())

	// A 403 from the first mount is terminal.
	w = do(reg, http.MethodGet, "/assets/.secret", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "hello"})
	reg := newRegistry(t, mount("/", dir))

	target, err := reg.Resolve("/a.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(5), target.Size)
	assert.Equal(t, "a.txt", filepath.Base(target.Path))

	_, err = reg.Resolve("/b.txt")
	require.ErrorIs(t, err, static.ErrNotFound)

	_, err = static.NewRegistry().Resolve("/a.txt")
	require.ErrorIs(t, err, static.ErrNotFound)
}

func TestRegistryPathTraversal(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()
	root := filepath.Join(parent, "public")
	writeFiles(t, parent, map[string]string{
		"secret.txt":      "top secret",
		"public/ok.txt":   "ok",
		"publicity/x.txt": "sibling",
	})
	reg := newRegistry(t, mount("/static", root))

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"parent escape", "/static/../secret.txt", http.StatusForbidden},
		{"nested escape", "/static/a/../../secret.txt", http.StatusForbidden},
		{"sibling directory", "/static/../publicity/x.txt", http.StatusForbidden},
		{"dot segments inside root", "/static/a/../ok.txt", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := reg.Resolve(tt.path)
			if tt.status == http.StatusOK {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, static.ErrForbidden)
		})
	}
}

func TestRegistrySymlinkEscape(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	parent := t.TempDir()
	root := filepath.Join(parent, "public")
	writeFiles(t, parent, map[string]string{
		"secret.txt":        "top secret",
		"public/inside.txt": "inside",
	})
	require.NoError(t, os.Symlink(filepath.Join(parent, "secret.txt"), filepath.Join(root, "leak.txt")))
	require.NoError(t, os.Symlink(filepath.Join(root, "inside.txt"), filepath.Join(root, "alias.txt")))

	reg := newRegistry(t, mount("/", root))

	w := do(reg, http.MethodGet, "/leak.txt", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotContains(t, w.Body.String(), "top secret")

	w = do(reg, http.MethodGet, "/alias.txt", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "inside", w.Body.String())
}

func TestRegistryDirectoryIndex(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"index.html":          "<h1>root</h1>",
		"docs/index.html":     "<h1>docs</h1>",
		"empty/readme.txt":    "no index here",
		"custom/default.html": "custom",
	})

	reg := newRegistry(t, mount("/", dir))

	w := do(reg, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<h1>root</h1>", w.Body.String())
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	w = do(reg, http.MethodGet, "/docs", nil)
	assert.Equal(t, "<h1>docs</h1>", w.Body.String())

	w = do(reg, http.MethodGet, "/docs/", nil)
	assert.Equal(t, "<h1>docs</h1>", w.Body.String())

	w = do(reg, http.MethodGet, "/empty/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	custom := newRegistry(t, mount("/", dir, static.WithIndexFile("default.html")))
	w = do(custom, http.MethodGet, "/custom/", nil)
	assert.Equal(t, "custom", w.Body.String())

	noIndex := newRegistry(t, mount("/", dir, static.WithIndexFile("")))
	w = do(noIndex, http.MethodGet, "/docs/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegistryDotfiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		".env":            "SECRET=1",
		".well-known/a":   "a",
		"dir/.htaccess":   "deny",
		"dir/visible.txt": "visible",
	})

	tests := []struct {
		name   string
		policy static.DotfilePolicy
		path   string
		status int
	}{
		{"ignore hides", static.DotfilesIgnore, "/.env", http.StatusNotFound},
		{"deny forbids", static.DotfilesDeny, "/.env", http.StatusForbidden},
		{"allow serves", static.DotfilesAllow, "/.env", http.StatusOK},
		{"nested deny", static.DotfilesDeny, "/dir/.htaccess", http.StatusForbidden},
		{"dot directory, plain file", static.DotfilesDeny, "/.well-known/a", http.StatusOK},
		{"plain file unaffected", static.DotfilesDeny, "/dir/visible.txt", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reg := newRegistry(t, mount("/", dir, static.WithDotfiles(tt.policy)))
			w := do(reg, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"file.txt": "x"})

	tests := []struct {
		name   string
		prefix string
		dir    string
		opts   []static.MountOption
	}{
		{name: "blank prefix", prefix: " ", dir: dir},
		{name: "blank dir", prefix: "/", dir: ""},
		{name: "missing dir", prefix: "/", dir: filepath.Join(dir, "missing")},
		{name: "file instead of dir", prefix: "/", dir: filepath.Join(dir, "file.txt")},
		{name: "negative max age", prefix: "/", dir: dir, opts: []static.MountOption{static.WithMaxAge(-time.Second)}},
		{name: "unknown dotfile policy", prefix: "/", dir: dir, opts: []static.MountOption{static.WithDotfiles(static.DotfilePolicy(42))}},
		{name: "index with path", prefix: "/", dir: dir, opts: []static.MountOption{static.WithIndexFile("a/index.html")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reg := static.NewRegistry()
			err := reg.Register(tt.prefix, tt.dir, tt.opts...)
			require.ErrorIs(t, err, static.ErrInvalidMount)
			assert.Empty(t, reg.Mounts())
			assert.Panics(t, func() { reg.MustRegister(tt.prefix, tt.dir, tt.opts...) })
		})
	}
}

func TestRegistryMounts(t *testing.T) {
	t.Parallel()

	a := t.TempDir()
	b := t.TempDir()
	reg := newRegistry(t,
		mount("/a", a, static.WithETag(false), static.WithMaxAge(time.Minute)),
		mount("/b", b, static.WithDotfiles(static.DotfilesAllow)),
	)

	infos := reg.Mounts()
	require.Len(t, infos, 2)
	assert.Equal(t, "/a", infos[0].Prefix)
	assert.False(t, infos[0].ETag)
	assert.Equal(t, time.Minute, infos[0].MaxAge)
	assert.Equal(t, "index.html", infos[0].IndexFile)
	assert.True(t, filepath.IsAbs(infos[0].Root))
	assert.Equal(t, "/b", infos[1].Prefix)
	assert.Equal(t, static.DotfilesAllow, infos[1].Dotfiles)
}

func TestRegistryCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	root := filepath.Join(dir, "public")
	require.NoError(t, os.Mkdir(root, 0o755))
	reg := newRegistry(t, mount("/", root))

	require.NoError(t, reg.Check(context.Background()))

	require.NoError(t, os.Remove(root))
	err := reg.Check(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mount /")
}
