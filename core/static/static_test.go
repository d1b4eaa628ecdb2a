package static_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/staticmount/core/static"
)

// writeFiles creates files under dir; keys are slash-separated relative paths.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func newRegistry(t *testing.T, mounts ...func(reg *static.Registry)) *static.Registry {
	t.Helper()
	reg := static.NewRegistry()
	for _, m := range mounts {
		m(reg)
	}
	return reg
}

func mount(prefix, dir string, opts ...static.MountOption) func(reg *static.Registry) {
	return func(reg *static.Registry) {
		reg.MustRegister(prefix, dir, opts...)
	}
}

func do(reg http.Handler, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	reg.ServeHTTP(w, req)
	return w
}
