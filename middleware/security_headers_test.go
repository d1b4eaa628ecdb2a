package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/staticmount/core/handler"
	"github.com/dmitrymomot/staticmount/core/response"
	"github.com/dmitrymomot/staticmount/middleware"
)

func TestSecurityHeadersDefault(t *testing.T) {
	t.Parallel()

	h := handler.Chain(okHandler, middleware.SecurityHeaders[*handler.BaseContext]())
	w := serve(h, httptest.NewRequest(http.MethodGet, "/font.woff2", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "cross-origin", w.Header().Get("Cross-Origin-Resource-Policy"))
	assert.Empty(t, w.Header().Get("X-Frame-Options"))
	assert.Empty(t, w.Header().Get("Content-Security-Policy"))
}

func TestSecurityHeadersCustom(t *testing.T) {
	t.Parallel()

	cfg := middleware.SiteSecurity
	cfg.CustomHeaders = map[string]string{
		"X-Frame-Options": "DENY",
		"X-Served-By":     "staticd",
	}
	h := handler.Chain(okHandler, middleware.SecurityHeadersWithConfig[*handler.BaseContext](cfg))
	w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "staticd", w.Header().Get("X-Served-By"))
	assert.Equal(t, "same-origin", w.Header().Get("Cross-Origin-Resource-Policy"))
}

func TestSecurityHeadersOnErrorResponses(t *testing.T) {
	t.Parallel()

	h := handler.Chain(func(ctx *handler.BaseContext) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			return response.ErrForbidden
		}
	}, middleware.SecurityHeaders[*handler.BaseContext]())
	w := serve(h, httptest.NewRequest(http.MethodGet, "/../etc/passwd", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}
