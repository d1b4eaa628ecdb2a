package middleware_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/dmitrymomot/staticmount/core/handler"
)

// serve runs h through the same adapter the server uses.
func serve(h handler.HandlerFunc[*handler.BaseContext], req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler.ToHTTP(h, handler.NewBaseContext, nil).ServeHTTP(w, req)
	return w
}

func okHandler(ctx *handler.BaseContext) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("hello"))
		return err
	}
}
