package handler

import (
	"context"
	"net/http"
)

// Context defines the contract for request contexts.
// BaseContext is the default implementation.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	SetValue(key, val any)
}

// BaseContext delegates context.Context to the request context and keeps
// request-scoped values set by middleware.
type BaseContext struct {
	context.Context
	w      http.ResponseWriter
	r      *http.Request
	params map[string]string
	values map[any]any
}

// NewBaseContext creates a context for one request. It matches the factory
// signature expected by ToHTTP.
func NewBaseContext(w http.ResponseWriter, r *http.Request) *BaseContext {
	return &BaseContext{
		Context: r.Context(),
		w:       w,
		r:       r,
	}
}

// Request returns the *http.Request associated with the context.
func (c *BaseContext) Request() *http.Request {
	return c.r
}

// ResponseWriter returns the http.ResponseWriter associated with the context.
func (c *BaseContext) ResponseWriter() http.ResponseWriter {
	return c.w
}

// Param returns a path parameter. Static serving has none, so this is only
// populated through SetParam.
func (c *BaseContext) Param(key string) string {
	return c.params[key]
}

// SetParam sets a path parameter.
func (c *BaseContext) SetParam(key, value string) {
	if c.params == nil {
		c.params = make(map[string]string)
	}
	c.params[key] = value
}

// SetValue stores a request-scoped value.
func (c *BaseContext) SetValue(key, val any) {
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = val
}

// Value returns values set with SetValue before falling back to the request context.
func (c *BaseContext) Value(key any) any {
	if val, ok := c.values[key]; ok {
		return val
	}
	return c.Context.Value(key)
}
