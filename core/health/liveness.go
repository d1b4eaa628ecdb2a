package health

import (
	"github.com/dmitrymomot/staticmount/core/handler"
	"github.com/dmitrymomot/staticmount/core/response"
)

// Liveness reports that the process is serving requests.
// Always returns "ALIVE" with 200 OK.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}

// NoContent returns 204 without body, for high-frequency pings.
func NoContent[C handler.Context](C) handler.Response {
	return response.NoContent()
}
