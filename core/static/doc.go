// Package static serves files from local directories mounted under URL prefixes.
//
// A Registry holds an ordered list of mounts. For each GET or HEAD request the
// mounts whose prefix matches are tried in registration order; a mount that
// has no such file passes the request on, while any other failure (a traversal
// attempt, a denied dotfile, a read error) ends the search.
//
//	reg := static.NewRegistry(static.WithLogger(log))
//	reg.MustRegister("/assets", "./public/assets", static.WithMaxAge(24*time.Hour))
//	reg.MustRegister("/assets", "./vendor/assets")
//	reg.MustRegister("/", "./public", static.WithDotfiles(static.DotfilesDeny))
//
//	http.ListenAndServe(":8080", reg)
//
// Inside the handler pipeline use Handler, and SendFile or Download to answer
// a single request with a file:
//
//	func report(ctx *handler.BaseContext) handler.Response {
//		return static.Download("/var/reports/latest.pdf", "report.pdf")
//	}
//
// # Responses
//
// Successful responses carry Content-Type (by extension), Content-Length,
// Last-Modified, Accept-Ranges, Cache-Control and, unless disabled, a weak
// ETag built from size and modification time. A matching If-None-Match yields
// 304. A single "bytes=start-end" range yields 206; an unsatisfiable range
// yields 416 with "Content-Range: bytes */size".
//
// 200, 206, 304 and 416 are written by this package. Other outcomes are
// returned as errors implementing StatusCode(): ErrNotFound (404),
// ErrForbidden (403), ErrMethodNotAllowed (405) and ErrIO (500). An ErrIO
// after the body has started cannot change the status; the transfer just ends.
//
// # Paths
//
// The request path minus the mount prefix is joined to the mount root, and
// the symlink-resolved result must stay inside the root. Symlinks pointing
// outside the root answer 403.
package static
