// Package staticmount serves local directories over HTTP under URL prefixes.
//
// The module is organized as:
//
//   - core/static: mounts, path resolution, dotfiles, ETag, ranges and streaming
//   - core/handler, core/response: the handler pipeline and error rendering
//   - core/server, core/config, core/logger, core/health: process plumbing
//   - middleware: request IDs, access logging and security headers
//   - internal/mountfile: the YAML mounts file read by cmd/staticd
//
// cmd/staticd is the ready-to-run server.
package staticmount
