// Package health provides liveness and readiness handlers.
//
// Readiness takes checks of the form func(context.Context) error. For staticd
// the check is static.Registry.Check, which fails once a mount root has
// disappeared or stopped being a directory.
package health
