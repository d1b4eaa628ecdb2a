// Package logger builds *slog.Logger instances and provides attribute helpers
// so log records across the server use the same keys.
//
//	log := logger.New(
//		logger.WithProduction("staticd"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Info("mount registered",
//		logger.Component("static"),
//		logger.Mount("/assets", "/srv/www/assets"),
//	)
//
// Helpers taking optional values (Error, RequestID, RemoteAddr) return an empty
// slog.Attr for zero input, which slog omits from the output.
package logger
