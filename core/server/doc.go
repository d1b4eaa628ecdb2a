// Package server runs an http.Handler with graceful shutdown.
//
// Servers are built from options or from a Config loaded from the environment:
//
//	var cfg server.Config
//	config.MustLoad(&cfg)
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, handler))
//	return g.Wait()
//
// Run returns a func suitable for errgroup: it starts the listener, waits for
// ctx to be cancelled and then shuts down within the configured timeout.
//
// The write timeout is disabled by default so long downloads are not cut off.
// Set SERVER_WRITE_TIMEOUT to bound it.
package server
