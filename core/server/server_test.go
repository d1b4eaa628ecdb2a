package server_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/staticmount/core/server"
)

func waitForAddr(t *testing.T, srv *server.Server) string {
	t.Helper()
	var addr string
	require.Eventually(t, func() bool {
		addr = srv.Addr()
		return addr != "127.0.0.1:0"
	}, 2*time.Second, 10*time.Millisecond)
	return addr
}

func TestServerRun(t *testing.T) {
	t.Parallel()

	srv := server.New("127.0.0.1:0", server.WithShutdownTimeout(time.Second))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})

	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Run(gctx, handler))

	addr := waitForAddr(t, srv)

	resp, err := http.Get("http://" + addr + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))

	cancel()
	require.NoError(t, g.Wait())
	assert.Equal(t, "127.0.0.1:0", srv.Addr())
}

func TestServerStartTwice(t *testing.T) {
	t.Parallel()

	srv := server.New("127.0.0.1:0")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = srv.Start(ctx, http.NotFoundHandler()) }()
	waitForAddr(t, srv)

	err := srv.Start(ctx, http.NotFoundHandler())
	require.ErrorIs(t, err, server.ErrServerAlreadyRunning)
	require.NoError(t, srv.Stop())
}

func TestServerListenError(t *testing.T) {
	t.Parallel()

	srv := server.New("256.0.0.1:bad")
	err := srv.Start(context.Background(), http.NotFoundHandler())
	require.ErrorIs(t, err, server.ErrListen)
}

func TestStopWhenNotRunning(t *testing.T) {
	t.Parallel()
	assert.NoError(t, server.New(":0").Stop())
}
