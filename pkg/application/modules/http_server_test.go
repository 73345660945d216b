package modules_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"nycschools/pkg/application/modules"
)

func TestHTTPServer(t *testing.T) {
	rq := require.New(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	rq.NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: time.Second, Listener: listener}.Run(ctx, g, &http.Server{ //nolint:exhaustruct
		Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("ok")) //nolint:errcheck
		}),
		ReadHeaderTimeout: time.Second,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+listener.Addr().String(), http.NoBody)
	rq.NoError(err)

	resp, err := http.DefaultClient.Do(req)
	rq.NoError(err)

	body, err := io.ReadAll(resp.Body)
	rq.NoError(err)
	rq.NoError(resp.Body.Close())
	rq.Equal("ok", string(body))

	cancel()

	rq.NoError(g.Wait())
}
