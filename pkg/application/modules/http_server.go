package modules

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"nycschools/pkg/logx"
)

const defaultShutdownTimeout = 10 * time.Second

// HTTPServer runs an http.Server inside the errgroup and shuts it down
// gracefully once ctx is done. When Listener is set the server accepts on
// it instead of binding httpServer.Addr.
type HTTPServer struct {
	ShutdownTimeout time.Duration
	Listener        net.Listener
}

func (h HTTPServer) Run(
	ctx context.Context,
	g *errgroup.Group,
	httpServer *http.Server,
) {
	g.Go(func() error {
		go func() {
			<-ctx.Done()

			ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cmp.Or(h.ShutdownTimeout, defaultShutdownTimeout)) //nolint:govet
			defer cancel()

			if err := httpServer.Shutdown(ctx); err != nil {
				logger(ctx).Error("server.Shutdown", logx.Error(err))
			}
		}()

		address := httpServer.Addr
		if h.Listener != nil {
			address = h.Listener.Addr().String()
		}

		logger(ctx).Info("http server started", slog.String("address", address))

		if err := h.serve(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer.Serve: %w", err)
		}

		logger(ctx).Info("http server stopped", slog.String("address", address))

		return nil
	})
}

func (h HTTPServer) serve(httpServer *http.Server) error {
	if h.Listener != nil {
		return httpServer.Serve(h.Listener) //nolint:wrapcheck
	}

	return httpServer.ListenAndServe() //nolint:wrapcheck
}
