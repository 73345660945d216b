package application

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"nycschools/internal/config"
	"nycschools/internal/domain/service/favorite"
	"nycschools/internal/domain/service/paginator"
	"nycschools/internal/domain/service/schoollist"
	"nycschools/internal/infrastructure/opendata"
	"nycschools/internal/server"
	"nycschools/internal/worker"
	"nycschools/pkg/application/modules"
	"nycschools/pkg/contextx"
	"nycschools/pkg/logx"
	"nycschools/pkg/middlewarex"
	"nycschools/pkg/probe"
)

const httpServerReadHeaderTimeout = 5 * time.Second

// Run собирает список школ и обслуживает его до отмены ctx: HTTP API,
// probe, метрики, первичная загрузка и (опционально) плановое обновление.
func Run(ctx context.Context, cfg config.Config) error {
	ctx = contextx.WithLogger(ctx, logger(ctx).With(
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
	))

	storage, closeStorage, err := newFavoriteStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("newFavoriteStorage: %w", err)
	}
	defer closeStorage()

	client := opendata.NewClient(
		opendata.Config{
			SchoolListURL:  cfg.OpenData.SchoolListURL,
			SATDetailURL:   cfg.OpenData.SATDetailURL,
			AppToken:       cfg.OpenData.AppToken,
			Timeout:        cfg.OpenData.Timeout,
			LogFieldMaxLen: cfg.OpenData.LogFieldMaxLen,
			LogBodies:      cfg.OpenData.LogBodies,
		},
		opendata.WithRegisterer(prometheus.DefaultRegisterer),
	)

	pager := paginator.New(client, cfg.Pagination.Limit).WithDedup(cfg.Pagination.Dedup)
	defer pager.Close()

	probeServer := probe.NewServer(cfg.HTTP.ProbeListenAddress, probe.Options{
		Name:    cfg.App.Name,
		Version: cfg.App.Version,
	})

	controller := schoollist.NewController(pager, favorite.NewSet(storage, cfg.Favorites.Key), client).
		WithSATCacheTTL(cfg.Pagination.SATCacheTTL).
		WithListener(readiness{probe: probeServer})

	g, ctx := errgroup.WithContext(ctx)

	modules.ProbeServer{Server: probeServer}.Run(ctx, g)
	modules.MetricServer{
		ListenAddress: cfg.HTTP.MetricsListenAddress,
		Gatherer:      prometheus.DefaultGatherer,
	}.Run(ctx, g)
	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, &http.Server{
		//nolint:exhaustruct
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           newRouter(cfg, controller),
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	})

	g.Go(func() error {
		loadInitialPage(ctx, controller)
		return nil
	})

	if cfg.Pagination.RefreshInterval > 0 {
		refresher := worker.NewRefresher(controller, cfg.Pagination.RefreshInterval)

		g.Go(func() error {
			return refresher.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("errgroup.Wait: %w", err)
	}

	return nil
}

func newRouter(cfg config.Config, controller *schoollist.Controller) http.Handler {
	masker := logx.NewSensitiveDataMasker()

	r := chi.NewRouter()

	r.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.RequestLogging(masker, cfg.HTTP.LogFieldMaxLen),
		middlewarex.ResponseLogging(masker, cfg.HTTP.LogFieldMaxLen),
		middlewarex.Recovery,
		middlewarex.Metrics(prometheus.DefaultRegisterer),
	)

	server.NewServer(server.NewSchoolServer(controller)).RegisterRoutes(r)

	return r
}

// loadInitialPage mirrors the first screen appearing. A failure leaves the
// service up and not ready; a later refresh can still succeed.
func loadInitialPage(ctx context.Context, controller *schoollist.Controller) {
	ctx, _ = contextx.EnsureTraceID(ctx)

	if _, err := controller.Refresh(ctx, 0); err != nil {
		logger(ctx).Warn("initial page load failed", logx.Error(err))
	}
}
