package worker

import (
	"context"
	"log/slog"
	"time"

	"nycschools/internal/domain/entity"
	"nycschools/pkg/contextx"
	"nycschools/pkg/logx"
)

type ListRefresher interface {
	RefreshIfIdle(ctx context.Context) (entity.Page, error)
}

// Refresher reloads the first page of the school list on a fixed interval.
// A tick that lands while another load is in flight is skipped and not
// retried, so the load the user started is never discarded.
type Refresher struct {
	list     ListRefresher
	interval time.Duration
}

func NewRefresher(list ListRefresher, interval time.Duration) *Refresher {
	return &Refresher{
		list:     list,
		interval: interval,
	}
}

// Run blocks until ctx is done. It returns nil on cancellation.
func (w *Refresher) Run(ctx context.Context) error {
	logger(ctx).Info("refresher started", slog.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger(ctx).Info("refresher stopped")
			return nil
		case <-ticker.C:
			w.refreshOnce(ctx)
		}
	}
}

func (w *Refresher) refreshOnce(ctx context.Context) {
	ctx = contextx.WithTraceID(ctx, contextx.NewTraceID())

	page, err := w.list.RefreshIfIdle(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger(ctx).Warn("scheduled refresh failed", logx.Error(err))
		}

		return
	}

	if page.Skipped {
		logger(ctx).Debug("scheduled refresh skipped")
		return
	}

	logger(ctx).Debug("scheduled refresh completed", slog.Int(logx.FieldCount, page.Received))
}
