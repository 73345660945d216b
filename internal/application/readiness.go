package application

import (
	"context"

	"nycschools/internal/domain/entity"
	"nycschools/pkg/probe"
)

// readiness flips the probe once any initial page has been applied.
type readiness struct {
	probe probe.Server
}

func (r readiness) OnPageLoaded(_ context.Context, _ []entity.SchoolItem, isInitial bool) {
	if isInitial {
		r.probe.MarkReady()
	}
}

func (readiness) OnLoadFailed(context.Context, error) {}

func (readiness) OnFavoriteChanged(context.Context, string, bool) {}
