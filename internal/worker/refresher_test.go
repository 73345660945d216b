package worker_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"nycschools/internal/domain/entity"
	"nycschools/internal/domain/service/favorite"
	"nycschools/internal/domain/service/paginator"
	"nycschools/internal/domain/service/schoollist"
	"nycschools/internal/infrastructure/persistence"
	"nycschools/internal/worker"
)

type countingList struct {
	calls atomic.Int32
	err   error
}

func (c *countingList) RefreshIfIdle(context.Context) (entity.Page, error) {
	c.calls.Add(1)
	return entity.Page{Initial: true}, c.err
}

func TestRefresher_Run(t *testing.T) {
	testCases := []struct {
		name string
		err  error
	}{
		{name: "Successful refreshes"},
		{name: "Failures do not stop the loop", err: errors.New("upstream down")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			list := &countingList{err: tc.err}
			refresher := worker.NewRefresher(list, 10*time.Millisecond)

			ctx, cancel := context.WithCancel(context.Background())

			done := make(chan error, 1)
			go func() { done <- refresher.Run(ctx) }()

			rq.Eventually(func() bool { return list.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

			cancel()
			rq.NoError(<-done)
		})
	}
}

// blockingAPI serves 100 schools and parks every fetch issued while gate is
// set until the gate is closed.
type blockingAPI struct {
	mu       sync.Mutex
	calls    int
	inFlight int
	maxSeen  int
	gate     chan struct{}
	started  chan struct{}
}

func (a *blockingAPI) FetchSchools(_ context.Context, offset, limit int) ([]entity.School, error) {
	a.mu.Lock()
	a.calls++
	a.inFlight++
	a.maxSeen = max(a.maxSeen, a.inFlight)
	gate, started := a.gate, a.started
	a.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}

	if gate != nil {
		<-gate
	}

	a.mu.Lock()
	a.inFlight--
	a.mu.Unlock()

	n := max(0, min(limit, 100-offset))
	schools := make([]entity.School, n)

	for i := range schools {
		schools[i] = entity.School{ID: fmt.Sprintf("school-%03d", offset+i)}
	}

	return schools, nil
}

func (a *blockingAPI) FetchSchoolSATDetails(context.Context, string) ([]entity.SchoolSATDetail, error) {
	return nil, nil
}

func (a *blockingAPI) snapshot() (calls, maxSeen int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.calls, a.maxSeen
}

func TestRefresher_SkipsWhileLoadInFlight(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	api := &blockingAPI{}
	pager := paginator.New(api, 10)
	controller := schoollist.NewController(pager, favorite.NewSet(persistence.NewMemoryStore(), favorite.DefaultKey), api)

	_, err := controller.Refresh(ctx, 10)
	rq.NoError(err)

	gate := make(chan struct{})

	api.mu.Lock()
	api.gate = gate
	api.started = make(chan struct{}, 1)
	api.mu.Unlock()

	more := make(chan entity.Page, 1)

	go func() {
		page, _ := controller.LoadMore(ctx)
		more <- page
	}()

	<-api.started

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)

	go func() { done <- worker.NewRefresher(controller, 5*time.Millisecond).Run(runCtx) }()

	// Several ticks land while the user's page is still loading.
	time.Sleep(50 * time.Millisecond)

	calls, maxSeen := api.snapshot()
	rq.Equal(2, calls)
	rq.Equal(1, maxSeen)

	cancel()
	rq.NoError(<-done)

	close(gate)

	page := <-more
	rq.False(page.Skipped)
	rq.Len(page.Items, 10)

	state := controller.State()
	rq.Equal(20, state.Offset)
	rq.Equal(20, state.Size)
}
