package paginator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"nycschools/internal/domain"
	"nycschools/internal/domain/entity"
	"nycschools/pkg/contextx"
	"nycschools/pkg/errcodes"
	"nycschools/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type SchoolFetcher interface {
	FetchSchools(ctx context.Context, offset, limit int) ([]entity.School, error)
}

// Paginator owns the offset/limit window of one school list and the list
// itself. At most one LoadMore is in flight; overlapping calls are dropped,
// not queued. LoadInitial always runs and invalidates whatever is in flight,
// TryLoadInitial is dropped like LoadMore instead.
type Paginator struct {
	fetcher SchoolFetcher
	dedup   bool

	mu         sync.Mutex
	items      []entity.School
	ids        map[string]struct{}
	offset     int
	limit      int
	loading    bool
	generation uint64
	closed     bool
}

func New(fetcher SchoolFetcher, limit int) *Paginator {
	return &Paginator{
		fetcher: fetcher,
		dedup:   true,
		ids:     make(map[string]struct{}),
		limit:   limit,
	}
}

// WithDedup toggles dropping records whose id is already listed.
func (p *Paginator) WithDedup(enabled bool) *Paginator {
	p.dedup = enabled
	return p
}

// LoadInitial resets the window and replaces the list with the first page.
// A zero limit keeps the current page size. On failure the list and the
// offset it was fetched with are kept.
func (p *Paginator) LoadInitial(ctx context.Context, limit int) (entity.Page, error) {
	return p.loadInitial(ctx, limit, false)
}

// TryLoadInitial is LoadInitial for unattended callers: it reports
// Skipped without fetching while any request of this paginator is
// outstanding.
func (p *Paginator) TryLoadInitial(ctx context.Context, limit int) (entity.Page, error) {
	return p.loadInitial(ctx, limit, true)
}

func (p *Paginator) loadInitial(ctx context.Context, limit int, skipIfLoading bool) (entity.Page, error) {
	if limit < 0 {
		return entity.Page{}, domain.NewError(errcodes.InvalidPaging,
			fmt.Sprintf("paginator.LoadInitial: invalid limit %d", limit))
	}

	p.mu.Lock()
	if p.closed || (skipIfLoading && p.loading) {
		p.mu.Unlock()
		return entity.Page{Initial: true, Skipped: true}, nil
	}

	if limit > 0 {
		p.limit = limit
	}

	if p.limit <= 0 {
		p.mu.Unlock()
		return entity.Page{}, domain.NewError(errcodes.InvalidPaging, "paginator.LoadInitial: page limit is not set")
	}

	p.generation++
	gen := p.generation
	prevOffset := p.offset
	p.offset = 0
	p.loading = true
	pageLimit := p.limit
	p.mu.Unlock()

	schools, err := p.fetcher.FetchSchools(ctx, 0, pageLimit)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stale(gen) {
		logger(ctx).Debug("stale initial page dropped", slog.Int(logx.FieldCount, len(schools)))
		return entity.Page{Initial: true, Skipped: true}, nil
	}

	p.loading = false

	if err != nil {
		p.offset = prevOffset
		return entity.Page{Initial: true}, fmt.Errorf("fetcher.FetchSchools: %w", err)
	}

	p.items = p.items[:0:0]
	p.ids = make(map[string]struct{}, len(schools))
	added := p.appendLocked(schools)
	p.offset = len(schools)

	return entity.Page{
		Items:     added,
		Received:  len(schools),
		Initial:   true,
		EndOfData: len(schools) == 0,
	}, nil
}

// LoadMore fetches the page after the current offset and appends it. It is
// a no-op while another request of this paginator is outstanding.
func (p *Paginator) LoadMore(ctx context.Context) (entity.Page, error) {
	p.mu.Lock()
	if p.closed || p.loading {
		p.mu.Unlock()
		return entity.Page{Skipped: true}, nil
	}

	if p.limit <= 0 {
		p.mu.Unlock()
		return entity.Page{}, domain.NewError(errcodes.InvalidPaging, "paginator.LoadMore: page limit is not set")
	}

	p.loading = true
	gen := p.generation
	offset, limit := p.offset, p.limit
	p.mu.Unlock()

	schools, err := p.fetcher.FetchSchools(ctx, offset, limit)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stale(gen) {
		logger(ctx).Debug("stale page dropped",
			slog.Int(logx.FieldOffset, offset),
			slog.Int(logx.FieldCount, len(schools)),
		)
		return entity.Page{Skipped: true}, nil
	}

	p.loading = false

	if err != nil {
		return entity.Page{}, fmt.Errorf("fetcher.FetchSchools: %w", err)
	}

	if len(schools) == 0 {
		return entity.Page{EndOfData: true}, nil
	}

	added := p.appendLocked(schools)
	p.offset += len(schools)

	if dropped := len(schools) - len(added); dropped > 0 {
		logger(ctx).Warn("duplicate schools dropped",
			slog.Int(logx.FieldOffset, offset),
			slog.Int(logx.FieldCount, dropped),
		)
	}

	return entity.Page{
		Items:    added,
		Received: len(schools),
	}, nil
}

// Items returns a copy of the list.
func (p *Paginator) Items() []entity.School {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]entity.School, len(p.items))
	copy(out, p.items)

	return out
}

// State is a consistent snapshot of the window and the list size.
func (p *Paginator) State() entity.PageState {
	p.mu.Lock()
	defer p.mu.Unlock()

	return entity.PageState{
		Offset:    p.offset,
		Limit:     p.limit,
		IsLoading: p.loading,
		Size:      len(p.items),
	}
}

// Close discards the list. Completions arriving afterwards are dropped.
func (p *Paginator) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	p.loading = false
	p.items = nil
	p.ids = nil
}

func (p *Paginator) stale(gen uint64) bool {
	return p.closed || gen != p.generation
}

// appendLocked appends schools to the list, skipping ids already present
// when dedup is on. Records without an id are never deduplicated.
func (p *Paginator) appendLocked(schools []entity.School) []entity.School {
	added := make([]entity.School, 0, len(schools))

	for _, s := range schools {
		if p.dedup && s.ID != "" {
			if _, seen := p.ids[s.ID]; seen {
				continue
			}

			p.ids[s.ID] = struct{}{}
		}

		added = append(added, s)
	}

	p.items = append(p.items, added...)

	return added
}
