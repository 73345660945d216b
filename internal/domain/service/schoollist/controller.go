package schoollist

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"

	"nycschools/internal/domain/entity"
	"nycschools/pkg/contextx"
	"nycschools/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const defaultSATCacheTTL = 10 * time.Minute

type Pager interface {
	LoadInitial(ctx context.Context, limit int) (entity.Page, error)
	TryLoadInitial(ctx context.Context, limit int) (entity.Page, error)
	LoadMore(ctx context.Context) (entity.Page, error)
	Items() []entity.School
	State() entity.PageState
}

type FavoriteSet interface {
	IsFavorited(ctx context.Context, id string) bool
	Toggle(ctx context.Context, id string) (bool, error)
	Members(ctx context.Context) ([]string, error)
}

type SATFetcher interface {
	FetchSchoolSATDetails(ctx context.Context, schoolID string) ([]entity.SchoolSATDetail, error)
}

// Listener receives list notifications. Calls happen on the goroutine that
// completed the operation, after list state has been updated.
type Listener interface {
	OnPageLoaded(ctx context.Context, items []entity.SchoolItem, isInitial bool)
	OnLoadFailed(ctx context.Context, err error)
	OnFavoriteChanged(ctx context.Context, id string, isFavorite bool)
}

// WatchFunc is notified when the favorite state of one school changes.
type WatchFunc func(ctx context.Context, id string, isFavorite bool)

// Controller is the single source of truth for the school list consumed by
// presentation layers.
type Controller struct {
	pager     Pager
	favorites FavoriteSet
	sat       SATFetcher
	satCache  *cache.Cache

	mu        sync.RWMutex
	listeners []Listener
	watchers  map[string]map[uint64]WatchFunc
	nextWatch uint64
}

func NewController(pager Pager, favorites FavoriteSet, sat SATFetcher) *Controller {
	return &Controller{
		pager:     pager,
		favorites: favorites,
		sat:       sat,
		satCache:  cache.New(defaultSATCacheTTL, 2*defaultSATCacheTTL),
		watchers:  make(map[string]map[uint64]WatchFunc),
	}
}

func (c *Controller) WithSATCacheTTL(ttl time.Duration) *Controller {
	c.satCache = cache.New(ttl, 2*ttl)
	return c
}

func (c *Controller) WithListener(l Listener) *Controller {
	c.mu.Lock()
	c.listeners = append(c.listeners, l)
	c.mu.Unlock()

	return c
}

// CurrentItems returns the list with favorite state resolved from a single
// read of the favorite set.
func (c *Controller) CurrentItems(ctx context.Context) []entity.SchoolItem {
	return c.decorate(ctx, c.pager.Items())
}

func (c *Controller) State() entity.PageState {
	return c.pager.State()
}

func (c *Controller) Refresh(ctx context.Context, limit int) (entity.Page, error) {
	page, err := c.pager.LoadInitial(ctx, limit)
	if err != nil {
		c.notifyFailed(ctx, err)
		return page, fmt.Errorf("pager.LoadInitial: %w", err)
	}

	c.notifyLoaded(ctx, page)

	return page, nil
}

// RefreshIfIdle reloads the first page with the current limit unless a load
// is already outstanding, in which case the page reports Skipped.
func (c *Controller) RefreshIfIdle(ctx context.Context) (entity.Page, error) {
	page, err := c.pager.TryLoadInitial(ctx, 0)
	if err != nil {
		c.notifyFailed(ctx, err)
		return page, fmt.Errorf("pager.TryLoadInitial: %w", err)
	}

	c.notifyLoaded(ctx, page)

	return page, nil
}

// LoadMore appends the next page. Skipped while another load is outstanding.
func (c *Controller) LoadMore(ctx context.Context) (entity.Page, error) {
	page, err := c.pager.LoadMore(ctx)
	if err != nil {
		c.notifyFailed(ctx, err)
		return page, fmt.Errorf("pager.LoadMore: %w", err)
	}

	c.notifyLoaded(ctx, page)

	return page, nil
}

// ToggleFavorite flips the favorite state of id and notifies its watchers,
// then every listener.
func (c *Controller) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	isFavorite, err := c.favorites.Toggle(ctx, id)
	if err != nil {
		return false, fmt.Errorf("favorites.Toggle: %w", err)
	}

	c.mu.RLock()
	watchers := lo.Values(c.watchers[id])
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.RUnlock()

	for _, fn := range watchers {
		fn(ctx, id, isFavorite)
	}

	for _, l := range listeners {
		l.OnFavoriteChanged(ctx, id, isFavorite)
	}

	return isFavorite, nil
}

func (c *Controller) IsFavorite(ctx context.Context, id string) bool {
	return c.favorites.IsFavorited(ctx, id)
}

func (c *Controller) Favorites(ctx context.Context) ([]string, error) {
	ids, err := c.favorites.Members(ctx)
	if err != nil {
		return nil, fmt.Errorf("favorites.Members: %w", err)
	}

	return ids, nil
}

// Watch registers fn for favorite changes of id. The returned func removes
// the registration.
func (c *Controller) Watch(id string, fn WatchFunc) (unwatch func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextWatch++
	token := c.nextWatch

	if c.watchers[id] == nil {
		c.watchers[id] = make(map[uint64]WatchFunc)
	}

	c.watchers[id][token] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		delete(c.watchers[id], token)

		if len(c.watchers[id]) == 0 {
			delete(c.watchers, id)
		}
	}
}

// SATDetails returns SAT records for a school, served from cache when a
// fresh copy exists. Failures are not cached.
func (c *Controller) SATDetails(ctx context.Context, id string) ([]entity.SchoolSATDetail, error) {
	if cached, found := c.satCache.Get(id); found {
		if details, ok := cached.([]entity.SchoolSATDetail); ok {
			return details, nil
		}
	}

	details, err := c.sat.FetchSchoolSATDetails(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("sat.FetchSchoolSATDetails: %w", err)
	}

	c.satCache.Set(id, details, cache.DefaultExpiration)

	return details, nil
}

func (c *Controller) decorate(ctx context.Context, schools []entity.School) []entity.SchoolItem {
	favorites := make(map[string]struct{})

	ids, err := c.favorites.Members(ctx)
	if err != nil {
		logger(ctx).Error("favorites.Members", logx.Error(err))
	}

	for _, id := range ids {
		favorites[id] = struct{}{}
	}

	return lo.Map(schools, func(s entity.School, _ int) entity.SchoolItem {
		_, isFavorite := favorites[s.ID]
		return entity.SchoolItem{School: s, IsFavorite: isFavorite && s.ID != ""}
	})
}

func (c *Controller) notifyLoaded(ctx context.Context, page entity.Page) {
	if page.Skipped {
		return
	}

	logger(ctx).Info("page loaded",
		slog.Bool("initial", page.Initial),
		slog.Int(logx.FieldCount, len(page.Items)),
		slog.Int(logx.FieldOffset, c.pager.State().Offset),
	)

	c.mu.RLock()
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.RUnlock()

	if len(listeners) == 0 {
		return
	}

	items := c.decorate(ctx, page.Items)

	for _, l := range listeners {
		l.OnPageLoaded(ctx, items, page.Initial)
	}
}

func (c *Controller) notifyFailed(ctx context.Context, err error) {
	logger(ctx).Error("page load failed", logx.Error(err))

	c.mu.RLock()
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.RUnlock()

	for _, l := range listeners {
		l.OnLoadFailed(ctx, err)
	}
}
