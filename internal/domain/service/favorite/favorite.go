package favorite

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/samber/lo"

	"nycschools/internal/domain"
	"nycschools/pkg/contextx"
	"nycschools/pkg/errcodes"
	"nycschools/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const DefaultKey = "favorited-school-ids"

// Storage is a durable key-value slot holding an ordered list of ids.
// Get reports ok=false when the slot was never written.
type Storage interface {
	Get(ctx context.Context, key string) (ids []string, ok bool, err error)
	Set(ctx context.Context, key string, ids []string) error
}

// Set is the persisted set of favorited school ids. Writes within one
// process are serialized; across processes the last writer wins.
type Set struct {
	storage Storage
	key     string
	mu      sync.Mutex
}

func NewSet(storage Storage, key string) *Set {
	return &Set{
		storage: storage,
		key:     lo.Ternary(key != "", key, DefaultKey),
	}
}

// IsFavorited never touches storage for an empty id. A storage failure is
// logged and reported as not favorited.
func (s *Set) IsFavorited(ctx context.Context, id string) bool {
	if id == "" {
		return false
	}

	ids, _, err := s.storage.Get(ctx, s.key)
	if err != nil {
		logger(ctx).Error("favorite storage read failed", slog.String(logx.FieldSchoolID, id), logx.Error(err))
		return false
	}

	return lo.Contains(ids, id)
}

// Members returns the stored ids without duplicates, in stored order.
func (s *Set) Members(ctx context.Context) ([]string, error) {
	ids, _, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("storage.Get: %w", err)
	}

	return lo.Uniq(ids), nil
}

// Toggle flips the membership of id and reports the new state.
func (s *Set) Toggle(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, domain.NewError(errcodes.InvalidArgument, "favorite.Toggle: school id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return false, fmt.Errorf("storage.Get: %w", err)
	}

	var isFavorited bool

	switch {
	case !ok:
		ids = []string{id}
		isFavorited = true
	case lo.Contains(ids, id):
		ids = lo.Without(ids, id)
	default:
		ids = append(ids, id)
		isFavorited = true
	}

	if err := s.storage.Set(ctx, s.key, ids); err != nil {
		return false, fmt.Errorf("storage.Set: %w", err)
	}

	logger(ctx).Info("favorite toggled",
		slog.String(logx.FieldSchoolID, id),
		slog.Bool(logx.FieldIsFavorite, isFavorited),
	)

	return isFavorited, nil
}
