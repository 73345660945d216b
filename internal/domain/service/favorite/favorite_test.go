package favorite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"nycschools/internal/domain"
	"nycschools/internal/domain/service/favorite"
	"nycschools/pkg/errcodes"
)

type fakeStorage struct {
	slots  map[string][]string
	gets   int
	sets   int
	getErr error
	setErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{slots: make(map[string][]string)}
}

func (f *fakeStorage) Get(_ context.Context, key string) ([]string, bool, error) {
	f.gets++

	if f.getErr != nil {
		return nil, false, f.getErr
	}

	ids, ok := f.slots[key]

	return append([]string(nil), ids...), ok, nil
}

func (f *fakeStorage) Set(_ context.Context, key string, ids []string) error {
	f.sets++

	if f.setErr != nil {
		return f.setErr
	}

	f.slots[key] = append([]string(nil), ids...)

	return nil
}

func TestToggleTwiceRestoresState(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	storage := newFakeStorage()
	set := favorite.NewSet(storage, "")

	rq.False(set.IsFavorited(ctx, "school-A"))

	isFav, err := set.Toggle(ctx, "school-A")
	rq.NoError(err)
	rq.True(isFav)
	rq.True(set.IsFavorited(ctx, "school-A"))
	rq.Equal([]string{"school-A"}, storage.slots[favorite.DefaultKey])

	isFav, err = set.Toggle(ctx, "school-A")
	rq.NoError(err)
	rq.False(isFav)
	rq.False(set.IsFavorited(ctx, "school-A"))
	rq.Empty(storage.slots[favorite.DefaultKey])
	rq.Equal(2, storage.sets)
}

func TestToggleExistingSet(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	storage := newFakeStorage()
	storage.slots["favs"] = []string{"a", "b", "a"}
	set := favorite.NewSet(storage, "favs")

	isFav, err := set.Toggle(ctx, "c")
	rq.NoError(err)
	rq.True(isFav)
	rq.Equal([]string{"a", "b", "a", "c"}, storage.slots["favs"])

	isFav, err = set.Toggle(ctx, "a")
	rq.NoError(err)
	rq.False(isFav)
	rq.Equal([]string{"b", "c"}, storage.slots["favs"])

	members, err := set.Members(ctx)
	rq.NoError(err)
	rq.ElementsMatch([]string{"b", "c"}, members)
}

func TestEmptyID(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	storage := newFakeStorage()
	set := favorite.NewSet(storage, "")

	rq.False(set.IsFavorited(ctx, ""))
	rq.Zero(storage.gets)

	_, err := set.Toggle(ctx, "")
	rq.True(domain.HasCode(err, errcodes.InvalidArgument))
	rq.Zero(storage.gets)
	rq.Zero(storage.sets)
}

func TestStorageFailures(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	storage := newFakeStorage()
	set := favorite.NewSet(storage, "")

	readErr := errors.New("disk unavailable")
	storage.getErr = readErr

	rq.False(set.IsFavorited(ctx, "a"))

	_, err := set.Toggle(ctx, "a")
	rq.ErrorIs(err, readErr)
	rq.Zero(storage.sets)

	_, err = set.Members(ctx)
	rq.ErrorIs(err, readErr)

	storage.getErr = nil
	writeErr := errors.New("read-only")
	storage.setErr = writeErr

	_, err = set.Toggle(ctx, "a")
	rq.ErrorIs(err, writeErr)
	rq.False(set.IsFavorited(ctx, "a"))
}
