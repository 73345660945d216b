package persistence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"nycschools/internal/domain"
	"nycschools/pkg/errcodes"
	"nycschools/pkg/logx"
)

// FileStore keeps every slot in one JSON document on disk:
//
//	{"favorited-school-ids": ["01M292", "02M047"]}
//
// Writes go through a temp file and rename.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get reads the whole document on every call so edits by other processes
// are visible. A missing file means no slot was ever written.
func (s *FileStore) Get(ctx context.Context, key string) ([]string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.read()
	if err != nil {
		return nil, false, domain.WrapError(err, errcodes.StorageError, "persistence.FileStore.Get")
	}

	ids, ok := slots[key]

	logger(ctx).Debug("favorite slot read", slog.String(logx.FieldBackend, "file"), slog.Int(logx.FieldCount, len(ids)))

	return ids, ok, nil
}

// Set rewrites the document with key replaced.
func (s *FileStore) Set(_ context.Context, key string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.read()
	if err != nil {
		return domain.WrapError(err, errcodes.StorageError, "persistence.FileStore.Set")
	}

	if ids == nil {
		ids = []string{}
	}

	slots[key] = ids

	if err := s.write(slots); err != nil {
		return domain.WrapError(err, errcodes.StorageError, "persistence.FileStore.Set")
	}

	return nil
}

func (s *FileStore) read() (map[string][]string, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string][]string), nil
	}

	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	slots := make(map[string][]string)

	if len(b) == 0 {
		return slots, nil
	}

	if err := json.Unmarshal(b, &slots); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return slots, nil
}

func (s *FileStore) write(slots map[string][]string) error {
	b, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	dir := filepath.Dir(s.path)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %w", err)
	}

	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("tmp.Write: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tmp.Close: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("os.Rename: %w", err)
	}

	return nil
}
