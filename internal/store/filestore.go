package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps each collection in a JSON file under a data directory.
// A per-collection mutex is held for the whole read-modify-write cycle, so
// concurrent updates to the same collection serialize instead of losing
// writes. Files are replaced via write-temp-then-rename.
type FileStore struct {
	dir   string
	mu    sync.Mutex
	locks map[Collection]*sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir, locks: make(map[Collection]*sync.Mutex)}, nil
}

func (s *FileStore) lock(col Collection) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[col]
	if !ok {
		l = &sync.Mutex{}
		s.locks[col] = l
	}
	return l
}

func (s *FileStore) path(col Collection) string {
	return filepath.Join(s.dir, string(col)+".json")
}

func (s *FileStore) Read(ctx context.Context, col Collection) ([]byte, error) {
	l := s.lock(col)
	l.Lock()
	defer l.Unlock()
	return s.read(col)
}

func (s *FileStore) read(col Collection) ([]byte, error) {
	data, err := os.ReadFile(s.path(col))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", col, err)
	}
	return data, nil
}

func (s *FileStore) Update(ctx context.Context, col Collection, fn func(current []byte) ([]byte, error)) error {
	l := s.lock(col)
	l.Lock()
	defer l.Unlock()

	current, err := s.read(col)
	if err != nil {
		return err
	}
	next, err := fn(current)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, string(col)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("write collection %s: %w", col, err)
	}
	if _, err := tmp.Write(next); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write collection %s: %w", col, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write collection %s: %w", col, err)
	}
	if err := os.Rename(tmp.Name(), s.path(col)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace collection %s: %w", col, err)
	}
	return nil
}
