package kvstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File persists each namespace as <dir>/<namespace>.json. Writes go
// through a temp file plus rename so a crashed write never leaves a
// half-written namespace behind.
type File struct {
	dir string
	mu  sync.Mutex
}

// NewFile creates the data directory if needed and returns a file store.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, fmt.Errorf("kvstore: data directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("kvstore: create data dir: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(namespace string) string {
	return filepath.Join(f.dir, namespace+".json")
}

func (f *File) Read(ctx context.Context, namespace string) ([]byte, error) {
	if err := validateNamespace(namespace); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	payload, err := os.ReadFile(f.path(namespace))
	if os.IsNotExist(err) {
		return nil, ErrNamespaceEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("kvstore: read %s: %w", namespace, err)
	}
	return payload, nil
}

func (f *File) Write(ctx context.Context, namespace string, payload []byte) error {
	if err := validateNamespace(namespace); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := os.CreateTemp(f.dir, namespace+"-*.tmp")
	if err != nil {
		return fmt.Errorf("kvstore: create temp for %s: %w", namespace, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("kvstore: write temp for %s: %w", namespace, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("kvstore: close temp for %s: %w", namespace, err)
	}
	if err := os.Rename(tmpName, f.path(namespace)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("kvstore: publish %s: %w", namespace, err)
	}
	return nil
}

func (f *File) Ping(ctx context.Context) error {
	info, err := os.Stat(f.dir)
	if err != nil {
		return fmt.Errorf("kvstore: data dir unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("kvstore: %s is not a directory", f.dir)
	}
	return nil
}

func (f *File) Close() error {
	return nil
}
