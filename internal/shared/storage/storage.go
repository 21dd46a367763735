package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists uploaded documents and returns a stable URL/path for the
// record. The workflow core only ever stores the returned reference.
type FileStore interface {
	Save(ctx context.Context, key string, data []byte) (string, error)
}

type localFileStore struct {
	dir string
}

// NewLocalFileStore writes files under dir, creating it when missing.
func NewLocalFileStore(dir string) (FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &localFileStore{dir: dir}, nil
}

func (s *localFileStore) Save(_ context.Context, key string, data []byte) (string, error) {
	path := filepath.Join(s.dir, filepath.Clean(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
