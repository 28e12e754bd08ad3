package content

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cardreg.backend/pkg/utils"
)

// LocalStore writes uploads to a directory on disk.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save writes data to a generated file name inside the store directory.
func (s *LocalStore) Save(_ context.Context, data []byte, ext string) (string, error) {
	name := utils.GenerateStoredName(ext)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return path, nil
}

// Remove deletes a stored file. Paths outside the store directory are refused.
func (s *LocalStore) Remove(_ context.Context, path string) error {
	cleaned := filepath.Clean(path)
	if !strings.HasPrefix(cleaned, filepath.Clean(s.dir)+string(filepath.Separator)) {
		return fmt.Errorf("path %q is outside the upload directory", path)
	}
	return os.Remove(cleaned)
}
