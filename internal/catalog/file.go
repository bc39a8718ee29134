package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/gdg-garage/safari-trip-api/internal/models"
	"github.com/spf13/afero"
)

// FileStore keeps the catalog as one indented JSON document.
type FileStore struct {
	fs   afero.Fs
	path string
}

func NewFileStore(fsys afero.Fs, path string) *FileStore {
	return &FileStore{fs: fsys, path: path}
}

func (s *FileStore) Load(ctx context.Context) ([]models.Trip, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.Trip{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("catalog.FileStore.Load: %w: %v", models.ErrCatalogUnavailable, err)
	}

	trips := []models.Trip{}
	if len(data) == 0 {
		return trips, nil
	}
	if err := json.Unmarshal(data, &trips); err != nil {
		return nil, fmt.Errorf("catalog.FileStore.Load: %w: parse %s: %v", models.ErrCatalogUnavailable, s.path, err)
	}
	return trips, nil
}

// Save writes to a temporary file in the target directory and renames it
// over the catalog, so readers see either the old or the new document.
func (s *FileStore) Save(ctx context.Context, trips []models.Trip) error {
	if trips == nil {
		trips = []models.Trip{}
	}
	data, err := json.MarshalIndent(trips, "", "  ")
	if err != nil {
		return fmt.Errorf("catalog.FileStore.Save: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("catalog.FileStore.Save: %w", err)
	}

	tmp, err := afero.TempFile(s.fs, dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("catalog.FileStore.Save: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		s.fs.Remove(tmpName)
		return fmt.Errorf("catalog.FileStore.Save: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		s.fs.Remove(tmpName)
		return fmt.Errorf("catalog.FileStore.Save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("catalog.FileStore.Save: %w", err)
	}
	if err := s.fs.Rename(tmpName, s.path); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("catalog.FileStore.Save: %w", err)
	}
	return nil
}
