package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const collectionFileExt = ".json"

// FileBackend stores each key as <Dir>/<key>.json.
type FileBackend struct {
	Dir string
}

func (f FileBackend) Ensure() error {
	return os.MkdirAll(f.Dir, 0o755)
}

func (f FileBackend) path(key string) string {
	return filepath.Join(f.Dir, key+collectionFileExt)
}

// keyForPath maps a file in Dir back to its collection key.
func (f FileBackend) keyForPath(path string) (string, bool) {
	if filepath.Clean(filepath.Dir(path)) != filepath.Clean(f.Dir) {
		return "", false
	}
	base := filepath.Base(path)
	if !strings.HasSuffix(base, collectionFileExt) {
		return "", false
	}
	key := strings.TrimSuffix(base, collectionFileExt)
	if key == "" || strings.HasPrefix(key, ".") {
		return "", false
	}
	return key, true
}

func (f FileBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	if strings.TrimSpace(f.Dir) == "" {
		return nil, false, errors.New("file backend: missing dir")
	}
	b, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

// Put writes atomically via a temp file and rename so readers never see a partial payload.
func (f FileBackend) Put(_ context.Context, key string, b []byte) error {
	if strings.TrimSpace(f.Dir) == "" {
		return errors.New("file backend: missing dir")
	}
	if err := f.Ensure(); err != nil {
		return err
	}
	path := f.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return os.Rename(tmp, path)
}
