package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalImageStore writes uploaded product images under Dir and serves them
// from BaseURL.
type LocalImageStore struct {
	Dir     string
	BaseURL string
}

func NewLocalImageStore(dir, baseURL string) *LocalImageStore {
	return &LocalImageStore{Dir: dir, BaseURL: baseURL}
}

func (s *LocalImageStore) Save(filename string, src io.Reader) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	dst, err := os.Create(filepath.Join(s.Dir, filename))
	if err != nil {
		return "", fmt.Errorf("create %s: %w", filename, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write %s: %w", filename, err)
	}
	return s.BaseURL + "/" + filename, nil
}
