package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/SAP-F-2025/form-builder-service/internal/utils"
)

var ErrBannerNotFound = errors.New("banner not found")

// BannerStore keeps uploaded banner images.
type BannerStore interface {
	Save(ctx context.Context, key, contentType string, data []byte) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

// LocalBannerStore writes banners below a root directory on local disk.
type LocalBannerStore struct {
	root string
}

var _ BannerStore = (*LocalBannerStore)(nil)

func NewLocalBannerStore(root string) (*LocalBannerStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create banner directory: %w", err)
	}
	return &LocalBannerStore{root: root}, nil
}

// Save stores data as <key><ext> and returns the path relative to the root.
func (s *LocalBannerStore) Save(_ context.Context, key, contentType string, data []byte) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid banner key %q", key)
	}
	name := key + utils.GetFileExtensionFromContentType(contentType)

	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create banner file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write banner: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write banner: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.root, name)); err != nil {
		return "", fmt.Errorf("failed to store banner: %w", err)
	}
	return name, nil
}

func (s *LocalBannerStore) Open(_ context.Context, path string) (io.ReadCloser, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrBannerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open banner: %w", err)
	}
	return f, nil
}

// Delete removes a stored banner. Deleting a missing banner is not an error.
func (s *LocalBannerStore) Delete(_ context.Context, path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete banner: %w", err)
	}
	return nil
}

func (s *LocalBannerStore) resolve(path string) (string, error) {
	clean := filepath.Clean(path)
	if path == "" || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid banner path %q", path)
	}
	return filepath.Join(s.root, clean), nil
}
