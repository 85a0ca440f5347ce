// Package localfs stores uploaded media on the local disk.
package localfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/msomdec/mercado-social/internal/domain"
)

// PublicPrefix is the URL prefix under which stored files are served.
const PublicPrefix = "/uploads/"

// FileStore implements domain.FileStore with one directory per media kind
// below a base directory.
type FileStore struct {
	baseDir string
}

var _ domain.FileStore = (*FileStore)(nil)

// New creates the base directory and one subdirectory per media kind.
func New(baseDir string) (*FileStore, error) {
	for _, kind := range []domain.MediaKind{domain.MediaPost, domain.MediaProduct, domain.MediaProfile} {
		if err := os.MkdirAll(filepath.Join(baseDir, string(kind)), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir %s: %w", kind, err)
		}
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Dir returns the base directory, for serving the files over HTTP.
func (s *FileStore) Dir() string {
	return s.baseDir
}

func (s *FileStore) Save(ctx context.Context, kind domain.MediaKind, name string, data io.Reader) (string, error) {
	if name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: invalid file name %q", domain.ErrInvalidInput, name)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dst := filepath.Join(s.baseDir, string(kind), name)
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(f, data); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("close upload file: %w", err)
	}

	return PublicPrefix + path.Join(string(kind), name), nil
}

// Delete removes the file referenced by a public path. Missing files are ignored.
func (s *FileStore) Delete(_ context.Context, publicPath string) error {
	rel, ok := strings.CutPrefix(publicPath, PublicPrefix)
	if !ok || !fs.ValidPath(rel) {
		return fmt.Errorf("%w: not an upload path %q", domain.ErrInvalidInput, publicPath)
	}
	err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete upload file: %w", err)
	}
	return nil
}
