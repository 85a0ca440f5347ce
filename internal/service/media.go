package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/msomdec/mercado-social/internal/domain"
)

// MaxUploadSize is the largest accepted upload in bytes.
const MaxUploadSize = 5 << 20

const maxBaseNameLen = 64

// Upload is a file received with a request.
type Upload struct {
	Filename string
	Data     []byte
}

// MediaService validates uploaded images and hands them to the file store.
type MediaService struct {
	files domain.FileStore
}

// NewMediaService creates a new MediaService.
func NewMediaService(files domain.FileStore) *MediaService {
	return &MediaService{files: files}
}

// Save checks that the upload is an image within MaxUploadSize and stores it
// under a unique name. It returns the public path of the stored file.
func (s *MediaService) Save(ctx context.Context, kind domain.MediaKind, up *Upload) (string, error) {
	if len(up.Data) == 0 {
		return "", fmt.Errorf("%w: file is empty", domain.ErrInvalidInput)
	}
	if len(up.Data) > MaxUploadSize {
		return "", fmt.Errorf("%w: file exceeds 5MB limit", domain.ErrInvalidInput)
	}

	contentType := http.DetectContentType(up.Data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: only image uploads are allowed, got %s", domain.ErrInvalidInput, contentType)
	}

	path, err := s.files.Save(ctx, kind, storedName(up.Filename), bytes.NewReader(up.Data))
	if err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return path, nil
}

// Discard removes a stored file whose owning record could not be written.
func (s *MediaService) Discard(ctx context.Context, publicPath string) {
	if err := s.files.Delete(ctx, publicPath); err != nil {
		slog.Warn("discard upload", "path", publicPath, "error", err)
	}
}

// storedName keeps a readable prefix of the client file name and makes it
// unique with a random suffix, e.g. "Summer Sale.PNG" becomes
// "summer_sale-<uuid>.png".
func storedName(filename string) string {
	base := filepath.Base(filepath.ToSlash(filename))
	ext := strings.ToLower(filepath.Ext(base))
	base = strings.TrimSuffix(base, filepath.Ext(base))

	var b strings.Builder
	for _, r := range strings.ToLower(base) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '.':
			b.WriteRune('_')
		}
		if b.Len() >= maxBaseNameLen {
			break
		}
	}
	clean := b.String()
	if clean == "" {
		clean = "upload"
	}

	if !isSafeExt(ext) {
		ext = ""
	}
	return clean + "-" + uuid.NewString() + ext
}

func isSafeExt(ext string) bool {
	if len(ext) < 2 || len(ext) > 6 {
		return false
	}
	for _, r := range ext[1:] {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}
