package domain

import (
	"context"
	"io"
)

// MediaKind selects the upload directory a file is stored under.
type MediaKind string

const (
	MediaPost    MediaKind = "posts"
	MediaProduct MediaKind = "products"
	MediaProfile MediaKind = "profile"
)

// FileStore abstracts raw file byte storage for uploads.
type FileStore interface {
	// Save stores data under kind/name and returns the public path of the file.
	Save(ctx context.Context, kind MediaKind, name string, data io.Reader) (string, error)
	Delete(ctx context.Context, publicPath string) error
}
