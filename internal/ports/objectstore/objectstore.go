package objectstore

import (
	"context"
	"encoding/base64"
	"strings"

	"xclone/internal/core/apperr"
)

// Folders under which images are stored.
const (
	FolderPosts    = "posts"
	FolderProfiles = "profiles"
)

var ErrInvalidImage = apperr.NewValidationError("img", "img must be a base64 image data URI")

// ImageStore persists images outside the database and hands back a stable URL.
type ImageStore interface {
	Upload(ctx context.Context, folder string, img *Image) (string, error)
	// Delete removes the object behind a URL previously returned by Upload.
	Delete(ctx context.Context, url string) error
}

type Image struct {
	Data        []byte
	ContentType string
}

// ParseDataURI decodes "data:image/png;base64,...." payloads as sent by the
// web client. An empty string yields a nil image.
func ParseDataURI(s string) (*Image, error) {
	if s == "" {
		return nil, nil
	}
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, ErrInvalidImage
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, ErrInvalidImage
	}
	contentType, encoding, _ := strings.Cut(meta, ";")
	if encoding != "base64" || !strings.HasPrefix(contentType, "image/") {
		return nil, ErrInvalidImage
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return nil, ErrInvalidImage
	}
	return &Image{Data: data, ContentType: contentType}, nil
}
