package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StoredImage is what the upload returns: an opaque id plus the public URL
// the dashboards render.
type StoredImage struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// ImageStore persists uploaded images and hands back a public reference.
type ImageStore interface {
	Save(ctx context.Context, file *multipart.FileHeader) (*StoredImage, error)
}

// LocalStore writes uploads to a directory served as static files. It
// stands in for the external image host, which is outside this service.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStore) Save(_ context.Context, file *multipart.FileHeader) (*StoredImage, error) {
	ext := filepath.Ext(file.Filename)
	switch strings.ToLower(ext) {
	case ".png", ".jpg", ".jpeg", ".webp":
	default:
		return nil, fmt.Errorf("unsupported image format: %s", ext)
	}

	publicID := uuid.New().String()
	name := publicID + ext

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, fmt.Errorf("failed to write image: %w", err)
	}

	return &StoredImage{
		PublicID: publicID,
		URL:      s.baseURL + "/" + name,
	}, nil
}
