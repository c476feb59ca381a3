package service

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/thoughtcloud/thoughtcloud/internal/config"
)

const maxUploadSize = 5 << 20 // 5 MiB

var (
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrTooLarge         = errors.New("file too large")
)

// Canonical extension per accepted content type. File names never derive
// from the uploaded name, so user input cannot collide or traverse paths.
var mediaExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
}

// Upload is a staged client upload as extracted at the HTTP boundary.
type Upload struct {
	ContentType string
	Size        int64
	Data        io.Reader
}

// BlobStore persists media bytes under an opaque name. Removing a name that
// does not exist is not an error.
type BlobStore interface {
	Put(ctx context.Context, name, contentType string, data io.Reader) error
	Remove(ctx context.Context, name string) error
}

// MediaService stages uploaded images, assigns them collision-resistant
// names, and derives their public URLs.
type MediaService struct {
	store   BlobStore
	baseURL string
}

func NewMediaService(store BlobStore, publicBaseURL string) *MediaService {
	return &MediaService{store: store, baseURL: publicBaseURL}
}

// Attach validates and persists an upload, returning the opaque file ref.
func (s *MediaService) Attach(ctx context.Context, upload *Upload) (string, error) {
	ext, ok := mediaExtensions[upload.ContentType]
	if !ok {
		return "", ErrUnsupportedMedia
	}
	if upload.Size > maxUploadSize {
		return "", ErrTooLarge
	}

	name := uuid.New().String() + ext
	if err := s.store.Put(ctx, name, upload.ContentType, upload.Data); err != nil {
		return "", err
	}
	return name, nil
}

// Replace attaches the new upload, then releases the old ref best-effort.
// A failed release never rolls back the new attachment.
func (s *MediaService) Replace(ctx context.Context, oldRef string, upload *Upload) (string, error) {
	ref, err := s.Attach(ctx, upload)
	if err != nil {
		return "", err
	}
	s.Release(ctx, oldRef)
	return ref, nil
}

// Release deletes the backing bytes. Failures are logged, never propagated;
// a missing file on delete is not an error.
func (s *MediaService) Release(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := s.store.Remove(ctx, ref); err != nil {
		log.Printf("failed to release media file %s: %v", ref, err)
	}
}

// URL derives the public URL for a ref, nil when the ref is unset.
func (s *MediaService) URL(ref string) *string {
	if ref == "" {
		return nil
	}
	url := s.baseURL + "/uploads/" + ref
	return &url
}

// LocalBlobStore keeps media files in a server-controlled directory, served
// statically at /uploads.
type LocalBlobStore struct {
	dir string
}

func NewLocalBlobStore(cfg config.MediaConfig) (*LocalBlobStore, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, err
	}
	return &LocalBlobStore{dir: cfg.UploadDir}, nil
}

func (s *LocalBlobStore) Put(ctx context.Context, name, contentType string, data io.Reader) error {
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *LocalBlobStore) Remove(ctx context.Context, name string) error {
	err := os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
