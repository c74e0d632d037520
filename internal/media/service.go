package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/turfbook/ground-booking-backend/internal/pkg/storage"
)

const (
	maxUploadSize   = 10 << 20 // 10 MiB
	thumbnailWidth  = 200
	thumbnailHeight = 200
)

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Upload describes an incoming file upload.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Download carries a stored file's content and metadata for serving.
type Download struct {
	Content     io.ReadCloser
	ContentType string
	Filename    string
}

type Service interface {
	Upload(ctx context.Context, userID string, up Upload) (*File, error)
	GetByID(ctx context.Context, id string) (*File, error)
	Open(ctx context.Context, id string) (*Download, error)
	OpenThumbnail(ctx context.Context, id string) (*Download, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo      Repository
	store     storage.Storage
	processor *storage.ImageProcessor
}

func NewService(repo Repository, store storage.Storage, processor *storage.ImageProcessor) Service {
	return &service{repo: repo, store: store, processor: processor}
}

// Upload validates, stores and records an image. A thumbnail is generated on a
// best-effort basis; the upload succeeds even when thumbnailing fails.
func (s *service) Upload(ctx context.Context, userID string, up Upload) (*File, error) {
	ext, ok := allowedContentTypes[up.ContentType]
	if !ok {
		return nil, ErrNotAnImage
	}
	if up.Size > maxUploadSize {
		return nil, ErrTooLarge
	}

	content, err := io.ReadAll(io.LimitReader(up.Content, maxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload failed: %w", err)
	}
	if int64(len(content)) > maxUploadSize {
		return nil, ErrTooLarge
	}

	id := uuid.New().String()
	storagePath := filepath.Join("upload", id[:2], id+ext)

	if err := s.store.Save(ctx, storagePath, bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("save file failed: %w", err)
	}

	var thumbnailPath *string
	if thumb, err := s.processor.GenerateThumbnail(bytes.NewReader(content), thumbnailWidth, thumbnailHeight); err != nil {
		log.Printf("generate thumbnail for %s failed: %v", id, err)
	} else {
		path := filepath.Join("upload", id[:2], id+"_thumb.jpg")
		if err := s.store.Save(ctx, path, thumb); err != nil {
			log.Printf("save thumbnail for %s failed: %v", id, err)
		} else {
			thumbnailPath = &path
		}
	}

	f := &File{
		ID:            id,
		UserID:        userID,
		Filename:      sanitizeFilename(up.Filename),
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   up.ContentType,
		Size:          int64(len(content)),
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, f); err != nil {
		// Roll back the stored blobs so orphans don't pile up.
		if derr := s.store.Delete(ctx, storagePath); derr != nil {
			log.Printf("cleanup file %s failed: %v", id, derr)
		}
		if thumbnailPath != nil {
			if derr := s.store.Delete(ctx, *thumbnailPath); derr != nil {
				log.Printf("cleanup thumbnail %s failed: %v", id, derr)
			}
		}
		return nil, err
	}

	return f, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*File, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Open(ctx context.Context, id string) (*Download, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	content, err := s.store.Get(ctx, f.StoragePath)
	if err != nil {
		return nil, ErrNotFound
	}

	return &Download{Content: content, ContentType: f.ContentType, Filename: f.Filename}, nil
}

func (s *service) OpenThumbnail(ctx context.Context, id string) (*Download, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.ThumbnailPath == nil {
		return nil, ErrNoThumbnail
	}

	content, err := s.store.Get(ctx, *f.ThumbnailPath)
	if err != nil {
		return nil, ErrNoThumbnail
	}

	return &Download{Content: content, ContentType: "image/jpeg", Filename: f.Filename}, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if derr := s.store.Delete(ctx, f.StoragePath); derr != nil {
		log.Printf("delete file %s blob failed: %v", id, derr)
	}
	if f.ThumbnailPath != nil {
		if derr := s.store.Delete(ctx, *f.ThumbnailPath); derr != nil {
			log.Printf("delete thumbnail %s blob failed: %v", id, derr)
		}
	}
	return nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "\"", "")
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	return name
}
