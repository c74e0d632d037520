package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turfbook/ground-booking-backend/internal/pkg/storage"
)

// memoryStorage is an in-memory storage.Storage.
type memoryStorage struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{blobs: make(map[string][]byte)}
}

func (s *memoryStorage) Save(ctx context.Context, path string, content io.Reader) error {
	raw, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[path] = raw
	return nil
}

func (s *memoryStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.blobs[path]
	if !ok {
		return nil, fmt.Errorf("not found: %s", path)
	}
	return io.NopCloser(bytes.NewReader(raw)), nil
}

func (s *memoryStorage) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, path)
	return nil
}

// memoryRepo is an in-memory Repository.
type memoryRepo struct {
	files     map[string]*File
	createErr error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{files: make(map[string]*File)}
}

func (r *memoryRepo) Create(ctx context.Context, f *File) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *f
	r.files[f.ID] = &cp
	return nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id string) (*File, error) {
	f, ok := r.files[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *memoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.files[id]; !ok {
		return ErrNotFound
	}
	delete(r.files, id)
	return nil
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func pngUpload(t *testing.T, raw []byte) Upload {
	return Upload{
		Filename:    "court.png",
		ContentType: "image/png",
		Size:        int64(len(raw)),
		Content:     bytes.NewReader(raw),
	}
}

func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("stores image with thumbnail", func(t *testing.T) {
		repo := newMemoryRepo()
		store := newMemoryStorage()
		svc := NewService(repo, store, storage.NewImageProcessor())

		raw := pngBytes(t)
		f, err := svc.Upload(ctx, "user-1", pngUpload(t, raw))
		require.NoError(t, err)

		assert.NotEmpty(t, f.ID)
		assert.Equal(t, "court.png", f.Filename)
		assert.Equal(t, int64(len(raw)), f.Size)
		require.NotNil(t, f.ThumbnailPath)
		assert.Len(t, store.blobs, 2)

		// Stored paths are sharded under the first two id characters.
		assert.True(t, strings.Contains(f.StoragePath, f.ID[:2]))
	})

	t.Run("rejects non-image content types", func(t *testing.T) {
		svc := NewService(newMemoryRepo(), newMemoryStorage(), storage.NewImageProcessor())

		up := pngUpload(t, pngBytes(t))
		up.ContentType = "application/pdf"
		_, err := svc.Upload(ctx, "user-1", up)
		assert.ErrorIs(t, err, ErrNotAnImage)
	})

	t.Run("rejects oversized declared size", func(t *testing.T) {
		svc := NewService(newMemoryRepo(), newMemoryStorage(), storage.NewImageProcessor())

		up := pngUpload(t, pngBytes(t))
		up.Size = maxUploadSize + 1
		_, err := svc.Upload(ctx, "user-1", up)
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("cleans up blobs when the record insert fails", func(t *testing.T) {
		repo := newMemoryRepo()
		repo.createErr = fmt.Errorf("db down")
		store := newMemoryStorage()
		svc := NewService(repo, store, storage.NewImageProcessor())

		_, err := svc.Upload(ctx, "user-1", pngUpload(t, pngBytes(t)))
		require.Error(t, err)
		assert.Empty(t, store.blobs)
	})

	t.Run("succeeds without thumbnail on undecodable image", func(t *testing.T) {
		repo := newMemoryRepo()
		store := newMemoryStorage()
		svc := NewService(repo, store, storage.NewImageProcessor())

		up := Upload{
			Filename:    "broken.png",
			ContentType: "image/png",
			Size:        5,
			Content:     strings.NewReader("xxxxx"),
		}
		f, err := svc.Upload(ctx, "user-1", up)
		require.NoError(t, err)
		assert.Nil(t, f.ThumbnailPath)
		assert.Len(t, store.blobs, 1)
	})
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	store := newMemoryStorage()
	svc := NewService(repo, store, storage.NewImageProcessor())

	raw := pngBytes(t)
	f, err := svc.Upload(ctx, "user-1", pngUpload(t, raw))
	require.NoError(t, err)

	t.Run("original round-trips", func(t *testing.T) {
		dl, err := svc.Open(ctx, f.ID)
		require.NoError(t, err)
		defer dl.Content.Close()

		got, err := io.ReadAll(dl.Content)
		require.NoError(t, err)
		assert.Equal(t, raw, got)
		assert.Equal(t, "image/png", dl.ContentType)
	})

	t.Run("thumbnail is jpeg", func(t *testing.T) {
		dl, err := svc.OpenThumbnail(ctx, f.ID)
		require.NoError(t, err)
		defer dl.Content.Close()
		assert.Equal(t, "image/jpeg", dl.ContentType)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Open(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	store := newMemoryStorage()
	svc := NewService(repo, store, storage.NewImageProcessor())

	f, err := svc.Upload(ctx, "user-1", pngUpload(t, pngBytes(t)))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, f.ID))
	assert.Empty(t, store.blobs)

	_, err = svc.GetByID(ctx, f.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
