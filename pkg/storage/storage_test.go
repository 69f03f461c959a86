package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystemRoundTrip(t *testing.T) {
	ctx := context.Background()
	fs := NewMemoryFileSystem("http://localhost:3000/uploads")

	url, err := fs.Put(ctx, "covers", "abc.png", "image/png", []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/uploads/covers/abc.png", url)
	assert.True(t, fs.Owns(url))
	assert.True(t, fs.Exists(url))

	require.NoError(t, fs.Delete(ctx, url))
	assert.False(t, fs.Exists(url))
	// Second delete is a no-op.
	require.NoError(t, fs.Delete(ctx, url))
}

func TestFileSystemRejectsForeignURLs(t *testing.T) {
	fs := NewMemoryFileSystem("http://localhost:3000/uploads")

	assert.False(t, fs.Owns("https://images.unsplash.com/photo.jpg"))
	assert.False(t, fs.Owns("http://localhost:3000/uploads/../secrets"))
	assert.Error(t, fs.Delete(context.Background(), "https://images.unsplash.com/photo.jpg"))
}

func TestFileSystemFlattensFilename(t *testing.T) {
	fs := NewMemoryFileSystem("/uploads")
	url, err := fs.Put(context.Background(), "covers", "../../etc/passwd", "text/plain", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/covers/passwd", url)
}

func TestS3Storage(t *testing.T) {
	var mu sync.Mutex
	objects := map[string]string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch r.Method {
		case http.MethodPut:
			objects[r.URL.Path] = r.Header.Get("Content-Type")
			w.WriteHeader(http.StatusOK)
		case http.MethodDelete:
			delete(objects, r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	s, err := NewS3Storage(ctx, S3Config{
		Bucket:    "covers-bucket",
		Region:    "us-east-1",
		Endpoint:  srv.URL,
		AccessKey: "key",
		SecretKey: "secret",
	})
	require.NoError(t, err)

	url, err := s.Put(ctx, "covers", "n1.webp", "image/webp", []byte("img"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, srv.URL+"/covers-bucket/covers/"))
	assert.True(t, s.Owns(url))

	mu.Lock()
	assert.Equal(t, "image/webp", objects["/covers-bucket/covers/n1.webp"])
	mu.Unlock()

	require.NoError(t, s.Delete(ctx, url))
	mu.Lock()
	assert.Empty(t, objects)
	mu.Unlock()
}
