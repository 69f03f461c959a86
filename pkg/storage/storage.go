// Package storage keeps uploaded cover images in a local directory or an
// S3-compatible bucket.
package storage

import (
	"context"
	"path"
	"strings"
)

type ObjectStorage interface {
	// Put stores data under subdir/filename and returns its public URL.
	Put(ctx context.Context, subdir, filename, contentType string, data []byte) (string, error)
	// Delete removes the object behind url. Deleting a missing object is not an error.
	Delete(ctx context.Context, url string) error
	// Owns reports whether url points into this storage.
	Owns(url string) bool
}

func objectKey(subdir, filename string) string {
	return path.Join(subdir, path.Base(filename))
}

// keyFromURL strips base from url. ok is false when url is not under base or
// would escape it.
func keyFromURL(base, url string) (string, bool) {
	prefix := strings.TrimRight(base, "/") + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := path.Clean(strings.TrimPrefix(url, prefix))
	if key == "." || strings.HasPrefix(key, "..") {
		return "", false
	}
	return key, true
}
