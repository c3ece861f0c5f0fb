package helpers

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// NewGCSClient creates a Google Cloud Storage client. If credsPath is empty, ADC is used.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// BucketUploader returns an upload func bound to one bucket, in the shape the
// avatar service expects.
func BucketUploader(client *storage.Client, bucket string) func(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	return func(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
		return UploadObject(ctx, client, bucket, objectPath, contentType, r)
	}
}

// UploadObject streams r into bucket/objectPath and returns its public URL.
// Avatars are immutable (fresh object name per upload) so they cache long.
func UploadObject(ctx context.Context, client *storage.Client, bucket, objectPath, contentType string, r io.Reader) (string, error) {
	wc := client.Bucket(bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "public, max-age=31536000, immutable"
	wc.ChunkSize = 0 // small files: single request
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("upload %s: %w", objectPath, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("finalize %s: %w", objectPath, err)
	}
	return PublicURL(bucket, objectPath), nil
}

// PublicURL builds the public URL of an object, escaping each path segment.
func PublicURL(bucket, objectPath string) string {
	parts := strings.Split(objectPath, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, strings.Join(parts, "/"))
}
