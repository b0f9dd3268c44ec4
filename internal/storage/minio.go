package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"dreamreel/internal/domain"
)

// MinioOptions configures the MinIO-backed blob store.
type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// BaseURL overrides the public URL prefix. When empty, URLs are derived
	// from the endpoint and bucket, which requires a public-read policy.
	BaseURL string
}

// MinioStore persists uploads in a MinIO (or S3-compatible) bucket.
type MinioStore struct {
	client *minio.Client
	opts   MinioOptions
}

// NewMinioStore connects to the configured MinIO endpoint.
func NewMinioStore(opts MinioOptions) (*MinioStore, error) {
	if strings.TrimSpace(opts.Endpoint) == "" {
		return nil, fmt.Errorf("storage: minio endpoint is required")
	}
	if strings.TrimSpace(opts.Bucket) == "" {
		return nil, fmt.Errorf("storage: minio bucket is required")
	}
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: minio client: %w", err)
	}
	return &MinioStore{client: client, opts: opts}, nil
}

// Upload writes the object and returns its public URL.
func (s *MinioStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	cleanKey, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	if err := s.ensureBucket(ctx); err != nil {
		return "", fmt.Errorf("storage: ensure bucket: %w", err)
	}
	_, err = s.client.PutObject(ctx, s.opts.Bucket, cleanKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("storage: put object: %w", err)
	}
	return s.publicURL(cleanKey), nil
}

func (s *MinioStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.opts.Bucket)
	if err != nil {
		return err
	}
	if !exists {
		return s.client.MakeBucket(ctx, s.opts.Bucket, minio.MakeBucketOptions{})
	}
	return nil
}

func (s *MinioStore) publicURL(key string) string {
	if s.opts.BaseURL != "" {
		return strings.TrimRight(s.opts.BaseURL, "/") + "/" + key
	}
	scheme := "http://"
	if s.opts.UseSSL {
		scheme = "https://"
	}
	return scheme + s.opts.Endpoint + "/" + s.opts.Bucket + "/" + key
}

var _ domain.BlobStore = (*MinioStore)(nil)
