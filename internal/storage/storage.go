// Package storage holds the blob backends used for signature images.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/linskybing/projectsign/internal/config"
)

var ErrObjectNotFound = errors.New("object not found")

// Store uploads, downloads and removes objects in a single bucket.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// Open builds the backend selected by STORAGE_DRIVER.
func Open(ctx context.Context) (Store, error) {
	switch strings.ToLower(config.StorageDriver) {
	case "", "minio":
		return NewMinio(ctx, MinioOptions{
			Endpoint:  config.MinioEndpoint,
			AccessKey: config.MinioAccessKey,
			SecretKey: config.MinioSecretKey,
			UseSSL:    config.MinioUseSSL,
			Bucket:    config.SignatureBucket,
			PublicURL: config.StoragePublicURL,
		})
	case "s3":
		return NewS3(ctx, S3Options{
			Region:    config.S3Region,
			Endpoint:  config.S3Endpoint,
			Bucket:    config.SignatureBucket,
			PublicURL: config.StoragePublicURL,
		})
	case "memory":
		return NewMemory(config.StoragePublicURL + "/" + config.SignatureBucket), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", config.StorageDriver)
	}
}

func objectURL(base, bucket, key string) string {
	return strings.TrimRight(base, "/") + "/" + bucket + "/" + key
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("object name cannot be empty")
	}
	return nil
}
