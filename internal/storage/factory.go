package storage

import (
	"fmt"
	"strings"

	"github.com/nithin2k5/Arbeit/internal/config"
)

// NewStorage creates an ObjectStorage instance based on the configuration.
// Parameters:
//   - cfg: storage configuration including provider, endpoint, and bucket.
// Returns:
//   - ObjectStorage: initialized storage backend.
//   - error: non-nil if the backend cannot be created.
func NewStorage(cfg *config.StorageConfig) (ObjectStorage, error) {
	provider := strings.ToLower(cfg.Provider)
	if provider == "" {
		provider = detectProvider(cfg.Endpoint)
	}

	switch provider {
	case "s3", "r2", "s3compatible":
		return NewS3Storage(&S3Config{
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			UseSSL:    cfg.UseSSL,
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
		})
	case "minio":
		return NewMinIOStorage(&MinIOConfig{
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			UseSSL:    cfg.UseSSL,
			Bucket:    cfg.Bucket,
		})
	case "local":
		return NewLocalStorage(&LocalConfig{
			Dir:       cfg.LocalDir,
			ChunkSize: cfg.ChunkSize,
		})
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}

// detectProvider attempts to detect the storage provider from the endpoint
func detectProvider(endpoint string) string {
	endpoint = strings.ToLower(endpoint)

	switch {
	case endpoint == "":
		return "local"
	case strings.Contains(endpoint, "r2.cloudflarestorage.com"):
		return "r2"
	case strings.Contains(endpoint, "amazonaws.com"):
		return "s3"
	default:
		return "s3compatible"
	}
}
