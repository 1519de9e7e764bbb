package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/Beyond-Company/Ticketing-backend/internal/config"
)

// FileStore abstracts attachment blob storage. Stored names are opaque
// object keys generated by the caller; metadata lives in Postgres.
type FileStore interface {
	Save(ctx context.Context, storedName string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, storedName string) (io.ReadCloser, error)
	Delete(ctx context.Context, storedName string) error
}

// New builds the backend named by STORAGE_BACKEND.
func New(cfg config.StorageConfig) (FileStore, error) {
	switch cfg.Backend {
	case "disk", "":
		return NewDiskStore(cfg.UploadDir)
	case "s3", "minio":
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
