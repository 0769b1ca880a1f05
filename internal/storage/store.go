package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pageza/recipe-api/backend/config"
)

// ErrInvalidKey is returned for object keys that would escape the store root.
var ErrInvalidKey = errors.New("invalid object key")

// FileStore persists uploaded files under a key and resolves the URL clients fetch them from.
type FileStore interface {
	Save(ctx context.Context, key, contentType string, data []byte) error
	Delete(ctx context.Context, key string) error
	URL(ctx context.Context, key string) (string, error)
}

// New builds the store selected by STORAGE_BACKEND.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (FileStore, error) {
	switch cfg.StorageBackend {
	case config.StorageS3:
		s3Cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, err
		}
		log.Info("using s3 image storage", zap.String("bucket", s3Cfg.BucketName))
		return NewS3Store(s3Cfg, cfg.S3PresignTTL), nil
	case config.StorageLocal, "":
		log.Info("using local image storage", zap.String("root", cfg.MediaRoot))
		return NewLocalStore(cfg.MediaRoot, cfg.MediaURL)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
