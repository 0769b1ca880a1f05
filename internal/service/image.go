package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"path"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/recipe-api/backend/internal/storage"
	"github.com/pageza/recipe-api/backend/internal/types"
)

const (
	// MaxImageSize bounds uploads before decoding.
	MaxImageSize = 10 << 20
	// maxImageDimension is the longest side kept after resizing.
	maxImageDimension = 2048
	// MaxImagePixels bounds the decoded size. A small compressed file can declare huge dimensions.
	MaxImagePixels = 40_000_000
	imageKeyPrefix    = "uploads/recipe"
)

var imageContentTypes = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
}

var imageExtensions = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"gif":  ".gif",
	"bmp":  ".bmp",
	"tiff": ".tiff",
}

// ImageService validates uploaded pictures, normalizes them and hands them to a FileStore
type ImageService struct {
	store storage.FileStore
	log   *zap.Logger
}

// NewImageService creates a new ImageService instance
func NewImageService(store storage.FileStore, log *zap.Logger) *ImageService {
	return &ImageService{store: store, log: log}
}

// Store decodes data, rejects anything that is not an image, and saves a re-encoded copy under
// a fresh key. The returned key is what the recipe row keeps.
func (s *ImageService) Store(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", types.NewValidationError("image", "The submitted file is empty.")
	}
	if len(data) > MaxImageSize {
		return "", types.NewValidationError("image", fmt.Sprintf("The submitted file exceeds %d MB.", MaxImageSize>>20))
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", types.NewValidationError("image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return "", types.NewValidationError("image", fmt.Sprintf("Image dimensions %dx%d exceed %d megapixels.", cfg.Width, cfg.Height, MaxImagePixels/1_000_000))
	}
	contentType, ok := imageContentTypes[format]
	if !ok {
		return "", types.NewValidationError("image", fmt.Sprintf("Unsupported image format %q.", format))
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", types.NewValidationError("image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	}
	img = imaging.Fit(img, maxImageDimension, maxImageDimension, imaging.Lanczos)

	encFormat, err := imaging.FormatFromExtension(format)
	if err != nil {
		return "", fmt.Errorf("resolve image format: %w", err)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, encFormat); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	key := path.Join(imageKeyPrefix, uuid.NewString()+imageExtensions[format])
	if err := s.store.Save(ctx, key, contentType, buf.Bytes()); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}

	s.log.Debug("image stored",
		zap.String("key", key),
		zap.String("original_name", filename),
		zap.Int("bytes", buf.Len()),
	)
	return key, nil
}

func (s *ImageService) Delete(ctx context.Context, key string) error {
	return s.store.Delete(ctx, key)
}

func (s *ImageService) URL(ctx context.Context, key string) (string, error) {
	return s.store.URL(ctx, key)
}
