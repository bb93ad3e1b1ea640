package media

import (
	"bytes"
	"context"
	"fmt"

	"game-catalog/core/storage"
	"game-catalog/feature/media/models"

	"github.com/minio/minio-go/v7"
)

// Sink receives processed assets.
type Sink interface {
	Save(ctx context.Context, asset models.ImageAsset, data []byte) error
}

// StorageSink writes assets to the object store at their deterministic key,
// so a repeated event overwrites the earlier object.
type StorageSink struct {
	client storage.Client
	bucket string
	prefix string
}

// NewStorageSink creates a sink writing into bucket under prefix.
func NewStorageSink(client storage.Client, bucket, prefix string) *StorageSink {
	return &StorageSink{client: client, bucket: bucket, prefix: prefix}
}

// Save uploads data with the asset metadata attached.
func (s *StorageSink) Save(ctx context.Context, asset models.ImageAsset, data []byte) error {
	meta := map[string]string{
		"width":  fmt.Sprint(asset.Width),
		"height": fmt.Sprint(asset.Height),
	}
	if asset.BlurHash != "" {
		meta["blurhash"] = asset.BlurHash
	}
	if asset.SourceURL != nil {
		meta["source-url"] = *asset.SourceURL
	}

	key := asset.Key(s.prefix)
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  "image/" + asset.Format,
		UserMetadata: meta,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}
