// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small Client interface so the media
// consumer can persist processed assets to AWS S3 or a self-hosted MinIO
// instance, and so tests can substitute the mock in core/storage/mocks.
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - MakeBucket: Creates a new bucket if needed (see EnsureBucket).
//   - PutObject: Uploads content (with size and options).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	err = storage.EnsureBucket(ctx, client, "media", "")
package storage
