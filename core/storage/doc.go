// Package storage wraps object storage for comparison sources and reports.
//
// The Client interface is a narrow view of the MinIO Go client, so both AWS S3
// and self-hosted MinIO work, and tests can substitute the mock in
// core/storage/mocks. Objects are addressed as "s3://bucket/key"; see ParseURI.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket); err != nil {
//	    return err
//	}
package storage
