package compare

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tablediff/core/storage"

	"github.com/minio/minio-go/v7"
)

// ReportContentType is set on uploaded reports.
const ReportContentType = "text/csv; charset=utf-8"

// ReportWriter delivers rendered reports to a local path or object storage.
type ReportWriter struct {
	client storage.Client
}

// NewReportWriter creates a writer. client may be nil when reports are
// only written locally.
func NewReportWriter(client storage.Client) *ReportWriter {
	return &ReportWriter{client: client}
}

// Write stores data at location, creating parent directories for local paths.
func (w *ReportWriter) Write(ctx context.Context, location string, data []byte) error {
	if !storage.IsURI(location) {
		if err := os.MkdirAll(filepath.Dir(location), 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
		if err := os.WriteFile(location, data, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return nil
	}

	bucket, key, ok := storage.ParseURI(location)
	if !ok {
		return fmt.Errorf("malformed report location %q, expected s3://bucket/key", location)
	}
	if w.client == nil {
		return errors.New("object storage is not configured")
	}
	_, err := w.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: ReportContentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload report: %w", err)
	}
	return nil
}
