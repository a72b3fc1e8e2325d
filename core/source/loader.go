package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"tablediff/core/diff"
	"tablediff/core/storage"
	"tablediff/core/tabular"

	"github.com/minio/minio-go/v7"
)

// DelimitedPartition is recorded as the partition of delimited sources,
// which have none.
const DelimitedPartition = "delimited file"

// FileLoader implements diff.Loader for local files and storage objects.
type FileLoader struct {
	client storage.Client
}

// NewFileLoader creates a loader. client may be nil when no source lives
// in object storage.
func NewFileLoader(client storage.Client) *FileLoader {
	return &FileLoader{client: client}
}

// Load reads the table described by spec. Every failure is returned as a
// *diff.SourceLoadError.
func (l *FileLoader) Load(ctx context.Context, spec diff.LoadSpec) (*tabular.Table, error) {
	tbl, err := l.load(ctx, spec)
	if err != nil {
		return nil, &diff.SourceLoadError{Path: spec.Location, Cause: err}
	}
	return tbl, nil
}

func (l *FileLoader) load(ctx context.Context, spec diff.LoadSpec) (*tabular.Table, error) {
	rc, err := l.open(ctx, spec.Location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	name := displayName(spec.Location)
	switch spec.Kind {
	case diff.KindSpreadsheet:
		return readSpreadsheet(rc, name, spec.Partition)
	case diff.KindDelimited:
		return readDelimited(rc, name, spec.Delimiter)
	default:
		return nil, fmt.Errorf("unsupported source kind %q", spec.Kind)
	}
}

// open returns a reader for a local path or an s3:// location.
func (l *FileLoader) open(ctx context.Context, location string) (io.ReadCloser, error) {
	if !storage.IsURI(location) {
		return os.Open(location)
	}

	bucket, key, ok := storage.ParseURI(location)
	if !ok {
		return nil, fmt.Errorf("malformed storage location %q, expected s3://bucket/key", location)
	}
	if l.client == nil {
		return nil, errors.New("object storage is not configured")
	}
	obj, err := l.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	return obj, nil
}

func displayName(location string) string {
	if storage.IsURI(location) {
		return path.Base(location)
	}
	return filepath.Base(location)
}
