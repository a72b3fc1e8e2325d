package storage_test

import (
	"testing"

	"tablediff/core/storage"

	"github.com/stretchr/testify/assert"
)

func TestParseURI(t *testing.T) {
	tests := []struct {
		in     string
		bucket string
		key    string
		ok     bool
	}{
		{"s3://reports/2026/a.csv", "reports", "2026/a.csv", true},
		{"s3://reports/a.csv", "reports", "a.csv", true},
		{"s3://reports/", "", "", false},
		{"s3://reports", "", "", false},
		{"s3:///a.csv", "", "", false},
		{"/tmp/a.csv", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			bucket, key, ok := storage.ParseURI(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestURI(t *testing.T) {
	assert.Equal(t, "s3://reports/a/b.csv", storage.URI("reports", "/a/b.csv"))
	assert.True(t, storage.IsURI(storage.URI("reports", "x")))
	assert.False(t, storage.IsURI("reports/x"))
}
