package storage

import "strings"

// Scheme is the location prefix for objects held in the configured storage.
const Scheme = "s3://"

// IsURI reports whether location points into object storage.
func IsURI(location string) bool {
	return strings.HasPrefix(location, Scheme)
}

// ParseURI splits "s3://bucket/key" into its bucket and object key.
// ok is false when location is not a storage URI or lacks a key.
func ParseURI(location string) (bucket, key string, ok bool) {
	if !IsURI(location) {
		return "", "", false
	}
	rest := strings.TrimPrefix(location, Scheme)
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

// URI builds a storage location from a bucket and object key.
func URI(bucket, key string) string {
	return Scheme + bucket + "/" + strings.TrimPrefix(key, "/")
}
