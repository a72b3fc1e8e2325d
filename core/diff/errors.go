package diff

import (
	"fmt"
	"strings"
)

// ConfigurationError reports an invalid combination of comparison parameters.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid comparison parameters: " + e.Reason
}

func configErrorf(format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// SourceLoadError reports a source that could not be read or parsed.
type SourceLoadError struct {
	Path  string
	Cause error
}

func (e *SourceLoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Cause)
}

func (e *SourceLoadError) Unwrap() error {
	return e.Cause
}

// KeyColumnMissing reports a key column absent from one of the sources.
type KeyColumnMissing struct {
	// Side is "A" or "B".
	Side      string
	Column    string
	Available []string
}

func (e *KeyColumnMissing) Error() string {
	return fmt.Sprintf("key column %q not found in source %s, available columns: [%s]",
		e.Column, e.Side, strings.Join(e.Available, ", "))
}

// NoCommonColumns reports two sources that share no column besides the key.
type NoCommonColumns struct {
	KeyColumn string
}

func (e *NoCommonColumns) Error() string {
	return fmt.Sprintf("sources share no columns besides key %q, nothing to compare", e.KeyColumn)
}
