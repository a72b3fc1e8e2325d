package diff

import (
	"strings"
	"time"

	"tablediff/core/tabular"
)

// SourceInfo identifies one compared table.
type SourceInfo struct {
	// Location is the path or storage URI the table was loaded from.
	Location string `json:"location"`
	// Name is the display name of the source (usually the file name).
	Name string `json:"name"`
	// Partition is the sheet that was compared, or a description of the source kind.
	Partition string `json:"partition"`
	// Rows is the number of data rows before deduplication.
	Rows int `json:"rows"`
}

// ColumnDiff is one differing column of a mismatched key.
type ColumnDiff struct {
	Column string       `json:"column"`
	ValueB tabular.Cell `json:"value_b"`
	ValueA tabular.Cell `json:"value_a"`
}

// String renders the column difference with source B's value first.
func (d ColumnDiff) String() string {
	return d.Column + ": '" + d.ValueB.String() + "' vs '" + d.ValueA.String() + "'"
}

// Mismatch describes a key whose common columns differ between the sources.
type Mismatch struct {
	Key     tabular.Cell `json:"key"`
	Columns []ColumnDiff `json:"columns"`
	// Detail is the human readable form, e.g. "[id=5] amount: '12' vs '10'".
	Detail string `json:"detail"`
}

func newMismatch(keyColumn string, key tabular.Cell, cols []ColumnDiff) Mismatch {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = c.String()
	}
	return Mismatch{
		Key:     key,
		Columns: cols,
		Detail:  "[" + keyColumn + "=" + key.String() + "] " + strings.Join(parts, "; "),
	}
}

// Duplicates counts rows dropped because their key repeated an earlier row.
type Duplicates struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Summary holds the sizes of the four result buckets.
type Summary struct {
	Identical  int `json:"identical"`
	Mismatched int `json:"mismatched"`
	NotInA     int `json:"not_in_a"`
	NotInB     int `json:"not_in_b"`
}

// Result is the classification produced by one comparison. It is not
// modified after Compare returns.
type Result struct {
	Mode          Mode       `json:"mode"`
	Description   string     `json:"description"`
	KeyColumn     string     `json:"key_column"`
	CommonColumns []string   `json:"common_columns"`
	SourceA       SourceInfo `json:"source_a"`
	SourceB       SourceInfo `json:"source_b"`
	GeneratedAt   time.Time  `json:"generated_at"`

	// Identical lists keys present in both sources with equal common columns.
	Identical []tabular.Cell `json:"identical"`
	// Mismatches lists keys present in both sources with at least one differing column.
	Mismatches []Mismatch `json:"mismatches"`
	// NotInA lists keys present in source B that are missing from source A.
	NotInA []tabular.Cell `json:"not_in_a"`
	// NotInB lists keys present in source A that are missing from source B.
	NotInB []tabular.Cell `json:"not_in_b"`

	Duplicates Duplicates `json:"duplicates"`
}

// Summary returns the bucket sizes.
func (r *Result) Summary() Summary {
	return Summary{
		Identical:  len(r.Identical),
		Mismatched: len(r.Mismatches),
		NotInA:     len(r.NotInA),
		NotInB:     len(r.NotInB),
	}
}

// HasDifferences reports whether any key was mismatched or one-sided.
func (r *Result) HasDifferences() bool {
	return len(r.Mismatches) > 0 || len(r.NotInA) > 0 || len(r.NotInB) > 0
}
