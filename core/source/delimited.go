package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"tablediff/core/tabular"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// readDelimited parses delimited text. A leading UTF-8 BOM is dropped and
// invalid UTF-8 is replaced, so headers exported by spreadsheet tools
// match their plain counterparts.
func readDelimited(r io.Reader, name string, delimiter rune) (*tabular.Table, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(decoded)
	if delimiter != 0 {
		cr.Comma = delimiter
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("source is empty, no header row found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return tabular.FromRecords(name, DelimitedPartition, header, records)
}
