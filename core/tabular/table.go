package tabular

import (
	"fmt"
	"sort"
	"strconv"
)

// Column is a named sequence of cells in row order.
type Column struct {
	Name  string
	Cells []Cell
}

// Table is an in-memory tabular source: ordered columns of equal length.
type Table struct {
	// Name identifies the source the table was read from.
	Name string
	// Partition is the sheet that was read, or a description of the
	// source kind when the format has no partitions.
	Partition string
	// Columns holds the table data in header order.
	Columns []Column
}

// FromRecords builds a table from a header and raw string records, typing
// every field with Parse. Short records are padded with null cells; a
// record longer than the header is rejected.
func FromRecords(name, partition string, header []string, records [][]string) (*Table, error) {
	rows := make([][]Cell, len(records))
	for r, rec := range records {
		row := make([]Cell, len(rec))
		for i, field := range rec {
			row[i] = Parse(field)
		}
		rows[r] = row
	}
	return FromCells(name, partition, header, rows)
}

// FromCells builds a table from a header and already typed rows, with the
// same padding and length rules as FromRecords.
func FromCells(name, partition string, header []string, rows [][]Cell) (*Table, error) {
	names := NormalizeHeader(header)
	cols := make([]Column, len(names))
	for i, n := range names {
		cols[i] = Column{Name: n, Cells: make([]Cell, 0, len(rows))}
	}

	for r, row := range rows {
		if len(row) > len(names) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", r+2, len(row), len(names))
		}
		for i := range cols {
			var c Cell
			if i < len(row) {
				c = row[i]
			}
			cols[i].Cells = append(cols[i].Cells, c)
		}
	}

	return &Table{Name: name, Partition: partition, Columns: cols}, nil
}

// NormalizeHeader makes column names unique and non-empty. Blank names
// become "Unnamed: <index>" and repeated names get ".1", ".2", ... suffixes.
func NormalizeHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := h
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		if _, dup := seen[name]; dup {
			base := name
			n := seen[base]
			for {
				n++
				candidate := base + "." + strconv.Itoa(n)
				if _, taken := seen[candidate]; !taken {
					seen[base] = n
					name = candidate
					break
				}
			}
		}
		seen[name] = 0
		out[i] = name
	}
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// ColumnNames returns the column names in header order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of the named column or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Column returns the named column.
func (t *Table) Column(name string) (*Column, bool) {
	i := t.Index(name)
	if i < 0 {
		return nil, false
	}
	return &t.Columns[i], true
}

// SortCells sorts cells in natural order (see Compare).
func SortCells(cells []Cell) {
	sort.SliceStable(cells, func(i, j int) bool {
		return Compare(cells[i], cells[j]) < 0
	})
}
