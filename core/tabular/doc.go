// Package tabular defines the in-memory table model shared by the source
// loaders and the diff engine.
//
// # Cells
//
// Every value is a Cell, a small tagged variant holding one of:
//   - null: blank fields and the usual NA tokens ("NA", "N/A", "NaN", "null", ...)
//   - number: anything that parses as a finite float
//   - date: ISO-like dates and timestamps
//   - text: everything else
//
// Equal compares cells by resolved value, never by display formatting, so
// "10" and "10.0" are equal while "10" and "ten" are not. Two null cells are
// always equal.
//
// # Tables
//
// A Table is column oriented: ordered, uniquely named columns of equal length.
// FromRecords builds one from a header and string records, normalizing blank
// and repeated column names. FromCells does the same for readers that already
// know each cell's type, such as workbooks.
package tabular
