package source

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"tablediff/core/tabular"

	"github.com/xuri/excelize/v2"
)

// readSpreadsheet reads one sheet of a workbook. The first row is the
// header; an empty sheet name selects the first sheet of the workbook.
// Cells are typed from their stored value and number format, so the same
// value displayed in different formats compares equal.
func readSpreadsheet(r io.Reader, name, sheet string) (*tabular.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	if sheet == "" {
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		return nil, fmt.Errorf("sheet %q not found, available sheets: [%s]", sheet, strings.Join(sheets, ", "))
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	props, err := f.GetWorkbookProps()
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook properties: %w", err)
	}
	sr := &sheetReader{
		f:          f,
		sheet:      sheet,
		date1904:   props.Date1904 != nil && *props.Date1904,
		dateStyles: make(map[int]bool),
	}

	var (
		header []string
		cells  [][]tabular.Cell
		width  int
	)
	for i, row := range rows {
		if blankRow(row) {
			continue
		}
		if header == nil {
			if header, err = sr.header(i, row); err != nil {
				return nil, err
			}
			width = len(row)
			continue
		}
		typed, err := sr.row(i, row)
		if err != nil {
			return nil, err
		}
		cells = append(cells, typed)
		width = max(width, len(row))
	}
	if header == nil {
		return nil, fmt.Errorf("sheet %q is empty, no header row found", sheet)
	}

	// Cells right of the header get generated column names.
	for len(header) < width {
		header = append(header, "")
	}

	return tabular.FromCells(name, sheet, header, cells)
}

type sheetReader struct {
	f          *excelize.File
	sheet      string
	date1904   bool
	dateStyles map[int]bool
}

// header returns the displayed text of the header row.
func (s *sheetReader) header(index int, row []string) ([]string, error) {
	out := make([]string, len(row))
	for j := range row {
		ref, err := excelize.CoordinatesToCellName(j+1, index+1)
		if err != nil {
			return nil, err
		}
		if out[j], err = s.f.GetCellValue(s.sheet, ref); err != nil {
			return nil, fmt.Errorf("failed to read cell %s: %w", ref, err)
		}
	}
	return out, nil
}

func (s *sheetReader) row(index int, row []string) ([]tabular.Cell, error) {
	out := make([]tabular.Cell, len(row))
	for j, raw := range row {
		if raw == "" {
			continue
		}
		ref, err := excelize.CoordinatesToCellName(j+1, index+1)
		if err != nil {
			return nil, err
		}
		if out[j], err = s.cell(ref, raw); err != nil {
			return nil, fmt.Errorf("failed to read cell %s: %w", ref, err)
		}
	}
	return out, nil
}

// cell types one stored value. Numbers keep their stored precision and
// serials with a date format become dates; text goes through Parse like
// delimited fields do.
func (s *sheetReader) cell(ref, raw string) (tabular.Cell, error) {
	typ, err := s.f.GetCellType(s.sheet, ref)
	if err != nil {
		return tabular.Cell{}, err
	}

	switch typ {
	case excelize.CellTypeBool:
		if raw == "1" {
			return tabular.Text("TRUE"), nil
		}
		return tabular.Text("FALSE"), nil
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return tabular.Parse(raw), nil
		}
		isDate, err := s.isDateStyle(ref)
		if err != nil {
			return tabular.Cell{}, err
		}
		if !isDate {
			return tabular.Number(v), nil
		}
		t, err := excelize.ExcelDateToTime(v, s.date1904)
		if err != nil {
			return tabular.Number(v), nil
		}
		return tabular.Date(t), nil
	default:
		return tabular.Parse(raw), nil
	}
}

func (s *sheetReader) isDateStyle(ref string) (bool, error) {
	idx, err := s.f.GetCellStyle(s.sheet, ref)
	if err != nil {
		return false, err
	}
	if v, ok := s.dateStyles[idx]; ok {
		return v, nil
	}

	// A style that cannot be resolved is treated as a plain number.
	isDate := false
	if st, err := s.f.GetStyle(idx); err == nil {
		isDate = isDateFormat(st.NumFmt, st.CustomNumFmt)
	}
	s.dateStyles[idx] = isDate
	return isDate, nil
}

// isDateFormat reports whether a number format renders dates or times.
func isDateFormat(id int, custom *string) bool {
	if custom != nil {
		return isDateCode(*custom)
	}
	switch {
	case id >= 14 && id <= 22, id >= 27 && id <= 36, id >= 45 && id <= 47, id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateCode looks for date or time tokens in a custom format code,
// ignoring quoted literals, bracketed sections and escaped characters.
func isDateCode(code string) bool {
	if strings.EqualFold(code, "General") {
		return false
	}
	var (
		quoted  bool
		skip    bool
		section strings.Builder
		bracket bool
	)
	for _, r := range code {
		switch {
		case skip:
			skip = false
		case quoted:
			quoted = r != '"'
		case bracket:
			if r != ']' {
				section.WriteRune(r)
				continue
			}
			bracket = false
			// Elapsed time sections such as [h] or [mm] mark a time format.
			if s := strings.ToLower(section.String()); s != "" && strings.Trim(s, "hms") == "" {
				return true
			}
			section.Reset()
		case r == '"':
			quoted = true
		case r == '[':
			bracket = true
		case r == '\\', r == '_', r == '*':
			skip = true
		case strings.ContainsRune("yYdDhHsSmM", r):
			return true
		}
	}
	return false
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
