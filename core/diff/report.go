package diff

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"tablediff/core/storage"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReportColumn is the header of the report's single data column.
const ReportColumn = "difference_detail"

// ReportTimeLayout formats the generation time in report headers.
const ReportTimeLayout = "2006-01-02 15:04:05"

const reportSuffix = "_diff_report.csv"

// knownExtensions are stripped from source names when deriving a report name.
var knownExtensions = []string{".xlsx", ".xlsm", ".xls", ".csv", ".txt", ".tsv"}

// WriteReport serializes res as a UTF-8 (with BOM) report: '#' metadata
// lines, a blank line, then a one-column CSV table of differences.
func WriteReport(w io.Writer, res *Result) error {
	tw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	bw := bufio.NewWriter(tw)

	s := res.Summary()
	header := []string{
		"# Table diff report",
		"# Generated at: " + res.GeneratedAt.Format(ReportTimeLayout),
		"# Comparison: " + res.Description,
		"# Key column: " + res.KeyColumn,
		"# Common columns: " + strings.Join(res.CommonColumns, ", "),
		fmt.Sprintf("# Source A: %s (partition: %s)", res.SourceA.Name, res.SourceA.Partition),
		fmt.Sprintf("# Source B: %s (partition: %s)", res.SourceB.Name, res.SourceB.Partition),
		fmt.Sprintf("# Duplicate key rows dropped: A=%d, B=%d", res.Duplicates.A, res.Duplicates.B),
		"# Summary:",
		fmt.Sprintf("# Identical rows: %d", s.Identical),
		fmt.Sprintf("# Mismatched rows: %d", s.Mismatched),
		fmt.Sprintf("# Rows only in source B (missing from A): %d", s.NotInA),
		fmt.Sprintf("# Rows only in source A (missing from B): %d", s.NotInB),
		"",
	}
	for _, line := range header {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("failed to write report header: %w", err)
		}
	}

	cw := csv.NewWriter(bw)
	rows := [][]string{{ReportColumn}}
	for _, m := range res.Mismatches {
		rows = append(rows, []string{m.Detail})
	}
	for _, k := range res.NotInA {
		rows = append(rows, []string{"only in source B: " + k.String()})
	}
	for _, k := range res.NotInB {
		rows = append(rows, []string{"only in source A: " + k.String()})
	}
	if len(rows) == 1 {
		rows = append(rows, []string{"no differences found"})
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write report rows: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}
	return tw.Close()
}

// RenderReport returns the report for res as bytes.
func RenderReport(res *Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteReport(&buf, res); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReportLocation returns the report destination of req: the explicit
// location when set, otherwise DefaultReportLocation.
func ReportLocation(req Request) string {
	if loc := req.Settings().Report.Location; loc != "" {
		return loc
	}
	return DefaultReportLocation(req)
}

// DefaultReportLocation derives a report destination next to source A:
// "<a>_vs_<b>_diff_report.csv" for two sources and
// "<file>_<sheetA>_vs_<sheetB>_diff_report.csv" for two partitions.
func DefaultReportLocation(req Request) string {
	a, b := req.Sides()

	var name string
	switch req.Mode() {
	case ModePartitions:
		name = stripExtension(baseName(a.Location)) + "_" + a.Partition + "_vs_" + b.Partition + reportSuffix
	default:
		name = stripExtension(baseName(a.Location)) + "_vs_" + stripExtension(baseName(b.Location)) + reportSuffix
	}

	if bucket, key, ok := storage.ParseURI(a.Location); ok {
		dir := path.Dir(key)
		if dir == "." {
			return storage.URI(bucket, name)
		}
		return storage.URI(bucket, dir+"/"+name)
	}
	return filepath.Join(filepath.Dir(a.Location), name)
}

func stripExtension(name string) string {
	ext := strings.ToLower(path.Ext(name))
	for _, known := range knownExtensions {
		if ext == known {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}
