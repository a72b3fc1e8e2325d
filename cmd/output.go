package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"tablediff/core/diff"
	"tablediff/core/history"
	"tablediff/core/tabular"
	"tablediff/feature/compare"

	"github.com/fatih/color"
)

// maxListed caps the keys and mismatches echoed per bucket.
const maxListed = 20

var (
	bold   = color.New(color.Bold)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	cyan   = color.New(color.FgCyan)
)

func printResult(w io.Writer, res *diff.Result, reportLocation string) {
	bold.Fprintln(w, res.Description)
	fmt.Fprintf(w, "Key column:     %s\n", res.KeyColumn)
	fmt.Fprintf(w, "Common columns: %s\n", strings.Join(res.CommonColumns, ", "))
	if res.Duplicates.A > 0 || res.Duplicates.B > 0 {
		yellow.Fprintf(w, "Duplicate key rows dropped: A=%d, B=%d\n", res.Duplicates.A, res.Duplicates.B)
	}

	sum := res.Summary()
	fmt.Fprintln(w)
	green.Fprintf(w, "  identical:                  %d\n", sum.Identical)
	yellow.Fprintf(w, "  mismatched:                 %d\n", sum.Mismatched)
	red.Fprintf(w, "  only in B (missing from A): %d\n", sum.NotInA)
	red.Fprintf(w, "  only in A (missing from B): %d\n", sum.NotInB)

	if len(res.Mismatches) > 0 {
		fmt.Fprintln(w)
		bold.Fprintln(w, "Mismatches:")
		for i, m := range res.Mismatches {
			if i == maxListed {
				fmt.Fprintf(w, "  ... and %d more\n", len(res.Mismatches)-maxListed)
				break
			}
			fmt.Fprintf(w, "  %s\n", m.Detail)
		}
	}
	printKeys(w, "Only in source B:", res.NotInA)
	printKeys(w, "Only in source A:", res.NotInB)

	fmt.Fprintln(w)
	if !res.HasDifferences() {
		green.Fprintln(w, "No differences found")
	}
	if reportLocation != "" {
		cyan.Fprintf(w, "Report: %s\n", reportLocation)
	}
}

func printKeys(w io.Writer, title string, keys []tabular.Cell) {
	if len(keys) == 0 {
		return
	}
	shown := keys
	if len(shown) > maxListed {
		shown = shown[:maxListed]
	}
	parts := make([]string, len(shown))
	for i, k := range shown {
		parts[i] = k.String()
	}
	line := strings.Join(parts, ", ")
	if len(keys) > maxListed {
		line += fmt.Sprintf(", ... and %d more", len(keys)-maxListed)
	}

	fmt.Fprintln(w)
	bold.Fprintln(w, title)
	fmt.Fprintf(w, "  %s\n", line)
}

func printBatch(w io.Writer, outcomes []compare.BatchOutcome) {
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			red.Fprintf(w, "FAIL  %s: %v\n", o.Name, o.Err)
		case o.Result.HasDifferences():
			s := o.Result.Summary()
			yellow.Fprintf(w, "DIFF  %s: identical=%d mismatched=%d not_in_a=%d not_in_b=%d (%s)\n",
				o.Name, s.Identical, s.Mismatched, s.NotInA, s.NotInB, o.Took.Round(time.Millisecond))
		default:
			green.Fprintf(w, "SAME  %s: %d identical (%s)\n", o.Name, len(o.Result.Identical), o.Took.Round(time.Millisecond))
		}
		if o.ReportLocation != "" {
			cyan.Fprintf(w, "      report: %s\n", o.ReportLocation)
		}
	}
}

func printRuns(w io.Writer, runs []history.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No comparison runs recorded")
		return
	}
	for _, r := range runs {
		status := green.Sprint(r.Status)
		if r.Status == history.StatusFailed {
			status = red.Sprint(r.Status)
		}
		fmt.Fprintf(w, "%s  %s  %-9s  %s\n", r.ID, r.CreatedAt.Format(diff.ReportTimeLayout), status, r.Description)
		if r.Status == history.StatusFailed {
			fmt.Fprintf(w, "    error: %s\n", r.Error)
			continue
		}
		fmt.Fprintf(w, "    identical=%d mismatched=%d not_in_a=%d not_in_b=%d\n", r.Identical, r.Mismatched, r.NotInA, r.NotInB)
	}
}
