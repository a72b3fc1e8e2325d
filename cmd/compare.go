package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"tablediff/core/diff"

	"github.com/spf13/cobra"
)

// errDifferences is returned with --fail-on-diff so scripts see exit code 1.
var errDifferences = errors.New("differences found")

var compareFlags struct {
	key        string
	kind       string
	delimiter  string
	sheetA     string
	sheetB     string
	partitions string
	report     bool
	reportPath string
	json       bool
	record     bool
	failOnDiff bool
}

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare [source-a source-b]",
	Short: "Compare two tables by a key column",
	Long: `Compares two sources, or with --partitions two sheets of one workbook,
by the key column given with --key. The source kind is taken from the
file extension of the first source unless --kind is set.`,
	Example: `  tablediff compare orders_a.csv orders_b.csv --key id --report
  tablediff compare --partitions book.xlsx --sheet-a Jan --sheet-b Feb --key id`,
	Args: func(cmd *cobra.Command, args []string) error {
		if compareFlags.partitions != "" {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(compareFlags.record)
		if err != nil {
			return err
		}
		defer a.log.Sync()

		svc := a.service()
		req, err := svc.Resolve(compareParams(args))
		if err != nil {
			return err
		}

		res, err := svc.Compare(cmd.Context(), req)
		if err != nil {
			return err
		}

		var reportLocation string
		if req.Settings().Report.Write {
			reportLocation = svc.ReportLocation(req)
		}

		out := cmd.OutOrStdout()
		if compareFlags.json {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return fmt.Errorf("failed to encode result: %w", err)
			}
		} else {
			printResult(out, res, reportLocation)
		}

		if compareFlags.failOnDiff && res.HasDifferences() {
			return errDifferences
		}
		return nil
	},
}

func compareParams(args []string) diff.Params {
	f := compareFlags
	p := diff.Params{
		PartitionA:  f.sheetA,
		PartitionB:  f.sheetB,
		KeyColumn:   f.key,
		Kind:        diff.SourceKind(f.kind),
		Delimiter:   f.delimiter,
		WriteReport: f.report || f.reportPath != "",
		ReportPath:  f.reportPath,
	}
	if f.partitions != "" {
		p.Mode = diff.ModePartitions
		p.SingleSource = f.partitions
		return p
	}
	p.Mode = diff.ModeSources
	p.SourceA, p.SourceB = args[0], args[1]
	return p
}

func init() {
	fl := compareCmd.Flags()
	fl.StringVarP(&compareFlags.key, "key", "k", "", "key column present in both sources")
	fl.StringVar(&compareFlags.kind, "kind", "", "source kind: spreadsheet or delimited (default from extension)")
	fl.StringVarP(&compareFlags.delimiter, "delimiter", "d", "", "field delimiter of delimited sources, e.g. ',' ';' tab")
	fl.StringVar(&compareFlags.sheetA, "sheet-a", "", "sheet of source A (default first sheet)")
	fl.StringVar(&compareFlags.sheetB, "sheet-b", "", "sheet of source B (default first sheet)")
	fl.StringVar(&compareFlags.partitions, "partitions", "", "compare --sheet-a and --sheet-b of this workbook")
	fl.BoolVar(&compareFlags.report, "report", false, "write the CSV difference report")
	fl.StringVar(&compareFlags.reportPath, "report-path", "", "report location (implies --report)")
	fl.BoolVar(&compareFlags.json, "json", false, "print the result as JSON")
	fl.BoolVar(&compareFlags.record, "record", false, "record the run in the history database")
	fl.BoolVar(&compareFlags.failOnDiff, "fail-on-diff", false, "exit with status 1 when differences are found")
	_ = compareCmd.MarkFlagRequired("key")

	RootCmd.AddCommand(compareCmd)
}
