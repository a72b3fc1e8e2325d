package cmd

import (
	"fmt"
	"os"

	"tablediff/feature/compare"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var batchFlags struct {
	parallel int
	record   bool
}

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <manifest.yaml>",
	Short: "Run the comparisons listed in a YAML manifest",
	Long: `Runs every comparison of the manifest, several at a time. A failing
comparison does not stop the others; the command fails if any did.

  defaults:
    key_column: id
    write_report: true
  comparisons:
    - name: orders
      source_a: exports/orders_a.csv
      source_b: s3://exports/orders_b.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open manifest: %w", err)
		}
		manifest, err := compare.LoadManifest(f)
		f.Close()
		if err != nil {
			return err
		}

		a, err := setup(batchFlags.record)
		if err != nil {
			return err
		}
		defer a.log.Sync()

		parallel := batchFlags.parallel
		if parallel <= 0 {
			parallel = a.cfg.Diff.BatchParallel
		}
		a.log.Info("Starting batch",
			zap.String("manifest", args[0]),
			zap.Int("comparisons", len(manifest.Comparisons)),
			zap.Int("parallel", parallel))

		outcomes := a.service().RunBatch(cmd.Context(), manifest.Comparisons, parallel)
		printBatch(cmd.OutOrStdout(), outcomes)

		failed := 0
		for _, o := range outcomes {
			if o.Err != nil {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d comparisons failed", failed, len(outcomes))
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().IntVarP(&batchFlags.parallel, "parallel", "p", 0, "concurrent comparisons (default diff.batch_parallel)")
	batchCmd.Flags().BoolVar(&batchFlags.record, "record", false, "record the runs in the history database")
	RootCmd.AddCommand(batchCmd)
}
