package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/newsanalyst/newsanalyst/internal/pipeline"
	"github.com/newsanalyst/newsanalyst/internal/validate"
	"github.com/newsanalyst/newsanalyst/internal/worker"
)

var (
	concurrency  int
	batchKind    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Validate many documents from a list file in parallel",
	Long: `Batch validates multiple record documents concurrently:
- Read document paths from the input file (one per line, # comments allowed)
- Validate documents in parallel with a configurable worker count
- Print per-document results in input order and a summary table

Relative paths are resolved against the directory of the list file.

Example:
  newsanalyst batch documents.txt
  newsanalyst batch documents.txt --workers 8 --kind article
  newsanalyst batch documents.txt --timeout 30s`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "workers", 0, "number of concurrent workers (default: concurrency.workers setting)")
	batchCmd.Flags().StringVar(&batchKind, "kind", "", "record kind for bare documents")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	kind, _, err := parseKindAndFormat(batchKind, "json")
	if err != nil {
		return err
	}

	workers := concurrency
	if workers <= 0 {
		workers = settings.Concurrency.Workers
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  News Analyst Batch Validation\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", workers)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	processor := worker.NewBatchProcessor(validate.NewFileValidator(logger), workers)

	results, err := processor.ProcessFile(ctx, file, kind)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	for _, result := range results {
		printFileResult(os.Stderr, result)
	}

	summary := worker.Summarize(results)
	rows := [][]string{
		{"Documents", "Unreadable", "Records", "Valid", "Invalid"},
		{
			fmt.Sprint(summary.Files),
			fmt.Sprint(summary.FailedFiles),
			fmt.Sprint(summary.Records),
			fmt.Sprint(summary.ValidRecords),
			fmt.Sprint(summary.InvalidRecords),
		},
	}

	fmt.Fprintf(os.Stderr, "\n")
	for _, line := range pipeline.FormatTable(rows) {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}

	if !summary.OK() {
		return fmt.Errorf("batch failed: %d unreadable documents, %d invalid records", summary.FailedFiles, summary.InvalidRecords)
	}
	return nil
}
