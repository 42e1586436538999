package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/newsanalyst/newsanalyst/internal/cache"
	"github.com/newsanalyst/newsanalyst/internal/codec"
	"github.com/newsanalyst/newsanalyst/internal/pipeline"
	"github.com/newsanalyst/newsanalyst/internal/score"
)

var (
	analyzeFormat string
	noCache       bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Assess analysis result documents",
	Long: `Analyze decodes analysis_result documents, validates every record, and
derives an assessment for each: bias and credibility labels, the credible
claim ratio, an overall confidence, and diagnostic signals.

Claim sources are ranked by authority using the configured domain lists.
Assessments are cached by record content under the data directory.

Example:
  newsanalyst analyze results.json
  newsanalyst analyze results.yaml --format json
  newsanalyst analyze results.json --no-cache`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "table", "output format (table, json, yaml)")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the assessment cache")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	var format codec.Format
	if analyzeFormat != "table" {
		f, err := codec.ParseFormat(analyzeFormat)
		if err != nil {
			return err
		}
		format = f
	}

	cacheSettings := settings.Cache
	if noCache {
		cacheSettings.Enabled = false
	}

	authority := settings.Authority
	p := pipeline.New(pipeline.Options{
		Scorer: score.NewScorer(score.NewAuthorityClassifier(&authority)),
		Cache:  cache.New(cacheSettings, settings.CacheDir()),
		Logger: logger,
	})

	fmt.Fprintf(os.Stderr, "⚙️  Assessing %s...\n", args[0])
	results, err := p.AnalyzeFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	invalid := 0
	for _, r := range results {
		if r.Err != nil {
			invalid++
		}
	}
	fmt.Fprintf(os.Stderr, "✓ Assessed %d of %d records\n\n", len(results)-invalid, len(results))

	renderer := pipeline.NewRenderer(cmd.OutOrStdout())
	if format == "" {
		err = renderer.RenderSummary(results)
	} else {
		err = renderer.Render(format, results)
	}
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d records failed validation", invalid, len(results))
	}
	return nil
}
