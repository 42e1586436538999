package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/newsanalyst/newsanalyst/internal/codec"
	"github.com/newsanalyst/newsanalyst/internal/extract"
)

var (
	extractFormat   string
	extractKeywords []string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract candidate claims from a text or HTML file",
	Long: `Extract splits a document into sentences and proposes those that look like
checkable assertions, such as statistics or attributions, as unverified
claim candidates. Files ending in .html or .htm are reduced to their visible
text first.

Example:
  newsanalyst extract article.html
  newsanalyst extract article.txt --keywords "percent,according to"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		format, err := codec.ParseFormat(extractFormat)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		extractor := extract.NewClaimExtractor()
		if len(extractKeywords) > 0 {
			extractor.WithKeywords(extractKeywords...)
		}

		var candidates []extract.Candidate
		lower := strings.ToLower(path)
		if strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") {
			if candidates, err = extractor.ExtractHTML(string(data)); err != nil {
				return err
			}
		} else {
			candidates = extractor.Extract(string(data))
		}

		fmt.Fprintf(os.Stderr, "✓ Extracted %d candidate claims\n", len(candidates))
		if candidates == nil {
			candidates = []extract.Candidate{}
		}
		return codec.Encode(cmd.OutOrStdout(), format, candidates)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractFormat, "format", "json", "output format (json, yaml)")
	extractCmd.Flags().StringSliceVar(&extractKeywords, "keywords", nil, "replace the built-in claim keywords")
}
