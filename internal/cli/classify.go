package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/newsanalyst/newsanalyst/internal/model"
	"github.com/newsanalyst/newsanalyst/internal/pipeline"
)

var (
	biasScore        float64
	credibilityScore float64
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Label raw bias and credibility scores",
	Long: `Classify buckets raw scores in [0, 1] into bias and credibility labels.
Out-of-range scores are clamped first.

Example:
  newsanalyst classify --bias 0.35 --credibility 0.82`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bias := model.ClampScore(biasScore)
		credibility := model.ClampScore(credibilityScore)

		biasLabel := model.BiasLabelFor(bias)
		credLabel := model.CredibilityLabelFor(credibility)

		rows := [][]string{
			{"Score", "Value", "Label", "Display"},
			{"bias", fmt.Sprintf("%.2f", bias), string(biasLabel), biasLabel.DisplayName()},
			{"credibility", fmt.Sprintf("%.2f", credibility), string(credLabel), credLabel.DisplayName()},
		}
		for _, line := range pipeline.FormatTable(rows) {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().Float64Var(&biasScore, "bias", 0.5, "bias score (0 = left, 1 = right)")
	classifyCmd.Flags().Float64Var(&credibilityScore, "credibility", 0.5, "credibility score (0 = lowest, 1 = highest)")
}
