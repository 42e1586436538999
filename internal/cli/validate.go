package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/newsanalyst/newsanalyst/internal/codec"
	"github.com/newsanalyst/newsanalyst/internal/validate"
)

var (
	recordKind   string
	outputFormat string
	quiet        bool
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate record documents",
	Long: `Validate decodes JSON or YAML record documents, applies defaults and
normalization, and checks every field constraint.

Valid records are printed in normalized form. Invalid records are reported
with every failing field; the command exits non-zero when any record fails.

Example:
  newsanalyst validate sources.json
  newsanalyst validate articles.yaml --kind article --format yaml
  newsanalyst validate *.json --quiet`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&recordKind, "kind", "", "record kind for bare documents (news_source, article, fact_check_claim, sentiment, analysis_result)")
	validateCmd.Flags().StringVar(&outputFormat, "format", "json", "output format for normalized records (json, yaml)")
	validateCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "report errors only, do not print normalized records")
}

func runValidate(cmd *cobra.Command, args []string) error {
	kind, format, err := parseKindAndFormat(recordKind, outputFormat)
	if err != nil {
		return err
	}

	validator := validate.NewFileValidator(logger)
	failed := 0

	for _, path := range args {
		result := validator.ValidateFile(path, kind)
		printFileResult(os.Stderr, result)

		if !result.OK() {
			failed++
		}

		if quiet || len(result.Records) == 0 {
			continue
		}

		doc, err := codec.NewDocument(result.Kind, recordsAsAny(result.Records)...)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := codec.Encode(cmd.OutOrStdout(), format, doc); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed validation", failed, len(args))
	}
	return nil
}

// parseKindAndFormat resolves the --kind and --format flags; an empty kind is allowed
func parseKindAndFormat(kindFlag, formatFlag string) (codec.Kind, codec.Format, error) {
	var kind codec.Kind
	if kindFlag != "" {
		k, err := codec.ParseKind(kindFlag)
		if err != nil {
			return "", "", err
		}
		kind = k
	}

	format, err := codec.ParseFormat(formatFlag)
	if err != nil {
		return "", "", err
	}
	return kind, format, nil
}

func recordsAsAny(records []codec.Record) []any {
	out := make([]any, len(records))
	for i, r := range records {
		out[i] = r
	}
	return out
}

// printFileResult writes a one-line status and every record error of a document
func printFileResult(w io.Writer, result validate.FileResult) {
	if result.Err != nil {
		fmt.Fprintf(w, "✗ %v\n", result.Err)
		return
	}

	mark := "✓"
	if !result.OK() {
		mark = "✗"
	}
	fmt.Fprintf(w, "%s %s: %d/%d valid %s records\n", mark, result.Path, result.Valid, result.Total, result.Kind)

	for _, rerr := range result.Errors {
		verr, ok := rerr.Validation()
		if !ok {
			fmt.Fprintf(w, "    [%d] %v\n", rerr.Index, rerr.Err)
			continue
		}
		for _, f := range verr.Fields {
			fmt.Fprintf(w, "    [%d] %s: %s (%s)\n", rerr.Index, f.Field, f.Message, f.Constraint)
		}
	}
}
