package cli

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/newsanalyst/newsanalyst/internal/codec"
	"github.com/newsanalyst/newsanalyst/internal/model"
	"github.com/newsanalyst/newsanalyst/internal/pipeline"
)

// demoCmd shows how enumerations appear on the wire
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Show how records and enumerations serialize",
	Long: `Demo builds a few sample news sources and prints them as JSON and YAML.
Enumerations are written as their lowercase value, never as the Go constant
name, and the same records decode back to identical values.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

type demoSource struct {
	name        string
	url         string
	bias        model.BiasRating
	credibility model.CredibilityRating
}

var demoSources = []demoSource{
	{"BBC", "https://www.bbc.co.uk", model.BiasLeftCenter, model.CredibilityVeryHigh},
	{"Fox News", "https://www.foxnews.com", model.BiasRight, model.CredibilityMixed},
	{"Reuters", "https://www.reuters.com", model.BiasCenter, model.CredibilityVeryHigh},
}

// constantNames maps enumeration values back to their Go identifiers for display
var constantNames = map[string]string{
	string(model.BiasLeft):            "model.BiasLeft",
	string(model.BiasLeftCenter):      "model.BiasLeftCenter",
	string(model.BiasCenter):          "model.BiasCenter",
	string(model.BiasRightCenter):     "model.BiasRightCenter",
	string(model.BiasRight):           "model.BiasRight",
	string(model.CredibilityVeryHigh): "model.CredibilityVeryHigh",
	string(model.CredibilityMixed):    "model.CredibilityMixed",
}

func runDemo(w io.Writer) error {
	sources := make([]any, 0, len(demoSources))
	rows := [][]string{{"Source", "Bias constant", "Bias value", "Credibility constant", "Credibility value"}}

	for _, d := range demoSources {
		src, err := model.NewNewsSource(model.NewsSource{
			Name:              d.name,
			URL:               d.url,
			BiasRating:        d.bias,
			CredibilityRating: d.credibility,
		})
		if err != nil {
			return fmt.Errorf("build %s: %w", d.name, err)
		}
		sources = append(sources, src)
		rows = append(rows, []string{
			src.Name,
			constantNames[string(src.BiasRating)], string(src.BiasRating),
			constantNames[string(src.CredibilityRating)], string(src.CredibilityRating),
		})
	}

	fmt.Fprintln(w, "ENUMERATIONS")
	for _, line := range pipeline.FormatTable(rows) {
		fmt.Fprintln(w, line)
	}

	doc, err := codec.NewDocument(codec.KindNewsSource, sources...)
	if err != nil {
		return err
	}

	for _, format := range []codec.Format{codec.FormatJSON, codec.FormatYAML} {
		fmt.Fprintf(w, "\n%s\n", format)
		if err := codec.Encode(w, format, doc); err != nil {
			return err
		}
	}

	// Decode the JSON form back and confirm the values survive
	var buf bytes.Buffer
	if err := codec.Encode(&buf, codec.FormatJSON, doc); err != nil {
		return err
	}
	batch, err := codec.Decode(buf.Bytes(), codec.FormatJSON, codec.KindNewsSource)
	if err != nil {
		return err
	}
	for i, rec := range batch.Records {
		original := sources[i].(*model.NewsSource)
		decoded := rec.(*model.NewsSource)
		if decoded.ID != original.ID || decoded.BiasRating != original.BiasRating || !decoded.CreatedAt.Equal(original.CreatedAt) {
			return fmt.Errorf("round trip changed %s", original.Name)
		}
	}
	fmt.Fprintf(w, "\n✓ %d records round-tripped with identical ids and enum values\n", len(batch.Records))
	return nil
}
