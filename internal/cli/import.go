package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/newsanalyst/newsanalyst/internal/codec"
	"github.com/newsanalyst/newsanalyst/internal/extract"
	"github.com/newsanalyst/newsanalyst/internal/ingest"
	"github.com/newsanalyst/newsanalyst/internal/model"
)

var (
	importFormat  string
	importOutDir  string
	extractClaims bool
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <feed-file>",
	Short: "Convert a local RSS or Atom feed into records",
	Long: `Import parses a local RSS, Atom, or JSON feed file and converts it into a
news_source record and one article record per item. Items that do not form
a valid article are reported and skipped.

With --extract-claims, sentences that look like checkable assertions are
turned into unverified fact_check_claim records.

Without --output-dir the documents are printed to stdout as one object keyed
by record kind. With --output-dir each kind is written to its own document,
ready for 'newsanalyst validate'.

Example:
  newsanalyst import feed.xml
  newsanalyst import feed.xml --extract-claims --format yaml
  newsanalyst import feed.xml --output-dir ./data/raw`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importFormat, "format", "json", "output format (json, yaml)")
	importCmd.Flags().StringVar(&importOutDir, "output-dir", "", "write one document per record kind into this directory")
	importCmd.Flags().BoolVar(&extractClaims, "extract-claims", false, "extract candidate claims from article content")
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]

	format, err := codec.ParseFormat(importFormat)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "⚙️  Importing %s...\n", path)
	result, err := ingest.NewFeedImporter(logger).ImportFile(path)
	if err != nil {
		return err
	}

	documents, err := importDocuments(result, extractClaims)
	if err != nil {
		return err
	}

	if result.SourceErr != nil {
		fmt.Fprintf(os.Stderr, "✗ Feed metadata is not a valid source: %v\n", result.SourceErr)
	}
	fmt.Fprintf(os.Stderr, "✓ Imported %d articles from %q\n", len(result.Articles), result.FeedTitle)
	for _, itemErr := range result.Errors {
		fmt.Fprintf(os.Stderr, "✗ Skipped %v\n", itemErr)
	}
	if extractClaims {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d candidate claims\n", len(documents[codec.KindFactCheckClaim].Records))
	}

	if importOutDir == "" {
		return codec.Encode(cmd.OutOrStdout(), format, documents)
	}
	return writeDocuments(importOutDir, baseName(path), format, documents)
}

// importDocuments groups the imported records into one envelope per kind
func importDocuments(result *ingest.Result, withClaims bool) (map[codec.Kind]codec.Document, error) {
	docs := make(map[codec.Kind]codec.Document)

	var sources []any
	if result.Source != nil {
		sources = append(sources, result.Source)
	}
	doc, err := codec.NewDocument(codec.KindNewsSource, sources...)
	if err != nil {
		return nil, err
	}
	docs[codec.KindNewsSource] = doc

	articles := make([]any, len(result.Articles))
	for i, a := range result.Articles {
		articles[i] = a
	}
	if doc, err = codec.NewDocument(codec.KindArticle, articles...); err != nil {
		return nil, err
	}
	docs[codec.KindArticle] = doc

	if !withClaims {
		return docs, nil
	}

	extractor := extract.NewClaimExtractor()
	var claims []any
	for _, a := range result.Articles {
		for _, c := range extract.Claims(extractor.ExtractArticle(a)) {
			claim, err := model.NewFactCheckClaim(c)
			if err != nil {
				logger.Debug("candidate claim rejected", "article", a.URL, "error", err)
				continue
			}
			claims = append(claims, claim)
		}
	}
	if doc, err = codec.NewDocument(codec.KindFactCheckClaim, claims...); err != nil {
		return nil, err
	}
	docs[codec.KindFactCheckClaim] = doc

	return docs, nil
}

func writeDocuments(dir, base string, format codec.Format, docs map[codec.Kind]codec.Document) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	for _, kind := range codec.Kinds {
		doc, ok := docs[kind]
		if !ok {
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("%s.%s.%s", base, kind, format))
		if err := writeDocument(path, format, doc); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote %s (%d records)\n", path, len(doc.Records))
	}
	return nil
}

func writeDocument(path string, format codec.Format, doc codec.Document) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	if err := codec.Encode(f, format, doc); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
