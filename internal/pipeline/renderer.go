package pipeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/newsanalyst/newsanalyst/internal/codec"
	"github.com/newsanalyst/newsanalyst/internal/model"
)

const minColumnWidth = 3

// Renderer writes analysis output in machine or human readable form
type Renderer struct {
	w io.Writer
}

// NewRenderer creates a renderer writing to w
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Render writes v as a JSON or YAML document
func (r *Renderer) Render(format codec.Format, v any) error {
	return codec.Encode(r.w, format, v)
}

// RenderSummary writes one table row per analyzed record followed by the
// warning and critical signals of each assessment
func (r *Renderer) RenderSummary(results []AnalyzeResult) error {
	rows := [][]string{
		{"#", "Bias", "Credibility", "Sentiment", "Claims", "Credible", "Confidence", "Cached"},
	}
	for _, res := range results {
		if res.Err != nil || res.Assessment == nil {
			rows = append(rows, []string{fmt.Sprint(res.Index), "invalid", "", "", "", "", "", ""})
			continue
		}
		a := res.Assessment
		rows = append(rows, []string{
			fmt.Sprint(res.Index),
			fmt.Sprintf("%.2f %s", a.BiasScore, a.BiasLabel),
			fmt.Sprintf("%.2f %s", a.CredibilityScore, a.CredibilityLabel),
			string(a.Sentiment),
			fmt.Sprintf("%d/%d", a.VerifiedClaims, a.Claims),
			fmt.Sprintf("%.0f%%", a.CredibleClaimsRatio*100),
			a.Confidence,
			yesNo(res.Cached),
		})
	}

	for _, line := range FormatTable(rows) {
		if _, err := fmt.Fprintln(r.w, line); err != nil {
			return err
		}
	}

	for _, res := range results {
		if res.Err != nil {
			if _, err := fmt.Fprintf(r.w, "\n[%d] %v\n", res.Index, res.Err); err != nil {
				return err
			}
			continue
		}
		if res.Assessment == nil {
			continue
		}
		if err := r.renderSignals(res.Index, res.Assessment.Signals); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderSignals(index int, signals []model.Signal) error {
	var notable []model.Signal
	for _, sig := range signals {
		if sig.Severity != model.SeverityInfo {
			notable = append(notable, sig)
		}
	}
	if len(notable) == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(r.w, "\n[%d] signals:\n", index); err != nil {
		return err
	}
	for _, sig := range notable {
		if _, err := fmt.Fprintf(r.w, "  %s %-18s %s\n", severityMark(sig.Severity), sig.Type, sig.Description); err != nil {
			return err
		}
	}
	return nil
}

// FormatTable renders rows as a markdown table. The first row is the header.
// Columns are padded by display width so wide runes stay aligned.
func FormatTable(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}

	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	widths := make([]int, colCount)
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if widths[i] < minColumnWidth {
			widths[i] = minColumnWidth
		}
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, formatRow(rows[0], widths))

	sep := make([]string, colCount)
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	lines = append(lines, formatRow(sep, widths))

	for _, row := range rows[1:] {
		lines = append(lines, formatRow(row, widths))
	}
	return lines
}

func formatRow(row []string, widths []int) string {
	var sb strings.Builder
	sb.WriteString("|")
	for i, w := range widths {
		content := ""
		if i < len(row) {
			content = row[i]
		}
		sb.WriteString(" ")
		sb.WriteString(content)
		if pad := w - runewidth.StringWidth(content); pad > 0 {
			sb.WriteString(strings.Repeat(" ", pad))
		}
		sb.WriteString(" |")
	}
	return sb.String()
}

func severityMark(s model.SignalSeverity) string {
	switch s {
	case model.SeverityCritical:
		return "✗"
	case model.SeverityWarning:
		return "⚠"
	default:
		return "·"
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
