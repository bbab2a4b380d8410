package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/brightlist/sitescout/internal/model"
)

// MarkdownWriter outputs discovery results in Markdown format, for
// pasting into documentation or sharing in reviews. It uses the
// nao1215/markdown library for fluent, type-safe generation.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the discovery result in Markdown format.
func (w *MarkdownWriter) Write(result *model.DiscoveryResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeCategoryChart(md, result)
	w.writePages(md, result)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the company summary table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.DiscoveryResult) {
	md.H1("Sitescout Report")
	md.PlainText("")

	origin := result.Origin
	if origin == "" {
		origin = "-"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Company", result.Company},
			{"Origin", "`" + origin + "`"},
			{"Pages Found", strconv.Itoa(result.TotalFound)},
			{"Sources Checked", strconv.Itoa(result.SourcesChecked)},
			{"Elapsed", result.Elapsed.Round(time.Millisecond).String()},
			{"Status", w.getStatusText(result)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on result state.
func (w *MarkdownWriter) getStatusText(result *model.DiscoveryResult) string {
	if result.Error != "" {
		return "❌ Error - " + result.Error
	}
	if result.CacheHit {
		return "✅ Complete (cached)"
	}
	return "✅ Complete"
}

// writeCategoryChart writes a mermaid pie chart of page categories.
func (w *MarkdownWriter) writeCategoryChart(md *markdown.Markdown, result *model.DiscoveryResult) {
	if len(result.Pages) == 0 {
		return
	}

	counts := make(map[model.Category]int)
	order := make([]model.Category, 0)
	for _, p := range result.Pages {
		if counts[p.Category] == 0 {
			order = append(order, p.Category)
		}
		counts[p.Category]++
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Page Category Distribution"),
		piechart.WithShowData(true),
	)
	for _, c := range order {
		chart.LabelAndIntValue(string(c), uint64(counts[c]))
	}

	md.H2("Category Distribution")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writePages writes the ranked page table.
func (w *MarkdownWriter) writePages(md *markdown.Markdown, result *model.DiscoveryResult) {
	md.H2("Ranked Pages")
	md.PlainText("")

	if len(result.Pages) == 0 {
		md.PlainText("No pages found.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(result.Pages))
	for i, p := range result.Pages {
		lastMod := "-"
		if p.LastModified != nil {
			lastMod = p.LastModified.Format("2006-01-02")
		}

		rows[i] = []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%.1f", p.RelevanceScore),
			truncateString(p.Title, 40),
			string(p.Category),
			"[link](" + p.URL + ")",
			lastMod,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"#", "Score", "Title", "Category", "URL", "Last Modified"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [sitescout](https://github.com/brightlist/sitescout)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
