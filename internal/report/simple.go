package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/brightlist/sitescout/internal/model"
)

// SimpleWriter outputs human-readable text reports for terminal
// display. Plain ASCII only, so the output pipes cleanly to files and
// other tools.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether a page table is shown when no pages
	// were found.
	showEmpty bool

	// verbose enables additional per-page detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show the page table even when
// it is empty.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with change frequency and
// declared priority per page.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the discovery result in human-readable format.
func (w *SimpleWriter) Write(result *model.DiscoveryResult) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, result)
	w.writePages(&sb, result)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the company summary line block.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, result *model.DiscoveryResult) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                        SITESCOUT REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Company:         %s\n", result.Company))
	if result.Origin != "" {
		sb.WriteString(fmt.Sprintf("Origin:          %s\n", result.Origin))
	}
	sb.WriteString(fmt.Sprintf("Pages Found:     %d\n", result.TotalFound))
	sb.WriteString(fmt.Sprintf("Sources Checked: %d\n", result.SourcesChecked))
	sb.WriteString(fmt.Sprintf("Elapsed:         %s\n", result.Elapsed.Round(time.Millisecond)))

	switch {
	case result.Error != "":
		sb.WriteString(fmt.Sprintf("Status:          ERROR - %s\n", result.Error))
	case result.CacheHit:
		sb.WriteString("Status:          Complete (cached)\n")
	default:
		sb.WriteString("Status:          Complete\n")
	}

	sb.WriteString("\n")
}

// writePages writes the ranked page table.
func (w *SimpleWriter) writePages(sb *strings.Builder, result *model.DiscoveryResult) {
	if len(result.Pages) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("RANKED PAGES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(result.Pages) == 0 {
		sb.WriteString("  No pages found\n\n")
		return
	}

	for i, p := range result.Pages {
		sb.WriteString(fmt.Sprintf("%3d. [%5.1f] %s\n", i+1, p.RelevanceScore, p.Title))
		sb.WriteString(fmt.Sprintf("     %s (%s)\n", p.URL, p.Category))

		if w.verbose {
			if p.LastModified != nil {
				sb.WriteString(fmt.Sprintf("     Last modified: %s\n", p.LastModified.Format("2006-01-02")))
			}
			if p.ChangeFrequency != "" {
				sb.WriteString(fmt.Sprintf("     Change frequency: %s\n", p.ChangeFrequency))
			}
			if p.DeclaredPriority != nil {
				sb.WriteString(fmt.Sprintf("     Declared priority: %.1f\n", *p.DeclaredPriority))
			}
		}
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by sitescout\n")
	sb.WriteString("https://github.com/brightlist/sitescout\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
