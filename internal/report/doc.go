// Package report renders discovery results for people and tools.
//
// Three formats are supported: plain text for terminals
// (SimpleWriter), JSON for downstream processing (JSONWriter), and
// Markdown for documentation (MarkdownWriter). MultiWriter fans a
// result out to several destinations at once.
package report
