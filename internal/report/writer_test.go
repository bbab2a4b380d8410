package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/brightlist/sitescout/internal/model"
)

// createTestResult creates a result with sample data for testing.
func createTestResult() *model.DiscoveryResult {
	lastMod := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	priority := 1.0

	return &model.DiscoveryResult{
		Company: "Example Manufacturing",
		Origin:  "https://example.com",
		Pages: []model.PageRecord{
			{
				URL:              "https://example.com/",
				Title:            "Homepage",
				Category:         model.CategoryHomepage,
				RelevanceScore:   38.0,
				LastModified:     &lastMod,
				ChangeFrequency:  "weekly",
				DeclaredPriority: &priority,
			},
			{
				URL:            "https://example.com/about-us",
				Title:          "About Us",
				Category:       model.CategoryAbout,
				RelevanceScore: 20.0,
			},
			{
				URL:            "https://example.com/privacy-policy",
				Title:          "Privacy Policy",
				Category:       model.CategoryOther,
				RelevanceScore: 0.0,
			},
		},
		TotalFound:     3,
		SourcesChecked: 2,
		Elapsed:        1200 * time.Millisecond,
	}
}

// TestSimpleWriter tests plain-text output.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("renders ranked pages", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		n, err := w.Write(createTestResult())
		if err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
		}

		out := buf.String()
		for _, want := range []string{
			"Example Manufacturing",
			"https://example.com",
			"Pages Found:     3",
			"Sources Checked: 2",
			"Homepage",
			"About Us",
			"Status:          Complete",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("higher ranks come first", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestResult()); err != nil {
			t.Fatalf("Write failed: %v", err)
		}

		out := buf.String()
		if strings.Index(out, "Homepage") > strings.Index(out, "Privacy Policy") {
			t.Error("homepage listed after privacy policy")
		}
	})

	t.Run("verbose adds page metadata", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithVerbose(true)).Write(createTestResult()); err != nil {
			t.Fatalf("Write failed: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "Last modified: 2026-08-20") {
			t.Error("verbose output missing last modified date")
		}
		if !strings.Contains(out, "Change frequency: weekly") {
			t.Error("verbose output missing change frequency")
		}
	})

	t.Run("empty result hides page table by default", func(t *testing.T) {
		t.Parallel()

		res := &model.DiscoveryResult{Company: "No Website Co", Pages: []model.PageRecord{}}

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(res); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if strings.Contains(buf.String(), "RANKED PAGES") {
			t.Error("empty result rendered a page table")
		}

		buf.Reset()
		if _, err := NewSimpleWriter(&buf, WithShowEmpty(true)).Write(res); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if !strings.Contains(buf.String(), "No pages found") {
			t.Error("showEmpty did not render the empty table")
		}
	})

	t.Run("error result reports status", func(t *testing.T) {
		t.Parallel()

		res := &model.DiscoveryResult{
			Company: "Bad Input Co",
			Error:   `invalid website address "http://"`,
			Pages:   []model.PageRecord{},
		}

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(res); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if !strings.Contains(buf.String(), "ERROR - invalid website address") {
			t.Error("error status not rendered")
		}
	})
}

// TestJSONWriter tests JSON output.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("compact output round-trips", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestResult()); err != nil {
			t.Fatalf("Write failed: %v", err)
		}

		var decoded model.DiscoveryResult
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.Company != "Example Manufacturing" || len(decoded.Pages) != 3 {
			t.Errorf("round-trip lost data: %+v", decoded)
		}
		if decoded.Pages[0].DeclaredPriority == nil || *decoded.Pages[0].DeclaredPriority != 1.0 {
			t.Error("declared priority lost in round-trip")
		}
	})

	t.Run("pretty print indents", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(createTestResult()); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  ") {
			t.Error("pretty-printed output has no indentation")
		}
	})

	t.Run("full writer wraps with version", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewFullJSONWriter(&buf, "1.2.3").Write(createTestResult()); err != nil {
			t.Fatalf("Write failed: %v", err)
		}

		var wrapped JSONReport
		if err := json.Unmarshal(buf.Bytes(), &wrapped); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if wrapped.Version != "1.2.3" {
			t.Errorf("Version = %q, want 1.2.3", wrapped.Version)
		}
		if wrapped.Result == nil || wrapped.Result.TotalFound != 3 {
			t.Errorf("wrapped result wrong: %+v", wrapped.Result)
		}
	})
}

// TestMarkdownWriter tests Markdown output.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("renders tables and chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestResult()); err != nil {
			t.Fatalf("Write failed: %v", err)
		}

		out := buf.String()
		for _, want := range []string{
			"# Sitescout Report",
			"## Ranked Pages",
			"Example Manufacturing",
			"mermaid",
			"[link](https://example.com/about-us)",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("empty result skips chart", func(t *testing.T) {
		t.Parallel()

		res := &model.DiscoveryResult{Company: "No Website Co", Pages: []model.PageRecord{}}

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(res); err != nil {
			t.Fatalf("Write failed: %v", err)
		}

		out := buf.String()
		if strings.Contains(out, "mermaid") {
			t.Error("empty result rendered a chart")
		}
		if !strings.Contains(out, "No pages found.") {
			t.Error("empty page table placeholder missing")
		}
	})
}

// TestMultiWriter tests fan-out to several writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all destinations", func(t *testing.T) {
		t.Parallel()

		var text, js bytes.Buffer
		mw := NewMultiWriter(NewSimpleWriter(&text), NewJSONWriter(&js))

		n, err := mw.Write(createTestResult())
		if err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if n != text.Len()+js.Len() {
			t.Errorf("total = %d, want %d", n, text.Len()+js.Len())
		}
		if text.Len() == 0 || js.Len() == 0 {
			t.Error("one destination received no output")
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var after bytes.Buffer
		mw := NewMultiWriter(
			NewSimpleWriter(failingWriter{}),
			NewSimpleWriter(&after),
		)

		if _, err := mw.Write(createTestResult()); err == nil {
			t.Fatal("expected error from failing destination")
		}
		if after.Len() != 0 {
			t.Error("writer after the failure still received output")
		}
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("destination unavailable")
}

func TestTruncateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{"shorter than limit", "short", 10, "short"},
		{"exactly at limit", "exact", 5, "exact"},
		{"over limit", "a very long page title", 10, "a very ..."},
		{"tiny limit", "abcdef", 3, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := truncateString(tt.in, tt.maxLen); got != tt.want {
				t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
			}
		})
	}
}
