package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gauravorbit07-glitch/brandpulse/internal/model"
)

// testDashboard returns a dashboard payload with every section populated.
func testDashboard() *model.Dashboard {
	return &model.Dashboard{
		Brand:           "acme",
		ResourceID:      "prod-1",
		GeneratedAt:     1700000000000,
		VisibilityScore: 72.5,
		ModelScores: []model.ModelScore{
			{Model: "gpt-4o", Score: 80},
			{Model: "claude", Score: 65},
		},
		Competitors: []model.Competitor{
			{Name: "globex", Score: 64, Mentions: 12},
			{Name: "initech", Score: 81, Mentions: 30},
		},
		Sentiment: model.Sentiment{Positive: 0.6, Neutral: 0.3, Negative: 0.1},
		Citations: []model.Citation{
			{Domain: "reddit.com", URL: "https://reddit.com/r/a", Count: 3},
			{Domain: "example.com", URL: "https://example.com/b", Count: 9},
		},
	}
}

// TestMarkdownWriter tests markdown report generation.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes every section", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		n, err := w.Write(testDashboard())
		if err != nil {
			t.Fatalf("failed to write report: %v", err)
		}
		if n == 0 {
			t.Error("expected non-zero bytes written")
		}

		got := buf.String()
		for _, want := range []string{
			"# BrandPulse Visibility Report",
			"## Visibility by AI Model",
			"## Competitor Comparison",
			"## Sentiment",
			"## Top Cited Sources",
			"72.5",
			"`gpt-4o`",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("report missing %q", want)
			}
		}
	})

	t.Run("title-cases display names", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(testDashboard()); err != nil {
			t.Fatalf("failed to write report: %v", err)
		}

		got := buf.String()
		if !strings.Contains(got, "Acme") {
			t.Error("brand name should be title-cased")
		}
		if !strings.Contains(got, "Initech") {
			t.Error("competitor names should be title-cased")
		}
	})

	t.Run("competitors appear in rank order", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(testDashboard()); err != nil {
			t.Fatalf("failed to write report: %v", err)
		}

		got := buf.String()
		if strings.Index(got, "Initech") > strings.Index(got, "Globex") {
			t.Error("higher-scoring competitor should be listed first")
		}
	})

	t.Run("negative tone renders a warning", func(t *testing.T) {
		t.Parallel()

		d := testDashboard()
		d.Sentiment = model.Sentiment{Positive: 0.1, Neutral: 0.2, Negative: 0.7}

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(d); err != nil {
			t.Fatalf("failed to write report: %v", err)
		}
		if !strings.Contains(buf.String(), "negative tone") {
			t.Error("expected a negative-tone callout")
		}
	})

	t.Run("empty sections are omitted", func(t *testing.T) {
		t.Parallel()

		d := testDashboard()
		d.ModelScores = nil
		d.Competitors = nil
		d.Citations = nil

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(d); err != nil {
			t.Fatalf("failed to write report: %v", err)
		}

		got := buf.String()
		for _, absent := range []string{
			"## Visibility by AI Model",
			"## Competitor Comparison",
			"## Top Cited Sources",
		} {
			if strings.Contains(got, absent) {
				t.Errorf("report should omit %q when the section is empty", absent)
			}
		}
		if !strings.Contains(got, "## Sentiment") {
			t.Error("sentiment section should always be present")
		}
	})
}

// TestJSONWriter tests JSON report generation.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("compact output round-trips", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(testDashboard()); err != nil {
			t.Fatalf("failed to write report: %v", err)
		}

		var parsed model.Dashboard
		if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if parsed.Brand != "acme" || parsed.VisibilityScore != 72.5 {
			t.Errorf("unexpected payload %+v", parsed)
		}
		if len(parsed.Competitors) != 2 {
			t.Errorf("got %d competitors, want 2", len(parsed.Competitors))
		}
	})

	t.Run("pretty print indents", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(testDashboard()); err != nil {
			t.Fatalf("failed to write report: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  ") {
			t.Error("expected indented output")
		}
	})
}

// TestMultiWriter tests fan-out to multiple destinations.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var md, js bytes.Buffer
	w := NewMultiWriter(NewMarkdownWriter(&md), NewJSONWriter(&js))

	if _, err := w.Write(testDashboard()); err != nil {
		t.Fatalf("failed to write report: %v", err)
	}
	if md.Len() == 0 {
		t.Error("markdown destination is empty")
	}
	if js.Len() == 0 {
		t.Error("json destination is empty")
	}
}

// TestOpenReportFile tests report file creation.
func TestOpenReportFile(t *testing.T) {
	t.Parallel()

	t.Run("creates missing parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "dir", "report.md")
		f, err := OpenReportFile(path)
		if err != nil {
			t.Fatalf("failed to open report file: %v", err)
		}
		defer f.Close()

		if _, err := os.Stat(path); err != nil {
			t.Errorf("report file was not created: %v", err)
		}
	})

	t.Run("truncates an existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "report.md")
		if err := os.WriteFile(path, []byte("old content"), 0600); err != nil {
			t.Fatalf("failed to seed file: %v", err)
		}

		f, err := OpenReportFile(path)
		if err != nil {
			t.Fatalf("failed to open report file: %v", err)
		}
		f.Close()

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if len(data) != 0 {
			t.Errorf("expected truncated file, got %q", data)
		}
	})
}
