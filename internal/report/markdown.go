package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gauravorbit07-glitch/brandpulse/internal/model"
)

// maxCitations limits how many cited sources the markdown report lists.
const maxCitations = 10

// MarkdownWriter outputs dashboard reports in GitHub Flavored Markdown.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter

	// titleCaser normalizes brand and competitor display names.
	titleCaser cases.Caser
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		titleCaser: cases.Title(language.English, cases.NoLower),
	}
}

// Write outputs the dashboard report in Markdown format.
func (w *MarkdownWriter) Write(dashboard *model.Dashboard) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, dashboard)
	w.writeModelScores(md, dashboard)
	w.writeCompetitors(md, dashboard)
	w.writeSentiment(md, dashboard)
	w.writeCitations(md, dashboard)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with the overall visibility score.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, d *model.Dashboard) {
	md.H1("BrandPulse Visibility Report")
	md.PlainText("")

	generated := time.UnixMilli(d.GeneratedAt).UTC()

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Brand", w.titleCaser.String(d.Brand)},
			{"Visibility Score", formatScore(d.VisibilityScore)},
			{"Rank vs Competitors", "#" + strconv.Itoa(d.BrandRank())},
			{"Generated", generated.Format("2006-01-02 15:04:05 MST")},
		},
	})
	md.PlainText("")
}

// writeModelScores writes the per-model score breakdown.
func (w *MarkdownWriter) writeModelScores(md *markdown.Markdown, d *model.Dashboard) {
	if len(d.ModelScores) == 0 {
		return
	}

	md.H2("Visibility by AI Model")
	md.PlainText("")

	rows := make([][]string, 0, len(d.ModelScores))
	for _, ms := range d.ModelScores {
		rows = append(rows, []string{"`" + ms.Model + "`", formatScore(ms.Score)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Model", "Score"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeCompetitors writes the ranked competitor comparison.
func (w *MarkdownWriter) writeCompetitors(md *markdown.Markdown, d *model.Dashboard) {
	if len(d.Competitors) == 0 {
		return
	}

	md.H2("Competitor Comparison")
	md.PlainText("")

	rows := make([][]string, 0, len(d.Competitors))
	for i, c := range d.RankedCompetitors() {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			w.titleCaser.String(c.Name),
			formatScore(c.Score),
			strconv.Itoa(c.Mentions),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Rank", "Competitor", "Score", "Mentions"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSentiment writes the sentiment breakdown with a tone callout.
func (w *MarkdownWriter) writeSentiment(md *markdown.Markdown, d *model.Dashboard) {
	md.H2("Sentiment")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Tone", "Share"},
		Rows: [][]string{
			{"Positive", formatPercent(d.Sentiment.Positive)},
			{"Neutral", formatPercent(d.Sentiment.Neutral)},
			{"Negative", formatPercent(d.Sentiment.Negative)},
		},
	})
	md.PlainText("")

	switch d.Sentiment.Dominant() {
	case "positive":
		md.Note("AI models mention this brand in a mostly positive tone.")
	case "negative":
		md.Warning("AI models mention this brand in a mostly negative tone.")
	default:
		md.Note("AI models mention this brand in a mostly neutral tone.")
	}
	md.PlainText("")
}

// writeCitations writes the most-cited sources.
func (w *MarkdownWriter) writeCitations(md *markdown.Markdown, d *model.Dashboard) {
	if len(d.Citations) == 0 {
		return
	}

	md.H2("Top Cited Sources")
	md.PlainText("")

	rows := make([][]string, 0, maxCitations)
	for _, c := range d.TopCitations(maxCitations) {
		rows = append(rows, []string{
			c.Domain,
			"[" + c.URL + "](" + c.URL + ")",
			strconv.Itoa(c.Count),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Source", "Page", "Citations"},
		Rows:   rows,
	})
	md.PlainText("")
}

// formatScore renders a 0-100 score with one decimal place.
func formatScore(score float64) string {
	return fmt.Sprintf("%.1f", score)
}

// formatPercent renders a percentage share with one decimal place.
func formatPercent(share float64) string {
	return fmt.Sprintf("%.1f%%", share)
}
