package report

import (
	"encoding/json"
	"io"

	"github.com/gauravorbit07-glitch/brandpulse/internal/model"
)

// JSONWriter outputs dashboard reports in JSON format.
// This format is designed for tool integration and programmatic processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because it is sufficient for a payload this small and keeps
// output byte-identical to what the backend serves.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the dashboard report as JSON.
func (w *JSONWriter) Write(dashboard *model.Dashboard) (int, error) {
	var (
		raw []byte
		err error
	)
	if w.indent {
		raw, err = json.MarshalIndent(dashboard, "", "  ")
	} else {
		raw, err = json.Marshal(dashboard)
	}
	if err != nil {
		return 0, err
	}

	raw = append(raw, '\n')
	return w.output.Write(raw)
}
