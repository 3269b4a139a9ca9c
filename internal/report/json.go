package report

import (
	"encoding/json"
	"io"

	"github.com/bajicv/cgmlstget/internal/model"
)

// JSONWriter renders reports as indented JSON for tool integration.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{baseWriter: newBaseWriter(output)}
}

// WriteListing encodes the scheme listing as JSON.
func (w *JSONWriter) WriteListing(listing *model.SchemeListing) error {
	return w.encode(listing)
}

// WriteLastChange encodes the last-change report as JSON. Absent
// fields are omitted via omitempty tags on the model type.
func (w *JSONWriter) WriteLastChange(report *model.LastChangeReport) error {
	return w.encode(report)
}

// encode writes any payload as indented JSON.
func (w *JSONWriter) encode(payload any) error {
	encoder := json.NewEncoder(w.output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
