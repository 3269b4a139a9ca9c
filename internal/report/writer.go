package report

import (
	"io"

	"github.com/bajicv/cgmlstget/internal/model"
)

// Writer renders registry reports to a destination.
//
// Design decision: We use an interface so the CLI can select the
// format once and hand the same value to every command; writing to
// files, stdout, or buffers works identically.
type Writer interface {
	// WriteListing renders the full scheme listing.
	WriteListing(listing *model.SchemeListing) error

	// WriteLastChange renders a scheme's last-change report. Fields
	// absent from the underlying detail page are omitted, never an
	// error.
	WriteLastChange(report *model.LastChangeReport) error
}

// baseWriter provides the shared output destination for writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// lastChangeRows returns the present fields of a last-change report as
// label/value pairs in display order.
func lastChangeRows(report *model.LastChangeReport) [][]string {
	rows := [][]string{{"Scheme ID", report.SchemeID}}
	if report.Name != "" {
		rows = append(rows, []string{"Name", report.Name})
	}
	if report.Version != "" {
		rows = append(rows, []string{"Version", report.Version})
	}
	if report.LastChangeRaw != "" {
		rows = append(rows, []string{"Last Change", report.LastChangeRaw})
	}
	if report.LastChange != "" {
		rows = append(rows, []string{"Last Change (canonical)", report.LastChange})
	}
	return rows
}
