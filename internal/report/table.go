package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/bajicv/cgmlstget/internal/model"
)

// fetchedAtLayout formats the listing timestamp for terminal output.
const fetchedAtLayout = "2006-01-02 15:04:05 MST"

// TableWriter renders reports as terminal tables. This is the default
// interactive format.
type TableWriter struct {
	baseWriter
}

// NewTableWriter creates a TableWriter that outputs to the given
// writer.
func NewTableWriter(output io.Writer) *TableWriter {
	return &TableWriter{baseWriter: newBaseWriter(output)}
}

// WriteListing renders the scheme listing as a table preceded by the
// fetch timestamp.
func (w *TableWriter) WriteListing(listing *model.SchemeListing) error {
	if _, err := fmt.Fprintf(w.output, "cgMLST.org schemes as of %s (%d schemes)\n\n",
		listing.FetchedAt.Format(fetchedAtLayout), len(listing.Schemes)); err != nil {
		return err
	}

	tbl := tablewriter.NewTable(w.output)
	tbl.Header([]string{"ID", "Scheme", "Targets", "CTs"})
	for _, s := range listing.Schemes {
		if err := tbl.Append([]string{
			s.ID,
			s.Name,
			strconv.Itoa(s.TargetCount),
			strconv.Itoa(s.CTCount),
		}); err != nil {
			return err
		}
	}
	return tbl.Render()
}

// WriteLastChange renders the present fields of a last-change report
// as a two-column table.
func (w *TableWriter) WriteLastChange(report *model.LastChangeReport) error {
	tbl := tablewriter.NewTable(w.output)
	tbl.Header([]string{"Property", "Value"})
	for _, row := range lastChangeRows(report) {
		if err := tbl.Append(row); err != nil {
			return err
		}
	}
	return tbl.Render()
}
