package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/bajicv/cgmlstget/internal/model"
)

// MarkdownWriter renders reports as GitHub-flavored Markdown. This
// format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent
// markdown generation which provides type-safe tables and headings
// rather than hand-assembled strings.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// WriteListing renders the scheme listing as a Markdown table.
func (w *MarkdownWriter) WriteListing(listing *model.SchemeListing) error {
	md := markdown.NewMarkdown(w.output)

	md.H1("cgMLST.org Scheme Listing")
	md.PlainText("")
	md.PlainText(fmt.Sprintf("Fetched %s. %d schemes.",
		listing.FetchedAt.Format(fetchedAtLayout), len(listing.Schemes)))
	md.PlainText("")

	rows := make([][]string, 0, len(listing.Schemes))
	for _, s := range listing.Schemes {
		rows = append(rows, []string{
			"`" + s.ID + "`",
			s.Name,
			strconv.Itoa(s.TargetCount),
			strconv.Itoa(s.CTCount),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"ID", "Scheme", "Targets", "CTs"},
		Rows:   rows,
	})

	return md.Build()
}

// WriteLastChange renders the present fields of a last-change report
// as a Markdown property table.
func (w *MarkdownWriter) WriteLastChange(report *model.LastChangeReport) error {
	md := markdown.NewMarkdown(w.output)

	md.H1("Scheme Last Change")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   lastChangeRows(report),
	})

	return md.Build()
}
