package htmltable

import (
	"errors"
	"strings"
	"testing"
)

// TestExtract tests first-table extraction.
func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrNoTable when document has no table", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>nothing here</p></body></html>`
		_, err := Extract(strings.NewReader(html))
		if !errors.Is(err, ErrNoTable) {
			t.Errorf("expected ErrNoTable, got %v", err)
		}
	})

	t.Run("extracts rows in document order including the header", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><table>
			<tr><th>Scheme</th><th>Target Count</th></tr>
			<tr><td>Abaumannii</td><td>2390</td></tr>
			<tr><td>Senterica</td><td>3002</td></tr>
		</table></body></html>`

		table, err := Extract(strings.NewReader(html))
		if err != nil {
			t.Fatalf("failed to extract: %v", err)
		}

		if len(table.Rows) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(table.Rows))
		}
		if table.Rows[0][0] != "Scheme" || table.Rows[0][1] != "Target Count" {
			t.Errorf("unexpected header row: %v", table.Rows[0])
		}
		if table.Rows[1][0] != "Abaumannii" || table.Rows[2][0] != "Senterica" {
			t.Errorf("rows out of order: %v", table.Rows)
		}
	})

	t.Run("selects the first table only", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<table><tr><td>first</td></tr></table>
			<table><tr><td>second</td></tr></table>
		</body></html>`

		table, err := Extract(strings.NewReader(html))
		if err != nil {
			t.Fatalf("failed to extract: %v", err)
		}

		if len(table.Rows) != 1 || table.Rows[0][0] != "first" {
			t.Errorf("expected only the first table's row, got %v", table.Rows)
		}
	})

	t.Run("collects anchor hrefs inside the table in document order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="https://example.org/outside">outside</a>
			<table>
				<tr><td><a href="https://example.org/one">one</a></td></tr>
				<tr><td><a href="https://example.org/two">two</a></td></tr>
			</table>
		</body></html>`

		table, err := Extract(strings.NewReader(html))
		if err != nil {
			t.Fatalf("failed to extract: %v", err)
		}

		want := []string{"https://example.org/one", "https://example.org/two"}
		if len(table.Anchors) != len(want) {
			t.Fatalf("expected %d anchors, got %d: %v", len(want), len(table.Anchors), table.Anchors)
		}
		for i, href := range want {
			if table.Anchors[i] != href {
				t.Errorf("anchor %d: got %q, expected %q", i, table.Anchors[i], href)
			}
		}
	})

	t.Run("normalizes whitespace and nested markup in cells", func(t *testing.T) {
		t.Parallel()

		html := `<table><tr><td>
			<b>Acinetobacter</b>
			baumannii
		</td><td></td></tr></table>`

		table, err := Extract(strings.NewReader(html))
		if err != nil {
			t.Fatalf("failed to extract: %v", err)
		}

		if got := table.Rows[0][0]; got != "Acinetobacter baumannii" {
			t.Errorf("got %q, expected 'Acinetobacter baumannii'", got)
		}
		if got := table.Rows[0][1]; got != "" {
			t.Errorf("expected empty second cell, got %q", got)
		}
	})

	t.Run("tolerates malformed markup", func(t *testing.T) {
		t.Parallel()

		// Unclosed cells; x/net/html repairs these the way browsers do.
		html := `<table><tr><td>a<td>b<tr><td>c`
		table, err := Extract(strings.NewReader(html))
		if err != nil {
			t.Fatalf("failed to extract: %v", err)
		}
		if len(table.Rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(table.Rows))
		}
		if table.Rows[0][1] != "b" || table.Rows[1][0] != "c" {
			t.Errorf("unexpected rows: %v", table.Rows)
		}
	})
}
