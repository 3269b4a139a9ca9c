package htmltable

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ErrNoTable is returned when the document contains no <table> element.
// Callers are expected to surface this rather than swallow it: a
// registry page without a table means the site changed shape.
var ErrNoTable = errors.New("no table found in document")

// Table holds the contents of the first <table> element of a document.
type Table struct {
	// Rows are the table's rows in document order, each a slice of
	// cell text in column order. The header row, if the table has one,
	// is included; callers must skip or rename it.
	Rows [][]string

	// Anchors are the href attributes of every <a> element inside the
	// table, in document order. Callers that need to correlate rows to
	// hyperlinks do so positionally against the data rows.
	Anchors []string
}

// Extract parses HTML from r and returns the first table in document
// order. It returns ErrNoTable when the document has no table.
func Extract(r io.Reader) (*Table, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	tableNode := firstTable(doc)
	if tableNode == nil {
		return nil, ErrNoTable
	}

	t := &Table{
		Rows:    make([][]string, 0),
		Anchors: make([]string, 0),
	}
	collectRows(tableNode, t)
	collectAnchors(tableNode, t)
	return t, nil
}

// firstTable returns the first <table> element in document order.
func firstTable(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "table" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := firstTable(c); found != nil {
			return found
		}
	}
	return nil
}

// collectRows gathers the <tr> rows beneath the table node. Each row's
// cells are the text content of its <td>/<th> children in column order.
func collectRows(n *html.Node, t *Table) {
	if n.Type == html.ElementNode && n.Data == "tr" {
		t.Rows = append(t.Rows, collectCells(n))
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectRows(c, t)
	}
}

// collectCells gathers the cell text of a single <tr> element.
func collectCells(tr *html.Node) []string {
	cells := make([]string, 0)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "td" || n.Data == "th") {
			cells = append(cells, cellText(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return cells
}

// cellText returns the concatenated text content of a cell with runs
// of whitespace collapsed to single spaces. The registry wraps cell
// values in formatting elements and multi-line markup, so raw text
// nodes need normalizing before they are usable as field values.
func cellText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// collectAnchors gathers every anchor href inside the table.
func collectAnchors(n *html.Node, t *Table) {
	if n.Type == html.ElementNode && n.Data == "a" {
		if href := getAttr(n, "href"); href != "" {
			t.Anchors = append(t.Anchors, href)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectAnchors(c, t)
	}
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
