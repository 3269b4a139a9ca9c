// Package htmltable extracts the first HTML table of a document into
// rows of cell text plus the anchor hrefs found inside that table.
//
// The cgMLST.org registry publishes both its scheme index and its
// per-scheme detail pages as plain HTML tables, so this extractor is
// the single parsing primitive the rest of the pipeline builds on.
//
// Design decision: We use golang.org/x/net/html rather than regex
// because:
//  1. It correctly handles malformed HTML common on the web
//  2. Provides a proper DOM-like structure
//  3. More maintainable than complex regex patterns
package htmltable
