// Package registry talks to the cgMLST.org scheme registry.
//
// It covers the extraction and resolution pipeline: the index page is
// parsed into ordered SchemeSummary records with stable ids derived
// from each row's hyperlink, a per-scheme detail page is folded into a
// SchemeDetail key/value record, and Resolve turns that record into a
// VersionInfo usable as an archive-name component.
//
// The two fetch calls are the package's only I/O; everything after the
// HTTP response is a pure transformation of the fetched content.
package registry
