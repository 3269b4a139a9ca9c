// Package report renders scheme listings and last-change reports.
//
// This package contains writers for different output formats:
//   - TableWriter: terminal tables for interactive use (default)
//   - JSONWriter: structured JSON output for tool integration
//   - MarkdownWriter: GitHub-flavored Markdown for documentation
//
// Design decision: We separate report writing from the data structures
// (which are in the model package) so new output formats can be added
// without modifying the core types. Writers implement the Writer
// interface and are interchangeable at the CLI boundary.
package report
