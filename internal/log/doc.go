// Package log provides structured logging for cgmlstget.
//
// It wraps slog handlers with a TruncateHandler that caps oversized
// string attribute values. A scraper's natural log payloads (fetched
// HTML, long hrefs, archive URLs) can run to megabytes; truncating at
// the handler keeps debug logging usable without the call sites having
// to care.
package log
