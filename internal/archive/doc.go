// Package archive downloads and unpacks a scheme's allele archive.
//
// The destination name is deterministic, built from the scheme id and
// its resolved version info, and an existing archive or directory with
// that name blocks the operation before any network I/O. Downloads
// stream to a ".part" file that is renamed only on success, so an
// aborted run never leaves an artifact the idempotency check would
// mistake for a completed download.
package archive
