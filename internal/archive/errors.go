package archive

import "errors"

// Sentinel errors returned by the archive fetcher. Callers discriminate
// with errors.Is; dynamic context is wrapped on at the failure site.
var (
	// ErrMissingVersionInfo is returned when the scheme version or the
	// parsed last-change timestamp is absent. The archive filename
	// cannot be deterministically built without both.
	ErrMissingVersionInfo = errors.New("scheme version or last-change timestamp missing")

	// ErrDownload is returned when the allele archive cannot be
	// downloaded completely.
	ErrDownload = errors.New("failed to download allele archive")

	// ErrExtract is returned when a downloaded archive cannot be
	// unpacked.
	ErrExtract = errors.New("failed to extract allele archive")
)
