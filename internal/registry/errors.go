package registry

import "errors"

// Sentinel errors returned by the registry clients.
//
// Design decision: We use package-level sentinel errors wrapped with
// fmt.Errorf("%w: ...") at the failure site. Callers discriminate with
// errors.Is while still seeing the dynamic context (URL, HTTP status)
// in the message.
var (
	// ErrRegistryFetch is returned when the scheme index page cannot be
	// fetched or is not a usable listing (transport failure, non-2xx
	// status, or malformed table content).
	ErrRegistryFetch = errors.New("failed to fetch scheme registry index")

	// ErrDetailFetch is returned when a per-scheme detail page cannot
	// be fetched.
	ErrDetailFetch = errors.New("failed to fetch scheme detail page")

	// ErrUnknownScheme is returned when a requested scheme id does not
	// appear in the live registry listing.
	ErrUnknownScheme = errors.New("unknown scheme id")
)
