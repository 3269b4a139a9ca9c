package model

import "time"

// SchemeSummary describes one row of the cgMLST.org registry index, in
// page order.
type SchemeSummary struct {
	// ID is the stable scheme identifier derived from the row's
	// hyperlink. It is the public vocabulary for all other operations
	// and is unique across a listing.
	ID string `json:"id"`

	// Name is the human-readable scheme name from the "Scheme" column.
	Name string `json:"name"`

	// TargetCount is the number of target loci in the scheme.
	TargetCount int `json:"target_count"`

	// CTCount is the number of complex types defined for the scheme.
	CTCount int `json:"ct_count"`

	// SourceURL is the row's anchor href exactly as published.
	SourceURL string `json:"source_url"`
}

// SchemeListing is the full registry listing together with the time it
// was fetched. The slice preserves registry page order.
type SchemeListing struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Schemes   []SchemeSummary `json:"schemes"`
}

// IDs returns the scheme identifiers in page order.
func (l *SchemeListing) IDs() []string {
	ids := make([]string, 0, len(l.Schemes))
	for _, s := range l.Schemes {
		ids = append(ids, s.ID)
	}
	return ids
}

// Find returns the summary with the given id, if present.
func (l *SchemeListing) Find(id string) (SchemeSummary, bool) {
	for _, s := range l.Schemes {
		if s.ID == id {
			return s, true
		}
	}
	return SchemeSummary{}, false
}
