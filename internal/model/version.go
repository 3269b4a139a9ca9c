package model

import "time"

// TimestampLayout is the canonical rendering of a scheme's
// last-change timestamp, used as a component of archive file names.
const TimestampLayout = "2006-01-02-15-04"

// VersionInfo is the resolved version/timestamp tuple for a scheme.
// Every field is optional: an empty string or nil pointer means the
// detail page did not carry the field, or the timestamp did not parse.
// Consumers must check presence explicitly before relying on a field.
type VersionInfo struct {
	// Name is the scheme's display name, when the detail page has one.
	Name string `json:"name,omitempty"`

	// Version is the published scheme version, when present.
	Version string `json:"version,omitempty"`

	// LastChangeRaw is the "Last Change" cell text exactly as rendered
	// by the registry, when present.
	LastChangeRaw string `json:"last_change_raw,omitempty"`

	// LastChange is the parsed last-change timestamp. It is nil when
	// LastChangeRaw was absent or did not match the expected pattern;
	// a parse failure is not an error.
	LastChange *time.Time `json:"last_change,omitempty"`
}

// HasVersion reports whether a version string was resolved.
func (v VersionInfo) HasVersion() bool {
	return v.Version != ""
}

// HasLastChange reports whether the last-change timestamp was both
// present and successfully parsed.
func (v VersionInfo) HasLastChange() bool {
	return v.LastChange != nil
}

// LastChangeStamp returns the parsed timestamp in TimestampLayout, or
// an empty string when the timestamp is absent.
func (v VersionInfo) LastChangeStamp() string {
	if v.LastChange == nil {
		return ""
	}
	return v.LastChange.Format(TimestampLayout)
}

// LastChangeReport is the user-facing report for the last-change
// operation. String fields are empty when the underlying detail page
// did not carry them; writers omit empty fields rather than failing.
type LastChangeReport struct {
	SchemeID      string `json:"scheme_id"`
	Name          string `json:"name,omitempty"`
	Version       string `json:"version,omitempty"`
	LastChangeRaw string `json:"last_change_raw,omitempty"`
	LastChange    string `json:"last_change,omitempty"`
}

// NewLastChangeReport builds the report payload for a scheme from its
// resolved version info.
func NewLastChangeReport(id string, info VersionInfo) LastChangeReport {
	return LastChangeReport{
		SchemeID:      id,
		Name:          info.Name,
		Version:       info.Version,
		LastChangeRaw: info.LastChangeRaw,
		LastChange:    info.LastChangeStamp(),
	}
}
