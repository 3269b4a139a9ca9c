package registry

import (
	"strings"
	"time"

	"github.com/bajicv/cgmlstget/internal/model"
)

// Detail page labels read by the resolver.
const (
	labelName       = "Name"
	labelVersion    = "Version"
	labelLastChange = "Last Change"
)

// lastChangeLayouts are the accepted renderings of the last-change
// timestamp after comma removal and whitespace normalization. The site
// renders 24-hour times; the 12-hour form is accepted as a fallback.
var lastChangeLayouts = []string{
	"January 2 2006 15:04",
	"January 2 2006 3:04 PM",
}

// Resolve extracts the name, version, and last-change timestamp from a
// scheme detail record.
//
// Resolve is pure and total: any detail value, including nil or one
// with no keys at all, resolves to a VersionInfo with the
// corresponding fields absent. A timestamp that does not match the
// expected pattern leaves LastChange nil while LastChangeRaw keeps the
// original text, so the other fields still resolve.
func Resolve(detail *model.SchemeDetail) model.VersionInfo {
	var info model.VersionInfo

	if v, ok := detail.Get(labelName); ok {
		info.Name = v
	}
	if v, ok := detail.Get(labelVersion); ok {
		info.Version = v
	}
	if raw, ok := detail.Get(labelLastChange); ok {
		info.LastChangeRaw = raw
		if ts, ok := parseLastChange(raw); ok {
			info.LastChange = &ts
		}
	}

	return info
}

// parseLastChange parses the registry's human-readable timestamp
// ("January 5, 2024, 10:30"). Commas are treated as noise and runs of
// whitespace are collapsed before trying the accepted layouts.
func parseLastChange(raw string) (time.Time, bool) {
	cleaned := strings.Join(strings.Fields(strings.ReplaceAll(raw, ",", " ")), " ")
	for _, layout := range lastChangeLayouts {
		if ts, err := time.Parse(layout, cleaned); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
