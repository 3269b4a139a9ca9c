package model

import (
	"testing"
	"time"
)

// TestVersionInfoLastChangeStamp tests canonical timestamp rendering.
func TestVersionInfoLastChangeStamp(t *testing.T) {
	t.Parallel()

	t.Run("formats the parsed timestamp", func(t *testing.T) {
		t.Parallel()

		ts := time.Date(2024, time.January, 5, 10, 30, 0, 0, time.UTC)
		info := VersionInfo{LastChange: &ts}

		if got := info.LastChangeStamp(); got != "2024-01-05-10-30" {
			t.Errorf("got %q, expected '2024-01-05-10-30'", got)
		}
	})

	t.Run("absent timestamp yields an empty stamp", func(t *testing.T) {
		t.Parallel()

		var info VersionInfo
		if got := info.LastChangeStamp(); got != "" {
			t.Errorf("got %q, expected empty string", got)
		}
		if info.HasLastChange() {
			t.Error("expected HasLastChange to be false")
		}
	})
}

// TestNewLastChangeReport tests report construction from version info.
func TestNewLastChangeReport(t *testing.T) {
	t.Parallel()

	t.Run("copies present fields", func(t *testing.T) {
		t.Parallel()

		ts := time.Date(2024, time.January, 5, 10, 30, 0, 0, time.UTC)
		info := VersionInfo{
			Name:          "Acinetobacter baumannii cgMLST",
			Version:       "1.3",
			LastChangeRaw: "January 5, 2024, 10:30",
			LastChange:    &ts,
		}

		report := NewLastChangeReport("Abaumannii", info)
		if report.SchemeID != "Abaumannii" {
			t.Errorf("got scheme id %q", report.SchemeID)
		}
		if report.LastChange != "2024-01-05-10-30" {
			t.Errorf("got last change %q", report.LastChange)
		}
	})

	t.Run("absent fields stay empty", func(t *testing.T) {
		t.Parallel()

		report := NewLastChangeReport("Abaumannii", VersionInfo{Name: "A. baumannii"})
		if report.Version != "" || report.LastChange != "" || report.LastChangeRaw != "" {
			t.Errorf("expected empty optional fields, got %+v", report)
		}
	})
}
