package model

import "testing"

// TestSchemeListingFind tests listing lookups.
func TestSchemeListingFind(t *testing.T) {
	t.Parallel()

	listing := &SchemeListing{
		Schemes: []SchemeSummary{
			{ID: "Abaumannii", Name: "Acinetobacter baumannii"},
			{ID: "Senterica", Name: "Salmonella enterica"},
		},
	}

	t.Run("finds a present id", func(t *testing.T) {
		t.Parallel()

		s, ok := listing.Find("Senterica")
		if !ok {
			t.Fatal("expected to find Senterica")
		}
		if s.Name != "Salmonella enterica" {
			t.Errorf("got %q", s.Name)
		}
	})

	t.Run("reports an absent id", func(t *testing.T) {
		t.Parallel()

		if _, ok := listing.Find("NotARealScheme"); ok {
			t.Error("expected NotARealScheme to be absent")
		}
	})

	t.Run("IDs preserves page order", func(t *testing.T) {
		t.Parallel()

		ids := listing.IDs()
		if len(ids) != 2 || ids[0] != "Abaumannii" || ids[1] != "Senterica" {
			t.Errorf("unexpected ids: %v", ids)
		}
	})
}
