package catalog

import "testing"

func TestCatalogHasFourUniqueQuadrants(t *testing.T) {
	options := Options()
	if len(options) != 4 {
		t.Fatalf("expected 4 catalog options, got %d", len(options))
	}

	seen := map[QuadrantLabel]bool{}
	for _, option := range options {
		if seen[option.ImageLabel] {
			t.Fatalf("duplicate quadrant label %q", option.ImageLabel)
		}
		seen[option.ImageLabel] = true
		if option.BasePrice <= 0 || option.InstallPrice <= 0 {
			t.Fatalf("option %s has non-positive pricing", option.ID)
		}
	}
	for _, label := range []QuadrantLabel{LabelA, LabelB, LabelC, LabelD} {
		if !seen[label] {
			t.Fatalf("missing quadrant label %q", label)
		}
	}
}

func TestByLabel(t *testing.T) {
	option, ok := ByLabel(LabelC)
	if !ok {
		t.Fatal("expected label C to resolve")
	}
	if option.ID != "aluminum-glass" {
		t.Fatalf("expected aluminum-glass for label C, got %s", option.ID)
	}
	if option.FullPrice() != 2650 {
		t.Fatalf("expected full price 2650, got %d", option.FullPrice())
	}

	if _, ok := ByLabel("E"); ok {
		t.Fatal("expected unknown label to miss")
	}
}

func TestOptionsReturnsCopy(t *testing.T) {
	first := Options()
	first[0].BasePrice = 1

	if fresh := Options(); fresh[0].BasePrice == 1 {
		t.Fatal("mutating the returned slice must not affect the catalog")
	}
}
