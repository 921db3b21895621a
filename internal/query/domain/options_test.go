package query

import (
	"errors"
	"testing"
)

func TestParseSelectionDefaults(t *testing.T) {
	sel, err := ParseSelection("", " ", "")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sel != DefaultSelection() {
		t.Fatalf("expected defaults, got %+v", sel)
	}
	if sel.Label() != "Selected year: 2020" {
		t.Fatalf("unexpected label %q", sel.Label())
	}
}

func TestParseSelectionValues(t *testing.T) {
	sel, err := ParseSelection("1995", "Coal", "Electric Generators, Electric Utilities")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sel.Year != 1995 || sel.EnergySource != "Coal" || sel.ProducerType != "Electric Generators, Electric Utilities" {
		t.Fatalf("unexpected selection %+v", sel)
	}
	if !sel.InDomain() {
		t.Fatalf("expected selection in domain")
	}
}

func TestParseSelectionBadYear(t *testing.T) {
	if _, err := ParseSelection("twenty", "", ""); !errors.Is(err, ErrInvalidYear) {
		t.Fatalf("expected ErrInvalidYear, got %v", err)
	}
}

func TestSelectionOutOfDomain(t *testing.T) {
	sel := Selection{Year: 1989, EnergySource: "Unobtainium", ProducerType: "Total Electric Power Industry"}
	if sel.YearInDomain() || sel.SourceInDomain() || !sel.ProducerInDomain() || sel.InDomain() {
		t.Fatalf("unexpected domain checks for %+v", sel)
	}
}

func TestCatalog(t *testing.T) {
	opts := Catalog()
	if len(opts.Years) != 31 || opts.Years[0] != 1990 || opts.Years[30] != 2020 {
		t.Fatalf("unexpected years %v", opts.Years)
	}
	if len(opts.EnergySources) != 14 || len(opts.ProducerTypes) != 6 {
		t.Fatalf("unexpected catalog sizes %d/%d", len(opts.EnergySources), len(opts.ProducerTypes))
	}
	opts.EnergySources[0] = "mutated"
	if Catalog().EnergySources[0] == "mutated" {
		t.Fatalf("catalog must not expose shared slices")
	}
}
