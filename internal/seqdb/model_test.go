package seqdb

import (
	"testing"

	"github.com/acorg/seqdb/internal/align"
)

func TestSeqHelpers(t *testing.T) {
	s := Seq{
		AAShift: align.Aligned(-10),
		LabIDs:  map[string][]string{"CDC": {"1", "2"}},
		Clades:  []string{"3C.3"},
		HiNames: []string{"A/FOO/1/2019 (H3N2)"},
	}
	if !s.Aligned() {
		t.Fatalf("expected Aligned() true")
	}
	if !s.HasLab("CDC") || s.HasLab("NIID") {
		t.Fatalf("HasLab mismatch")
	}
	if !s.HasClade("3C.3") || s.HasClade("3A") {
		t.Fatalf("HasClade mismatch")
	}
	if !s.HasHiName("A/FOO/1/2019 (H3N2)") || s.HasHiName("other") {
		t.Fatalf("HasHiName mismatch")
	}
	if !s.PassagePresent("") {
		t.Fatalf("empty Passages should match empty passage query")
	}
	s.Passages = []string{"MDCK1"}
	if s.PassagePresent("") || !s.PassagePresent("MDCK1") {
		t.Fatalf("PassagePresent mismatch after setting Passages")
	}
}

func TestEntryDateHelpers(t *testing.T) {
	e := Entry{}
	if e.Date() != "" {
		t.Fatalf("expected empty Date on fresh entry")
	}
	e.addDate("2020-03-01")
	e.addDate("2019-01-01")
	e.addDate("2020-03-01") // duplicate
	if len(e.Dates) != 2 {
		t.Fatalf("Dates = %+v, want 2 unique entries", e.Dates)
	}
	if e.Dates[0] != "2019-01-01" || e.Dates[1] != "2020-03-01" {
		t.Fatalf("Dates not sorted: %+v", e.Dates)
	}
	if e.Date() != "2020-03-01" {
		t.Fatalf("Date() = %q, want 2020-03-01", e.Date())
	}
	if !e.DateWithinRange("2020-01-01", "2020-12-31") {
		t.Fatalf("expected date within range")
	}
	if e.DateWithinRange("2021-01-01", "") {
		t.Fatalf("expected date outside range to fail")
	}
}

func TestEntryEmpty(t *testing.T) {
	e := Entry{}
	if !e.Empty() {
		t.Fatalf("fresh entry should be Empty")
	}
	e.Seqs = append(e.Seqs, Seq{})
	if e.Empty() {
		t.Fatalf("entry with a seq should not be Empty")
	}
}

func TestAppendUniquePreservesOrder(t *testing.T) {
	var list []string
	list = appendUnique(list, "b")
	list = appendUnique(list, "a")
	list = appendUnique(list, "b")
	if len(list) != 2 || list[0] != "b" || list[1] != "a" {
		t.Fatalf("appendUnique = %+v, want [b a]", list)
	}
}
