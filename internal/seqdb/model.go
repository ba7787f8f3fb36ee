// Package seqdb is the sequence database core: the Entry/Seq data model,
// the name-sorted Store with its hi-name secondary index, merge-on-ingest
// reconciliation, and the query surface downstream antigenic-cartography
// and phylogenetic tooling uses to address a specific sequence variant.
package seqdb

import "github.com/acorg/seqdb/internal/align"

// Seq is one sequence variant of one strain.
type Seq struct {
	Nucleotides string
	AminoAcids  string
	NucShift    align.Shift
	AAShift     align.Shift
	Gene        string // "HA" | "NA" | "M1" | "NS1" | ""

	Passages     []string            // insertion-order, uniqued
	Reassortants []string            // insertion-order, uniqued
	LabIDs       map[string][]string // lab name -> insertion-order, uniqued ids
	HiNames      []string            // insertion-order, uniqued
	Clades       []string            // insertion-order, uniqued

	Annotations string

	// CollectedDate is a SUPPLEMENT carried over from the original
	// implementation's per-sequence date, distinct from Entry.Dates,
	// used when an entry's variants were collected on different dates.
	CollectedDate string
}

// Aligned reports whether the sequence's amino-acid shift represents a
// successful alignment.
func (s *Seq) Aligned() bool {
	return s.AAShift.IsAligned()
}

// HasLab reports whether lab has any recorded ids on this sequence.
func (s *Seq) HasLab(lab string) bool {
	_, ok := s.LabIDs[lab]
	return ok
}

// HasClade reports whether clade is present on this sequence.
func (s *Seq) HasClade(clade string) bool {
	for _, c := range s.Clades {
		if c == clade {
			return true
		}
	}
	return false
}

// HasHiName reports whether hiName is present on this sequence.
func (s *Seq) HasHiName(hiName string) bool {
	for _, h := range s.HiNames {
		if h == hiName {
			return true
		}
	}
	return false
}

// PassagePresent reports whether passage is recorded, treating an empty
// Passages list as matching only the empty passage string.
func (s *Seq) PassagePresent(passage string) bool {
	if len(s.Passages) == 0 {
		return passage == ""
	}
	for _, p := range s.Passages {
		if p == passage {
			return true
		}
	}
	return false
}

// appendUnique appends v to list if it is not already present,
// preserving insertion order — the shared behavior backing Passages,
// Reassortants, HiNames, Clades, and per-lab id lists.
func appendUnique(list []string, v string) []string {
	if v == "" {
		return list
	}
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

// Entry is one strain: a canonical name and its sequence variants.
type Entry struct {
	Name      string
	VirusType string // "A(H1N1)" | "A(H3N2)" | "B" | "A(H5)" | ...
	Lineage   string // B only: "VICTORIA" | "YAMAGATA" | ""
	Country   string
	Continent string
	Dates     []string // sorted, unique ISO dates
	Seqs      []Seq
}

// Date returns the most recent recorded date, or "" if none.
func (e *Entry) Date() string {
	if len(e.Dates) == 0 {
		return ""
	}
	return e.Dates[len(e.Dates)-1]
}

// DateWithinRange reports whether Date() falls in [begin, end); an empty
// bound is unconstrained on that side.
func (e *Entry) DateWithinRange(begin, end string) bool {
	date := e.Date()
	if date == "" {
		date = "0000-00-00"
	}
	return (begin == "" || date >= begin) && (end == "" || date < end)
}

// addDate inserts d into Dates keeping it sorted and unique.
func (e *Entry) addDate(d string) {
	if d == "" {
		return
	}
	for _, existing := range e.Dates {
		if existing == d {
			return
		}
	}
	i := 0
	for i < len(e.Dates) && e.Dates[i] < d {
		i++
	}
	e.Dates = append(e.Dates, "")
	copy(e.Dates[i+1:], e.Dates[i:])
	e.Dates[i] = d
}

// Empty reports whether the entry has no sequence variants — the
// cleanup condition spec.md §3's Lifecycle names for entry removal.
func (e *Entry) Empty() bool {
	return len(e.Seqs) == 0
}
