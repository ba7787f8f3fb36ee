package seqdb

import "regexp"

// predicate is one filter conjunct evaluated against an (Entry, Seq)
// pair. spec.md §9 directs a predicate-conjunction builder in place of
// virtual-dispatch filter objects.
type predicate func(e *Entry, s *Seq) bool

// Iterator builds a conjunction of filters over the store's (Entry,
// Seq) pairs, applied only when Collect is called.
type Iterator struct {
	store      *Store
	predicates []predicate
}

// Iterate starts a new, unfiltered Iterator over the store.
func (st *Store) Iterate() *Iterator {
	return &Iterator{store: st}
}

func (it *Iterator) with(p predicate) *Iterator {
	it.predicates = append(it.predicates, p)
	return it
}

// Lab filters to sequences with at least one id recorded for lab.
func (it *Iterator) Lab(lab string) *Iterator {
	return it.with(func(_ *Entry, s *Seq) bool { return s.HasLab(lab) })
}

// LabID filters to sequences carrying exactly id among lab's ids.
func (it *Iterator) LabID(lab, id string) *Iterator {
	return it.with(func(_ *Entry, s *Seq) bool {
		for _, got := range s.LabIDs[lab] {
			if got == id {
				return true
			}
		}
		return false
	})
}

// Subtype filters to entries of the given virus_type.
func (it *Iterator) Subtype(virusType string) *Iterator {
	return it.with(func(e *Entry, _ *Seq) bool { return e.VirusType == virusType })
}

// Lineage filters to entries of the given B lineage.
func (it *Iterator) Lineage(lineage string) *Iterator {
	return it.with(func(e *Entry, _ *Seq) bool { return e.Lineage == lineage })
}

// Continent filters to entries from the given continent.
func (it *Iterator) Continent(continent string) *Iterator {
	return it.with(func(e *Entry, _ *Seq) bool { return e.Continent == continent })
}

// Country filters to entries from the given country.
func (it *Iterator) Country(country string) *Iterator {
	return it.with(func(e *Entry, _ *Seq) bool { return e.Country == country })
}

// Aligned filters to sequences whose aa_shift is (or is not) Aligned.
func (it *Iterator) Aligned(aligned bool) *Iterator {
	return it.with(func(_ *Entry, s *Seq) bool { return s.Aligned() == aligned })
}

// Gene filters to sequences of the given gene.
func (it *Iterator) Gene(gene string) *Iterator {
	return it.with(func(_ *Entry, s *Seq) bool { return s.Gene == gene })
}

// Clade filters to sequences carrying the given clade tag.
func (it *Iterator) Clade(clade string) *Iterator {
	return it.with(func(_ *Entry, s *Seq) bool { return s.HasClade(clade) })
}

// DateRange filters to entries whose Date() falls in [begin, end).
func (it *Iterator) DateRange(begin, end string) *Iterator {
	return it.with(func(e *Entry, _ *Seq) bool { return e.DateWithinRange(begin, end) })
}

// HasHiName filters to sequences carrying at least one hi_name.
func (it *Iterator) HasHiName() *Iterator {
	return it.with(func(_ *Entry, s *Seq) bool { return len(s.HiNames) > 0 })
}

// NameMatches filters to entries whose name matches re.
func (it *Iterator) NameMatches(re *regexp.Regexp) *Iterator {
	return it.with(func(e *Entry, _ *Seq) bool { return re.MatchString(e.Name) })
}

// Collect evaluates the filter conjunction and returns every matching
// (Entry, Seq) pair in store order.
func (it *Iterator) Collect() []Ref {
	var out []Ref
	for ei := range it.store.entries {
		e := &it.store.entries[ei]
		for si := range e.Seqs {
			s := &e.Seqs[si]
			if it.matches(e, s) {
				out = append(out, Ref{Entry: e, Seq: s})
			}
		}
	}
	return out
}

func (it *Iterator) matches(e *Entry, s *Seq) bool {
	for _, p := range it.predicates {
		if !p(e, s) {
			return false
		}
	}
	return true
}
