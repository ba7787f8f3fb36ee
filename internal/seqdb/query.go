package seqdb

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Ref addresses one sequence variant by pointers to its Entry and Seq
// inside the store's entries slice. It carries no index coordinates; a
// call that inserts or removes entries can leave its pointers stale.
type Ref struct {
	Entry *Entry
	Seq   *Seq
}

// SeqID returns the stable "<name>__<passage>[__<dup-index>]" address
// (spec.md glossary) for the seqIdx'th sequence of e. dup-index is
// appended only when more than one Seq in e shares that passage, and is
// the 0-based count of same-passage Seqs preceding seqIdx.
func (e *Entry) SeqID(seqIdx int) string {
	passage := firstOf(e.Seqs[seqIdx].Passages)
	dup := 0
	count := 0
	for i, s := range e.Seqs {
		if firstOf(s.Passages) != passage {
			continue
		}
		if i == seqIdx {
			dup = count
		}
		count++
	}
	id := e.Name + "__" + passage
	if count > 1 {
		id += "__" + strconv.Itoa(dup)
	}
	return id
}

var seqIDYearSpace = regexp.MustCompile(`/\d{4} `)

// FindBySeqID implements spec.md §4.9/§9 open question 3: the "__"-
// delimited form takes precedence over the "<name> <passage>" space
// form when a seqID could be parsed as either.
func (st *Store) FindBySeqID(seqID string) (Ref, bool) {
	if strings.Contains(seqID, "__") {
		return st.findBySeqIDDelimited(seqID)
	}
	return st.findBySeqIDSpaceForm(seqID)
}

func (st *Store) findBySeqIDDelimited(seqID string) (Ref, bool) {
	parts := strings.Split(seqID, "__")
	name, err := url.QueryUnescape(parts[0])
	if err != nil {
		name = parts[0]
	}
	passage := ""
	if len(parts) > 1 {
		if p, err := url.QueryUnescape(parts[1]); err == nil {
			passage = p
		} else {
			passage = parts[1]
		}
	}
	dup := -1
	if len(parts) > 2 {
		if n, err := strconv.Atoi(parts[2]); err == nil {
			dup = n
		}
	}

	entry, ok := st.FindByName(name)
	if !ok {
		return Ref{}, false
	}
	count := 0
	for i := range entry.Seqs {
		if firstOf(entry.Seqs[i].Passages) != passage {
			continue
		}
		if dup < 0 || count == dup {
			return Ref{Entry: entry, Seq: &entry.Seqs[i]}, true
		}
		count++
	}
	return Ref{}, false
}

func (st *Store) findBySeqIDSpaceForm(seqID string) (Ref, bool) {
	loc := seqIDYearSpace.FindStringIndex(seqID)
	if loc == nil {
		return Ref{}, false
	}
	name := seqID[:loc[1]-1]
	passage := strings.TrimSpace(seqID[loc[1]:])

	if entry, seq, ok := st.FindHiName(name); ok {
		return Ref{Entry: entry, Seq: seq}, true
	}

	entry, ok := st.FindByName(name)
	if !ok {
		return Ref{}, false
	}
	for i := range entry.Seqs {
		if firstOf(entry.Seqs[i].Passages) == passage {
			return Ref{Entry: entry, Seq: &entry.Seqs[i]}, true
		}
	}
	return Ref{}, false
}

// FindHiName looks up a sequence by its matched antigenic name via the
// hi_name secondary index. Returns false if the index has never been
// built or was invalidated since the last mutation (spec.md §5).
func (st *Store) FindHiName(hiName string) (*Entry, *Seq, bool) {
	if !st.hiIndexValid {
		return nil, nil, false
	}
	coords, ok := st.hiIndex[hiName]
	if !ok {
		return nil, nil, false
	}
	e := &st.entries[coords[0]]
	return e, &e.Seqs[coords[1]], true
}

// Match implements spec.md §4.9: for each antigen name, try an exact
// entry-name match first, then the hi_name index.
func (st *Store) Match(antigens []string) []Ref {
	out := make([]Ref, len(antigens))
	for i, antigen := range antigens {
		if entry, ok := st.FindByName(antigen); ok {
			out[i] = Ref{Entry: entry, Seq: firstSeq(entry)}
			continue
		}
		if entry, seq, ok := st.FindHiName(antigen); ok {
			out[i] = Ref{Entry: entry, Seq: seq}
		}
	}
	return out
}

func firstSeq(e *Entry) *Seq {
	if len(e.Seqs) == 0 {
		return nil
	}
	return &e.Seqs[0]
}

// AllHiNames returns every hi_name recorded across the store, in
// entry/seq traversal order.
func (st *Store) AllHiNames() []string {
	var names []string
	for ei := range st.entries {
		for si := range st.entries[ei].Seqs {
			names = append(names, st.entries[ei].Seqs[si].HiNames...)
		}
	}
	return names
}

// AllPassages returns every distinct passage string recorded across the
// store, first-seen order.
func (st *Store) AllPassages() []string {
	var passages []string
	seen := make(map[string]bool)
	for ei := range st.entries {
		for si := range st.entries[ei].Seqs {
			for _, p := range st.entries[ei].Seqs[si].Passages {
				if !seen[p] {
					seen[p] = true
					passages = append(passages, p)
				}
			}
		}
	}
	return passages
}
