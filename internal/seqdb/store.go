package seqdb

import (
	"sort"

	"go.uber.org/zap"

	"github.com/acorg/seqdb/internal/translate"
)

// Store is an ordered sequence of Entry, plus a lazy hi_name secondary
// index. It is single-threaded and synchronous: callers must serialize
// ingest themselves, the same way internal/cache.Cache in the teacher
// is a plain map with no internal locking.
type Store struct {
	logger     *zap.Logger
	translator *translate.Coordinator
	entries    []Entry

	hiIndex      map[string][2]int
	hiIndexValid bool
}

// New creates an empty Store. A nil logger is replaced with a no-op one.
func New(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		logger:     logger,
		translator: translate.New(logger),
	}
}

// Len returns the number of entries in the store.
func (st *Store) Len() int { return len(st.entries) }

// Entries returns the store's entries in name order. Callers must not
// retain pointers into the returned slice across a mutating call.
func (st *Store) Entries() []Entry { return st.entries }

// FindByName looks up an entry by its exact canonical name via binary
// search (spec.md §4.9).
func (st *Store) FindByName(name string) (*Entry, bool) {
	i := sort.Search(len(st.entries), func(i int) bool { return st.entries[i].Name >= name })
	if i < len(st.entries) && st.entries[i].Name == name {
		return &st.entries[i], true
	}
	return nil, false
}

// entryIndexFor returns the sorted insertion index for name, and
// whether an entry with that name already exists at that index.
func (st *Store) entryIndexFor(name string) (int, bool) {
	i := sort.Search(len(st.entries), func(i int) bool { return st.entries[i].Name >= name })
	return i, i < len(st.entries) && st.entries[i].Name == name
}

// getOrCreateEntry returns a pointer to the entry named name, inserting
// a new empty one in sorted position if none exists yet (spec.md §4.6:
// "entries are kept sorted by name; ingest uses binary insertion").
func (st *Store) getOrCreateEntry(name string) *Entry {
	i, found := st.entryIndexFor(name)
	if found {
		return &st.entries[i]
	}
	st.entries = append(st.entries, Entry{})
	copy(st.entries[i+1:], st.entries[i:])
	st.entries[i] = Entry{Name: name}
	st.hiIndexValid = false
	return &st.entries[i]
}

// BuildHiNameIndex rebuilds the hi_name -> (entry_idx, seq_idx) index
// from scratch. Callers that mutate any Seq.HiNames directly must call
// this again before relying on FindHiName/Match (spec.md §5).
func (st *Store) BuildHiNameIndex() {
	idx := make(map[string][2]int)
	for ei := range st.entries {
		for si := range st.entries[ei].Seqs {
			for _, h := range st.entries[ei].Seqs[si].HiNames {
				idx[h] = [2]int{ei, si}
			}
		}
	}
	st.hiIndex = idx
	st.hiIndexValid = true
}

// InvalidateHiNameIndex marks the hi_name index stale, forcing callers
// through BuildHiNameIndex before the next FindHiName/Match lookup.
func (st *Store) InvalidateHiNameIndex() {
	st.hiIndexValid = false
}

// SetEntries replaces the store's entries wholesale, trusting the
// caller (internal/persist, loading an on-disk document already saved
// in sorted order) to provide them in ascending name order. The hi_name
// index is invalidated.
func (st *Store) SetEntries(entries []Entry) {
	st.entries = entries
	st.hiIndexValid = false
}

// Cleanup removes entries with no sequences, and drops any sequence
// that is empty or too-short/untranslated (spec.md §3's Lifecycle
// destruction rule).
func (st *Store) Cleanup() {
	kept := st.entries[:0]
	for _, e := range st.entries {
		seqs := e.Seqs[:0]
		for _, s := range e.Seqs {
			if s.Nucleotides == "" && s.AminoAcids == "" {
				continue
			}
			if isShort(s) {
				continue
			}
			seqs = append(seqs, s)
		}
		e.Seqs = seqs
		if e.Empty() {
			continue
		}
		kept = append(kept, e)
	}
	st.entries = kept
	st.hiIndexValid = false
}

// isShort mirrors the original's is_short(): a sequence whose
// translation never produced amino acids is judged by its raw
// nucleotide length against translate.MinNucLen; a sequence ingested
// directly as amino acids (no nucleotides recorded) is judged by its
// amino-acid length against translate.MinAALen.
func isShort(s Seq) bool {
	if s.AminoAcids == "" {
		return len(s.Nucleotides) < translate.MinNucLen
	}
	if s.Nucleotides == "" {
		return len(s.AminoAcids) < translate.MinAALen
	}
	return false
}
