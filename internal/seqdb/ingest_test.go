package seqdb

import "testing"

// TestS5SubstringMerge exercises spec scenario S5: ingesting a
// substring after the full sequence keeps the longer stored string and
// merges passages.
func TestS5SubstringMerge(t *testing.T) {
	st := New(nil)
	st.AddSequence("X", "", "", "CDC", "2020-01-01", "1", "MDCK1", "", "ABCDEFG", "")
	st.AddSequence("X", "", "", "CDC", "2020-01-02", "2", "E3", "", "BCDE", "")

	entry, ok := st.FindByName("X")
	if !ok {
		t.Fatalf("entry X not found")
	}
	if len(entry.Seqs) != 1 {
		t.Fatalf("expected 1 seq, got %d", len(entry.Seqs))
	}
	if entry.Seqs[0].AminoAcids != "ABCDEFG" {
		t.Fatalf("AminoAcids = %q, want ABCDEFG", entry.Seqs[0].AminoAcids)
	}
	if len(entry.Seqs[0].Passages) != 2 {
		t.Fatalf("passages = %+v, want 2 entries", entry.Seqs[0].Passages)
	}
}

// TestS6SuperstringReplace exercises spec scenario S6: the reverse
// ingest order of S5 ends with the longer string adopted.
func TestS6SuperstringReplace(t *testing.T) {
	st := New(nil)
	st.AddSequence("X", "", "", "CDC", "2020-01-01", "1", "MDCK1", "", "BCDE", "")
	st.AddSequence("X", "", "", "CDC", "2020-01-02", "2", "E3", "", "ABCDEFG", "")

	entry, ok := st.FindByName("X")
	if !ok {
		t.Fatalf("entry X not found")
	}
	if len(entry.Seqs) != 1 {
		t.Fatalf("expected 1 seq, got %d", len(entry.Seqs))
	}
	if entry.Seqs[0].AminoAcids != "ABCDEFG" {
		t.Fatalf("AminoAcids = %q, want ABCDEFG", entry.Seqs[0].AminoAcids)
	}
}

// TestIdempotentIngest is invariant 3: ingesting the same record twice
// is a no-op beyond passage/lab-id dedup.
func TestIdempotentIngest(t *testing.T) {
	st := New(nil)
	st.AddSequence("X", "A(H3N2)", "", "CDC", "2020-01-01", "1", "MDCK1", "", "ABCDEFG", "HA")
	st.AddSequence("X", "A(H3N2)", "", "CDC", "2020-01-01", "1", "MDCK1", "", "ABCDEFG", "HA")

	entry, _ := st.FindByName("X")
	if len(entry.Seqs) != 1 {
		t.Fatalf("expected 1 seq after re-ingest, got %d", len(entry.Seqs))
	}
	if len(entry.Seqs[0].Passages) != 1 {
		t.Fatalf("expected passages deduped to 1, got %+v", entry.Seqs[0].Passages)
	}
	if len(entry.Seqs[0].LabIDs["CDC"]) != 1 {
		t.Fatalf("expected lab ids deduped to 1, got %+v", entry.Seqs[0].LabIDs)
	}
}

// TestEntryOrdering is invariant 4: entries remain strictly ascending
// by name regardless of ingest order.
func TestEntryOrdering(t *testing.T) {
	st := New(nil)
	names := []string{"C", "A", "B"}
	for _, n := range names {
		st.AddSequence(n, "", "", "", "", "", "", "", "ABCDEFG", "")
	}
	if st.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", st.Len())
	}
	entries := st.Entries()
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Name >= entries[i].Name {
			t.Fatalf("entries out of order: %q before %q", entries[i-1].Name, entries[i].Name)
		}
	}
}

// TestVirusTypeH3N0PromotionSilent verifies the one allowed virus_type
// conflict: A(H3N0) silently promotes to A(H3N2).
func TestVirusTypeH3N0PromotionSilent(t *testing.T) {
	st := New(nil)
	st.AddSequence("X", "A(H3N0)", "", "", "", "", "", "", "ABCDEFG", "")
	st.AddSequence("X", "A(H3N2)", "", "", "", "", "", "", "ABCDEFG", "")

	entry, _ := st.FindByName("X")
	if entry.VirusType != "A(H3N2)" {
		t.Fatalf("VirusType = %q, want A(H3N2)", entry.VirusType)
	}
}

// TestGeneHAReplacementAllowed verifies an incoming "HA" gene is
// allowed to replace a conflicting recorded gene.
func TestGeneHAReplacementAllowed(t *testing.T) {
	st := New(nil)
	st.AddSequence("X", "", "", "", "", "", "MDCK1", "", "ABCDEFG", "NA")
	st.AddSequence("X", "", "", "", "", "", "E3", "", "ABCDEFG", "HA")

	entry, _ := st.FindByName("X")
	if entry.Seqs[0].Gene != "HA" {
		t.Fatalf("Gene = %q, want HA", entry.Seqs[0].Gene)
	}
}

// TestNucleotideVsAminoAcidClassification verifies spec §6's
// character-set auto-classification.
func TestNucleotideVsAminoAcidClassification(t *testing.T) {
	st := New(nil)
	st.AddSequence("N", "", "", "", "", "", "", "", "ACGTACGTACGT", "")
	st.AddSequence("P", "", "", "", "", "", "", "", "ACDEFGHIKLMN", "")

	n, _ := st.FindByName("N")
	if n.Seqs[0].Nucleotides == "" {
		t.Fatalf("expected N to be classified as nucleotide")
	}
	p, _ := st.FindByName("P")
	if p.Seqs[0].Nucleotides != "" {
		t.Fatalf("expected P to be classified as amino acid, got nucleotides %q", p.Seqs[0].Nucleotides)
	}
	if p.Seqs[0].AminoAcids != "ACDEFGHIKLMN" {
		t.Fatalf("AminoAcids = %q, want ACDEFGHIKLMN", p.Seqs[0].AminoAcids)
	}
}
