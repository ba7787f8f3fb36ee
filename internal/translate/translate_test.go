package translate

import (
	"strings"
	"testing"
)

// reverseCodon is a fixed representative codon for each standard amino
// acid, used only to construct synthetic nucleotide fixtures for tests.
var reverseCodon = map[byte]string{
	'A': "GCT", 'R': "CGT", 'N': "AAT", 'D': "GAT", 'C': "TGT",
	'Q': "CAA", 'E': "GAA", 'G': "GGT", 'H': "CAT", 'I': "ATT",
	'L': "CTT", 'K': "AAA", 'M': "ATG", 'F': "TTT", 'P': "CCT",
	'S': "TCT", 'T': "ACT", 'W': "TGG", 'Y': "TAT", 'V': "GTT",
}

func nucleotidesFor(aa string) string {
	var sb strings.Builder
	for i := 0; i < len(aa); i++ {
		sb.WriteString(reverseCodon[aa[i]])
	}
	return sb.String()
}

func TestTranslateAndAlignH3SignalPeptide(t *testing.T) {
	signal := "MKTIIALSYIFCLVLG"
	mature := strings.Repeat("QKIPGNDNSTATLCLGHHAVPNGT", 20) // 480 aa
	aa := signal + mature
	nuc := nucleotidesFor(aa)

	c := New(nil)
	result := c.TranslateAndAlign(nuc)

	if !result.Aligned {
		t.Fatalf("expected alignment, got %+v", result)
	}
	if result.Subtype != "A(H3N2)" || result.Gene != "HA" {
		t.Fatalf("unexpected subtype/gene: %+v", result)
	}
	off, ok := result.Shift.Offset()
	if !ok || off != -16 {
		t.Fatalf("shift = %v, want Aligned(-16)", result.Shift)
	}
	if result.Frame != 0 {
		t.Fatalf("frame = %d, want 0", result.Frame)
	}
}

func TestTranslateAndAlignRejectsShortInput(t *testing.T) {
	c := New(nil)
	result := c.TranslateAndAlign("ACGT")
	if result.Aligned {
		t.Fatalf("short input should not align: %+v", result)
	}
}

func TestTranslateAndAlignNoCatalogMatch(t *testing.T) {
	aa := strings.Repeat("ACDEFGHIKLMNPQRSTVWY", 25) // 500 aa, no catalog pattern
	nuc := nucleotidesFor(aa)

	c := New(nil)
	result := c.TranslateAndAlign(nuc)
	if result.Aligned {
		t.Fatalf("expected no alignment, got %+v", result)
	}
	if result.Diagnostic == "" {
		t.Fatalf("expected a diagnostic candidate to be recorded")
	}
}

func TestTranslateAndAlignStopCodonSplit(t *testing.T) {
	signal := "MKTIIALSYIFCLVLG"
	mature := strings.Repeat("QKIPGNDNSTATLCLGHHAVPNGT", 20)
	junk := strings.Repeat("ACDEFGHIKL", 30)
	aa := junk + "*" + signal + mature
	nuc := nucleotidesFor(junk) + "TAA" + nucleotidesFor(signal+mature)

	c := New(nil)
	result := c.TranslateAndAlign(nuc)
	if !result.Aligned {
		t.Fatalf("expected alignment after stop-codon split, got %+v", result)
	}
	// The shift is relative to the full translation, so it also skips the
	// junk part and its stop: -(300 + 1 + 16) = -317.
	if off, _ := result.Shift.Offset(); off != -(len(junk) + 1 + len(signal)) {
		t.Fatalf("shift = %v, want Aligned(-317)", result.Shift)
	}
	_ = aa
}
