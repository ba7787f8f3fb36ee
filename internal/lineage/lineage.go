// Package lineage detects the influenza B lineage (Victoria vs Yamagata)
// from the gap pattern of a gapped, aligned amino-acid string.
package lineage

import "github.com/acorg/seqdb/internal/align"

// Detect implements spec.md §4.8: if canonical position 162 (1-based) is
// present (not a gap) and any of 163/164/165/166 is a gap, the sequence
// is YAMAGATA; otherwise VICTORIA. aa is the raw, post-indel amino-acid
// string and shift its aa_shift — the same (pos-1-offset) addressing
// internal/clade uses, since both read position-specific residues out of
// the same shifted storage.
func Detect(aa string, shift align.Shift) string {
	if at(aa, shift, 162) != '-' && (at(aa, shift, 163) == '-' || at(aa, shift, 164) == '-' || at(aa, shift, 165) == '-' || at(aa, shift, 166) == '-') {
		return "YAMAGATA"
	}
	return "VICTORIA"
}

func at(aa string, shift align.Shift, pos1Based int) byte {
	s, ok := shift.Offset()
	if !ok {
		return 0
	}
	idx := pos1Based - 1 - s
	if idx < 0 || idx >= len(aa) {
		return 0
	}
	return aa[idx]
}
