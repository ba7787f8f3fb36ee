package seqdb

import (
	"strings"

	"github.com/acorg/seqdb/internal/align"
)

// AminoAcids implements spec.md §4.10's query-level AA accessor. With
// aligned=false it returns the raw amino acids unchanged. With
// aligned=true it requires aa_shift to be Aligned (ErrSequenceNotAligned
// otherwise), applies the shift widened by leftPartSize so that many
// more characters to the left of the aligned start (signal peptide and
// other upstream residues) are retained, masks everything before the
// longest substring free of '*' with 'X', truncates everything after,
// and finally pads/truncates to resize characters with 'X' when
// resize>0.
func (s *Seq) AminoAcidsView(aligned bool, leftPartSize, resize int) (string, error) {
	if !aligned {
		return s.AminoAcids, nil
	}
	off, ok := s.AAShift.Offset()
	if !ok {
		return "", ErrSequenceNotAligned
	}
	view := align.Aligned(off + leftPartSize).Apply(s.AminoAcids, 'X')
	view = maskOutsideLongestSpan(view)
	if resize > 0 {
		view = resizeTo(view, resize, 'X')
	}
	return view, nil
}

// NucleotidesView is the nucleotide analogue of AminoAcidsView: '-'
// padding, no stop-codon masking.
func (s *Seq) NucleotidesView(aligned bool, leftPartSize, resize int) (string, error) {
	if !aligned {
		return s.Nucleotides, nil
	}
	off, ok := s.NucShift.Offset()
	if !ok {
		return "", ErrSequenceNotAligned
	}
	view := align.Aligned(off + leftPartSize).Apply(s.Nucleotides, '-')
	if resize > 0 {
		view = resizeTo(view, resize, '-')
	}
	return view, nil
}

// maskOutsideLongestSpan finds the longest substring of aa containing
// no '*', masks every character before it with 'X', and drops every
// character after it entirely.
func maskOutsideLongestSpan(aa string) string {
	bestStart, bestEnd := 0, 0
	start := 0
	for i := 0; i <= len(aa); i++ {
		if i == len(aa) || aa[i] == '*' {
			if i-start > bestEnd-bestStart {
				bestStart, bestEnd = start, i
			}
			start = i + 1
		}
	}
	masked := []byte(aa[:bestEnd])
	for i := 0; i < bestStart; i++ {
		masked[i] = 'X'
	}
	return string(masked)
}

func resizeTo(s string, n int, fill byte) string {
	if len(s) >= n {
		return s[:n]
	}
	return s + strings.Repeat(string(fill), n-len(s))
}
