// Package clade assigns clade tags to an aligned amino-acid string from a
// small table of position-specific signature rules, one table per
// subtype/lineage family.
package clade

import (
	"go.uber.org/zap"

	"github.com/acorg/seqdb/internal/align"
)

// aaAt returns the amino acid at 1-based position pos in canonical
// (shift-applied) numbering, reading directly from the raw aa string by
// subtracting the shift offset. Returns (0, false) if pos falls outside
// aa or the shift is not Aligned.
func aaAt(aa string, shift align.Shift, pos int) (byte, bool) {
	s, ok := shift.Offset()
	if !ok {
		return 0, false
	}
	idx := pos - 1 - s
	if idx < 0 || idx >= len(aa) {
		return 0, false
	}
	return aa[idx], true
}

func has(aa string, shift align.Shift, pos int, want byte) bool {
	got, ok := aaAt(aa, shift, pos)
	return ok && got == want
}

// Clades computes the clade list for one aligned amino-acid string,
// dispatching on virus_type/lineage the way the original seqdb dispatches
// update_clades. logger receives a warning for the B/Victoria "strange
// deletion" case; a nil logger is treated as zap.NewNop().
func Clades(aa string, shift align.Shift, virusType, lineage string, logger *zap.Logger) []string {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch {
	case virusType == "B" && lineage == "YAMAGATA":
		return yamagata(aa, shift)
	case virusType == "B" && lineage == "VICTORIA":
		return victoria(aa, shift, logger)
	case virusType == "A(H1N1)":
		return h1pdm(aa, shift)
	case virusType == "A(H3N2)":
		return h3n2(aa, shift)
	default:
		return nil
	}
}

// yamagata implements spec §4.5's B/Yamagata rule: position 166 in
// Victoria numbering.
func yamagata(aa string, shift align.Shift) []string {
	aaAt166, ok := aaAt(aa, shift, 166)
	if !ok {
		return nil
	}
	switch aaAt166 {
	case 'N':
		return []string{"Y2"}
	case 'Y':
		return []string{"Y3"}
	default:
		return nil
	}
}

// victoria implements spec §4.5's B/Victoria rules: clade 1/1A/1B from
// 58/75/172, plus the 2017 deletion-mutant clades from 162/163/164.
func victoria(aa string, shift align.Shift, logger *zap.Logger) []string {
	var r []string

	switch {
	case has(aa, shift, 75, 'K') && has(aa, shift, 172, 'P') && !has(aa, shift, 58, 'P'):
		r = append(r, "1A")
	case has(aa, shift, 58, 'P'):
		r = append(r, "1B")
	default:
		r = append(r, "1")
	}

	aa162, ok162 := aaAt(aa, shift, 162)
	aa163, ok163 := aaAt(aa, shift, 163)
	aa164, ok164 := aaAt(aa, shift, 164)

	switch {
	case ok162 && ok163 && ok164 && aa162 == '-' && aa163 == '-' && aa164 == '-':
		r = append(r, "TRIPLEDEL2017")
	case ok162 && ok163 && aa162 == '-' && aa163 == '-':
		r = append(r, "DEL2017")
	case ok162 && ok163 && ok164 && (aa162 == '-' || aa163 == '-' || aa164 == '-'):
		logger.Warn("strange B/Victoria deletion mutant", zap.String("aa", aa))
	}

	return r
}

// h1pdm implements spec §4.5's A(H1N1)pdm 6B/6B1/6B2 rules.
func h1pdm(aa string, shift align.Shift) []string {
	if !has(aa, shift, 163, 'Q') {
		return nil
	}
	r := []string{"6B"}
	if has(aa, shift, 162, 'N') {
		r = append(r, "6B1")
	}
	if has(aa, shift, 152, 'T') {
		r = append(r, "6B2")
	}
	return r
}

// posAA is one (position, amino acid) literal in an H3N2 clade
// signature's conjunction.
type posAA struct {
	pos int
	aa  byte
}

// cladeDesc names a clade by the conjunction of posAA literals that must
// all hold for the clade to be emitted.
type cladeDesc struct {
	name  string
	sig   []posAA
}

// h3n2Table is the seed signature catalog: a clade fires iff every
// (pos, aa) literal in its signature matches. Order is preserved in the
// output, and the same clade name may appear from more than one
// signature (GLY from either 160S or 160T).
var h3n2Table = []cladeDesc{
	{"3C.3", []posAA{{158, 'N'}, {159, 'F'}}},
	{"3A", []posAA{{138, 'S'}, {159, 'S'}, {225, 'D'}, {326, 'R'}}},
	{"3B", []posAA{{62, 'K'}, {83, 'R'}, {261, 'Q'}}},
	{"2A", []posAA{{158, 'N'}, {159, 'Y'}}},
	{"2A1", []posAA{{158, 'N'}, {159, 'Y'}, {171, 'K'}, {406, 'V'}, {484, 'E'}}},
	{"2A1A", []posAA{{121, 'K'}, {135, 'K'}, {158, 'N'}, {159, 'Y'}, {171, 'K'}, {406, 'V'}, {479, 'E'}, {484, 'E'}}},
	{"2A1B", []posAA{{92, 'R'}, {121, 'K'}, {158, 'N'}, {159, 'Y'}, {171, 'K'}, {311, 'Q'}, {406, 'V'}, {484, 'E'}}},
	{"2A2", []posAA{{131, 'K'}, {142, 'K'}, {158, 'N'}, {159, 'Y'}, {261, 'Q'}}},
	{"2A3", []posAA{{121, 'K'}, {135, 'K'}, {144, 'K'}, {150, 'K'}, {158, 'N'}, {159, 'Y'}, {261, 'Q'}}},
	{"2A4", []posAA{{31, 'S'}, {53, 'N'}, {142, 'G'}, {144, 'R'}, {158, 'N'}, {159, 'Y'}, {171, 'K'}, {192, 'T'}, {197, 'H'}}},
	{"GLY", []posAA{{160, 'S'}}},
	{"GLY", []posAA{{160, 'T'}}},
	{"159S", []posAA{{159, 'S'}}},
	{"159F", []posAA{{159, 'F'}}},
	{"159Y", []posAA{{159, 'Y'}}},
}

func h3n2(aa string, shift align.Shift) []string {
	var r []string
	for _, desc := range h3n2Table {
		match := true
		for _, p := range desc.sig {
			if !has(aa, shift, p.pos, p.aa) {
				match = false
				break
			}
		}
		if match {
			r = append(r, desc.name)
		}
	}
	return r
}
