// Package translate provides the translate-and-align coordinator: it
// tries all three reading frames, splits each on stop codons, and picks
// the first part that aligns successfully against the alignment catalog.
package translate

import (
	"go.uber.org/zap"

	"github.com/acorg/seqdb/internal/align"
	"github.com/acorg/seqdb/internal/codon"
)

// Default thresholds from spec.md §4.3.
const (
	MinAALen  = 400
	MinNucLen = 1200
)

// Result is the outcome of translating and aligning one raw nucleotide
// sequence.
type Result struct {
	Aligned     bool
	Subtype     string
	Lineage     string
	Gene        string
	Shift       align.Shift
	AminoAcids  string // full translation of the winning frame
	Frame       int
	NucShift    align.Shift // nuc_shift implied by Frame and Shift, when Aligned
	Diagnostic  string      // longest untranslated AA candidate, set only when !Aligned
}

// Coordinator runs C1 (codon.Translate) and C2 (align.MatchAll) across the
// three reading frames, the way annotate.Annotator coordinates per-variant
// lookups across a transcript cache.
type Coordinator struct {
	Logger *zap.Logger
}

// New creates a Coordinator. A nil logger is replaced with a no-op one.
func New(logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{Logger: logger}
}

// TranslateAndAlign implements spec.md §4.3.
func (c *Coordinator) TranslateAndAlign(nuc string) Result {
	if len(nuc) < MinNucLen {
		return Result{Aligned: false, Diagnostic: ""}
	}

	var results []Result
	var longestUnaligned Result
	longestLen := -1

	for frame := 0; frame < 3; frame++ {
		translated := codon.Translate(nuc, frame)
		parts := codon.SplitOnStop(translated)

		frameAligned := false
		for _, part := range parts {
			if len(part.AminoAcids) < MinAALen {
				continue
			}
			matches := align.MatchAll(part.AminoAcids)
			if len(matches) == 0 {
				if len(part.AminoAcids) > longestLen {
					longestLen = len(part.AminoAcids)
					longestUnaligned = Result{
						Aligned:    false,
						AminoAcids: translated,
						Frame:      frame,
						Diagnostic: part.AminoAcids,
					}
				}
				continue
			}

			m := c.resolve(matches)
			shift, err := m.Shift.Sub(part.Offset)
			if err != nil {
				continue
			}

			nucShift := align.Aligned(-frame)
			if off, ok := shift.Offset(); ok {
				nucShift = align.Aligned(-frame + 3*off)
			}

			results = append(results, Result{
				Aligned:    true,
				Subtype:    m.Subtype,
				Lineage:    m.Lineage,
				Gene:       m.Gene,
				Shift:      shift,
				AminoAcids: translated,
				Frame:      frame,
				NucShift:   nucShift,
			})
			frameAligned = true
			break // first aligned part of this frame wins; stop scanning further parts
		}
		_ = frameAligned
	}

	if len(results) == 0 {
		return longestUnaligned
	}
	if len(results) > 1 {
		c.Logger.Warn("multiple reading frames aligned", zap.Int("count", len(results)))
	}
	return results[0]
}

// AlignAminoAcids runs C2 (align.MatchAll) directly against an
// already-translated amino-acid string, for ingestion paths that start
// from raw protein sequence rather than nucleotides (spec.md §6). No
// frame search or stop-codon splitting applies; NucShift is never set.
func (c *Coordinator) AlignAminoAcids(aa string) Result {
	if len(aa) < MinAALen {
		return Result{Aligned: false}
	}
	matches := align.MatchAll(aa)
	if len(matches) == 0 {
		return Result{Aligned: false, AminoAcids: aa, Diagnostic: aa}
	}
	m := c.resolve(matches)
	return Result{
		Aligned:    true,
		Subtype:    m.Subtype,
		Lineage:    m.Lineage,
		Gene:       m.Gene,
		Shift:      m.Shift,
		AminoAcids: aa,
	}
}

// resolve picks among several matching rules per spec.md §4.2: if they
// all agree, return the first; otherwise warn and still return the
// first (catalog order as tie-break — spec.md §9 open question 1).
func (c *Coordinator) resolve(matches []align.Match) align.Match {
	if len(matches) > 1 {
		first := matches[0]
		ambiguous := false
		for _, m := range matches[1:] {
			if m.Subtype != first.Subtype || !m.Shift.Equal(first.Shift) {
				ambiguous = true
				break
			}
		}
		if ambiguous {
			c.Logger.Warn("ambiguous alignment match", zap.Int("candidates", len(matches)))
		}
	}
	return matches[0]
}
