package seqdb

import (
	"strings"

	"go.uber.org/zap"

	"github.com/acorg/seqdb/internal/clade"
	"github.com/acorg/seqdb/internal/indel"
	"github.com/acorg/seqdb/internal/lineage"
)

// Reconcile runs the post-ingest passes spec.md's data-flow diagram
// describes: C8 indel inference across every aligned Seq of virusType,
// splicing the resulting gaps back into raw storage, then C9 B-lineage
// detection and C4 clade classification over the now-gapped sequences.
// It is not run automatically by AddSequence — callers batch ingest
// then call Reconcile once per virus_type touched, matching spec.md §5's
// single-threaded, caller-serialized model.
func (st *Store) Reconcile(virusType string) {
	type ref struct{ entryIdx, seqIdx int }

	var refs []ref
	var entries []indel.Entry
	for ei := range st.entries {
		e := &st.entries[ei]
		if e.VirusType != virusType {
			continue
		}
		for si := range e.Seqs {
			s := &e.Seqs[si]
			if !s.Aligned() {
				continue
			}
			view, err := s.AminoAcidsView(true, 0, 0)
			if err != nil {
				continue
			}
			refs = append(refs, ref{ei, si})
			entries = append(entries, indel.Entry{AminoAcids: view, Name: e.Name})
		}
	}

	if len(entries) > 0 {
		results := indel.Detect(virusType, entries, st.logger)
		for i, r := range results {
			if r.SwitchMaster {
				st.logger.Warn("indel: sequence could not be reconciled to any master",
					zap.String("name", entries[i].Name))
				continue
			}
			seq := &st.entries[refs[i].entryIdx].Seqs[refs[i].seqIdx]
			spliceGaps(seq, r.Gaps)
		}
	}

	st.classify(virusType)
}

// spliceGaps converts each aligned-coordinate gap back to raw
// amino-acid coordinates (rawPos = alignedPos - aa_shift) and inserts
// it, applying gaps front-to-back since each recorded position already
// counts the gaps inserted before it.
func spliceGaps(seq *Seq, gaps []indel.Gap) {
	off, ok := seq.AAShift.Offset()
	if !ok {
		return
	}
	raw := seq.AminoAcids
	for _, g := range gaps {
		pos := g.Pos - off
		if pos < 0 {
			pos = 0
		}
		if pos > len(raw) {
			pos = len(raw)
		}
		raw = raw[:pos] + strings.Repeat("-", g.K) + raw[pos:]
	}
	seq.AminoAcids = raw
}

// classify applies C9 (B-lineage detection) and C4 (clade
// classification) to every aligned Seq of virusType.
func (st *Store) classify(virusType string) {
	for ei := range st.entries {
		e := &st.entries[ei]
		if e.VirusType != virusType {
			continue
		}
		for si := range e.Seqs {
			s := &e.Seqs[si]
			if !s.Aligned() {
				continue
			}
			if virusType == "B" {
				detected := lineage.Detect(s.AminoAcids, s.AAShift)
				switch {
				case e.Lineage == "":
					e.Lineage = detected
				case e.Lineage != detected:
					st.logger.Warn("lineage conflict after reconciliation",
						zap.String("name", e.Name), zap.String("existing", e.Lineage),
						zap.String("detected", detected))
				}
			}
			for _, c := range clade.Clades(s.AminoAcids, s.AAShift, e.VirusType, e.Lineage, st.logger) {
				s.Clades = appendUnique(s.Clades, c)
			}
		}
	}
}
