package seqdb

import (
	"strings"

	"go.uber.org/zap"

	"github.com/acorg/seqdb/internal/align"
	"github.com/acorg/seqdb/internal/codon"
)

// AddSequence implements spec.md §4.6/§6's add_sequence: translates
// (nucleotide input) or aligns directly (amino-acid input), then merges
// the result into the named entry's sequence variants. Warnings go to
// the Store's logger rather than being returned (spec.md §7).
func (st *Store) AddSequence(name, virusType, lineage, lab, date, labID, passage, reassortant, sequence, gene string) {
	incoming := st.buildSeq(sequence, gene, passage, reassortant, lab, labID, date)

	entry := st.getOrCreateEntry(name)
	entry.addDate(date)
	st.setVirusType(entry, virusType)
	st.setLineage(entry, lineage)

	st.mergeSeq(entry, incoming)
}

// buildSeq classifies sequence as nucleotide or amino acid (spec.md
// §6), runs C1-C3, and returns the populated Seq (not yet merged).
func (st *Store) buildSeq(sequence, gene, passage, reassortant, lab, labID, date string) Seq {
	s := Seq{Gene: gene, CollectedDate: date}
	s.Passages = appendUnique(s.Passages, passage)
	s.Reassortants = appendUnique(s.Reassortants, reassortant)
	if lab != "" && labID != "" {
		s.LabIDs = map[string][]string{lab: {labID}}
	}

	if codon.IsNucleotide(sequence) {
		s.Nucleotides = sequence
		result := st.translator.TranslateAndAlign(sequence)
		s.AminoAcids = result.AminoAcids
		if result.Aligned {
			s.AAShift = result.Shift
			s.NucShift = result.NucShift
		} else {
			s.AAShift = align.AlignmentFailed()
			s.NucShift = align.AlignmentFailed()
		}
		return s
	}

	s.AminoAcids = sequence
	result := st.translator.AlignAminoAcids(sequence)
	if result.Aligned {
		s.AAShift = result.Shift
	} else {
		s.AAShift = align.AlignmentFailed()
	}
	s.NucShift = align.NotAligned()
	return s
}

// setVirusType applies spec.md §4.6's entry-level virus_type update:
// set if empty, warn on conflict except the A(H3N0)->A(H3N2) promotion.
func (st *Store) setVirusType(e *Entry, virusType string) {
	if virusType == "" {
		return
	}
	switch {
	case e.VirusType == "":
		e.VirusType = virusType
	case e.VirusType == virusType:
	case e.VirusType == "A(H3N0)" && virusType == "A(H3N2)":
		e.VirusType = virusType
	default:
		st.logger.Warn("virus_type conflict", zap.String("name", e.Name),
			zap.String("existing", e.VirusType), zap.String("incoming", virusType))
	}
}

// setLineage applies spec.md §4.6's entry-level lineage update: set if
// empty, warn on conflict.
func (st *Store) setLineage(e *Entry, lineage string) {
	if lineage == "" {
		return
	}
	switch {
	case e.Lineage == "":
		e.Lineage = lineage
	case e.Lineage != lineage:
		st.logger.Warn("lineage conflict", zap.String("name", e.Name),
			zap.String("existing", e.Lineage), zap.String("incoming", lineage))
	}
}

// sequencesMatch implements spec.md §4.6's sub/super-string
// reconciliation rule: existing and incoming match when equal or
// either contains the other; replace (adopt incoming's data) only when
// incoming is the superstring, matching scenario S6 (superstring
// replaces) while S5 (substring ingested later) leaves the existing,
// longer string in place.
func sequencesMatch(existing, incoming string) (matched, replace bool) {
	switch {
	case existing == incoming:
		return true, false
	case strings.Contains(existing, incoming):
		return true, false
	case strings.Contains(incoming, existing):
		return true, true
	default:
		return false, false
	}
}

// mergeSeq implements spec.md §4.6: find a matching existing Seq in e
// (by nucleotides if incoming carries any, else by amino acids),
// replace on superstring hit, merge passages/reassortants/lab_ids/gene,
// or append incoming as a new variant if nothing matched.
func (st *Store) mergeSeq(e *Entry, incoming Seq) {
	for i := range e.Seqs {
		existing := &e.Seqs[i]

		var matched, replace bool
		if incoming.Nucleotides != "" {
			if existing.Nucleotides == "" {
				continue
			}
			matched, replace = sequencesMatch(existing.Nucleotides, incoming.Nucleotides)
		} else {
			matched, replace = sequencesMatch(existing.AminoAcids, incoming.AminoAcids)
		}
		if !matched {
			continue
		}

		if replace {
			existing.Nucleotides = incoming.Nucleotides
			existing.AminoAcids = incoming.AminoAcids
			existing.NucShift = incoming.NucShift
			existing.AAShift = incoming.AAShift
		}

		existing.Passages = appendUnique(existing.Passages, firstOf(incoming.Passages))
		existing.Reassortants = appendUnique(existing.Reassortants, firstOf(incoming.Reassortants))
		for lab, ids := range incoming.LabIDs {
			if existing.LabIDs == nil {
				existing.LabIDs = make(map[string][]string)
			}
			for _, id := range ids {
				existing.LabIDs[lab] = appendUnique(existing.LabIDs[lab], id)
			}
		}
		st.mergeGene(e.Name, existing, incoming.Gene)
		return
	}

	e.Seqs = append(e.Seqs, incoming)
}

// mergeGene implements spec.md §4.6's gene-conflict rule: empty is
// filled in silently; an incoming "HA" is allowed to replace any other
// recorded gene (resolving the spec's "HA-replacement allowed" clause);
// any other conflict is only warned about, keeping the existing value.
func (st *Store) mergeGene(entryName string, existing *Seq, incomingGene string) {
	switch {
	case incomingGene == "" || existing.Gene == incomingGene:
	case existing.Gene == "":
		existing.Gene = incomingGene
	case incomingGene == "HA":
		st.logger.Warn("gene conflict resolved by HA replacement", zap.String("name", entryName),
			zap.String("existing", existing.Gene), zap.String("incoming", incomingGene))
		existing.Gene = incomingGene
	default:
		st.logger.Warn("gene conflict", zap.String("name", entryName),
			zap.String("existing", existing.Gene), zap.String("incoming", incomingGene))
	}
}

func firstOf(ss []string) string {
	if len(ss) == 0 {
		return ""
	}
	return ss[0]
}
