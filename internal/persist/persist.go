// Package persist loads and saves a seqdb Store to the on-disk
// "sequence-database-v2" JSON schema.
package persist

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/acorg/seqdb/internal/align"
	"github.com/acorg/seqdb/internal/seqdb"
)

// SchemaVersion is the only version tag this package accepts on load.
const SchemaVersion = "sequence-database-v2"

// ErrVersionMismatch is returned when a loaded document's version tag
// is not SchemaVersion (spec.md §4.11: "fatal at load time").
var ErrVersionMismatch = fmt.Errorf("persist: schema version mismatch, expected %q", SchemaVersion)

type document struct {
	Version string      `json:"  version"`
	Data    []entryJSON `json:"data"`
}

type entryJSON struct {
	Name      string    `json:"N"`
	VirusType string    `json:"v,omitempty"`
	Lineage   string    `json:"l,omitempty"`
	Continent string    `json:"C,omitempty"`
	Country   string    `json:"c,omitempty"`
	Dates     []string  `json:"d,omitempty"`
	Seqs      []seqJSON `json:"s,omitempty"`
}

type seqJSON struct {
	AminoAcids   string              `json:"a,omitempty"`
	Nucleotides  string              `json:"n,omitempty"`
	AAShift      *align.Shift        `json:"s,omitempty"`
	NucShift     *align.Shift        `json:"t,omitempty"`
	Gene         string              `json:"g,omitempty"`
	Passages     []string            `json:"p,omitempty"`
	Reassortants []string            `json:"r,omitempty"`
	HiNames      []string            `json:"h,omitempty"`
	Clades       []string            `json:"c,omitempty"`
	LabIDs       map[string][]string `json:"l,omitempty"`
}

// shiftPtr returns a pointer to s for the JSON encoding, or nil when s
// is not Aligned, so the "s"/"t" key is omitted entirely rather than
// written as null (spec.md §6: "Shifts are emitted only when Aligned").
func shiftPtr(s align.Shift) *align.Shift {
	if !s.IsAligned() {
		return nil
	}
	return &s
}

// shiftOrNotAligned dereferences a decoded shift pointer, treating an
// absent "s"/"t" key the same as an explicit JSON null.
func shiftOrNotAligned(s *align.Shift) align.Shift {
	if s == nil {
		return align.NotAligned()
	}
	return *s
}

// Load reads and decodes a seqdb Store from path. Load is all-or-
// nothing: any decode error, or a version tag other than SchemaVersion,
// is returned and no partial store is produced.
func Load(path string, logger *zap.Logger) (*seqdb.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("persist: read %s: %w", path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("persist: decode %s: %w", path, err)
	}
	if doc.Version != SchemaVersion {
		return nil, fmt.Errorf("%w: got %q in %s", ErrVersionMismatch, doc.Version, path)
	}

	store := seqdb.New(logger)
	entries := make([]seqdb.Entry, 0, len(doc.Data))
	for _, ej := range doc.Data {
		entry := seqdb.Entry{
			Name:      ej.Name,
			VirusType: ej.VirusType,
			Lineage:   ej.Lineage,
			Continent: ej.Continent,
			Country:   ej.Country,
			Dates:     ej.Dates,
		}
		for _, sj := range ej.Seqs {
			entry.Seqs = append(entry.Seqs, seqdb.Seq{
				AminoAcids:   sj.AminoAcids,
				Nucleotides:  sj.Nucleotides,
				AAShift:      shiftOrNotAligned(sj.AAShift),
				NucShift:     shiftOrNotAligned(sj.NucShift),
				Gene:         sj.Gene,
				Passages:     sj.Passages,
				Reassortants: sj.Reassortants,
				HiNames:      sj.HiNames,
				Clades:       sj.Clades,
				LabIDs:       sj.LabIDs,
			})
		}
		entries = append(entries, entry)
	}
	store.SetEntries(entries)
	return store, nil
}

// Save encodes store to the "sequence-database-v2" schema and writes it
// to path.
func Save(path string, store *seqdb.Store) error {
	doc := document{Version: SchemaVersion}
	for _, e := range store.Entries() {
		ej := entryJSON{
			Name:      e.Name,
			VirusType: e.VirusType,
			Lineage:   e.Lineage,
			Continent: e.Continent,
			Country:   e.Country,
			Dates:     e.Dates,
		}
		for _, s := range e.Seqs {
			ej.Seqs = append(ej.Seqs, seqJSON{
				AminoAcids:   s.AminoAcids,
				Nucleotides:  s.Nucleotides,
				AAShift:      shiftPtr(s.AAShift),
				NucShift:     shiftPtr(s.NucShift),
				Gene:         s.Gene,
				Passages:     s.Passages,
				Reassortants: s.Reassortants,
				HiNames:      s.HiNames,
				Clades:       s.Clades,
				LabIDs:       s.LabIDs,
			})
		}
		doc.Data = append(doc.Data, ej)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("persist: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("persist: write %s: %w", path, err)
	}
	return nil
}
