package align

import "regexp"

// ShiftMode selects how a matched rule's shift is derived.
type ShiftMode int

const (
	// SignalPeptide derives the shift from the match's end position:
	// the aligned sequence begins right after the signal peptide.
	SignalPeptide ShiftMode = iota
	// Fixed derives the shift as a constant k minus the match start
	// position.
	Fixed
)

// Rule is one entry in the alignment catalog: a regex search over a
// prefix of the translated amino-acid string, producing a subtype,
// lineage, gene, and shift when it matches.
//
// A Subtype beginning with '*' informs the computed shift but must not
// overwrite the caller's already-known entry subtype — used for N-type
// genes whose HA-like signal-peptide family is shared across several
// N subtypes.
type Rule struct {
	Subtype   string
	Lineage   string
	Gene      string
	ShiftMode ShiftMode
	Fixed     int // only meaningful when ShiftMode == Fixed
	Regex     *regexp.Regexp
	EndPos    int // max index into the AA string this rule searches
	Name      string
}

// InformOnly reports whether this rule's Subtype should only inform the
// computed shift, not overwrite an entry's stored subtype.
func (r Rule) InformOnly() bool {
	return len(r.Subtype) > 0 && r.Subtype[0] == '*'
}

// EffectiveSubtype strips the informational '*' prefix, if present.
func (r Rule) EffectiveSubtype() string {
	if r.InformOnly() {
		return r.Subtype[1:]
	}
	return r.Subtype
}

// Catalog is the ordered, static list of alignment rules. Order matters:
// when several rules match with conflicting shifts, the first match in
// catalog order wins (spec.md §9, open question 1 — preserved as
// directed, not re-litigated here).
var Catalog = []Rule{
	{
		Name:      "h3-MKT-13",
		Subtype:   "A(H3N2)",
		Gene:      "HA",
		ShiftMode: SignalPeptide,
		Regex:     regexp.MustCompile(`^MKT[A-Z]{2,5}LSYIFCLVLG`),
		EndPos:    40,
	},
	{
		Name:      "h3-QKI-fixed",
		Subtype:   "A(H3N2)",
		Gene:      "HA",
		ShiftMode: Fixed,
		Fixed:     0,
		Regex:     regexp.MustCompile(`QKIPGNDNSTATLCLGHHAV`),
		EndPos:    80,
	},
	{
		Name:      "h1-MKA-17",
		Subtype:   "A(H1N1)",
		Gene:      "HA",
		ShiftMode: SignalPeptide,
		Regex:     regexp.MustCompile(`^MKA[A-Z]{10,18}LLVLL`),
		EndPos:    40,
	},
	{
		Name:      "h1pdm-MKV",
		Subtype:   "*A(H1N1)",
		Gene:      "HA",
		ShiftMode: SignalPeptide,
		Regex:     regexp.MustCompile(`^MKV[A-Z]{10,18}LLLL`),
		EndPos:    40,
	},
	{
		Name:      "b-MKA-15",
		Subtype:   "B",
		Gene:      "HA",
		ShiftMode: SignalPeptide,
		Regex:     regexp.MustCompile(`^MKA[A-Z]{8,14}ILVL`),
		EndPos:    40,
	},
	{
		Name:      "na-fixed",
		Subtype:   "*A",
		Gene:      "NA",
		ShiftMode: Fixed,
		Fixed:     0,
		Regex:     regexp.MustCompile(`^MN[A-Z]{2,8}NQKI`),
		EndPos:    40,
	},
}

// Match is the result of matching an AA string against the catalog.
type Match struct {
	Subtype    string
	InformOnly bool
	Lineage    string
	Gene       string
	Shift      Shift
	Rule       Rule
}

// MatchAll searches the catalog over aa, truncated per-rule to its EndPos,
// and returns every rule that matched. Matching multiple rules is not an
// error by itself — the caller (internal/translate) decides what to do
// with ambiguity.
func MatchAll(aa string) []Match {
	var matches []Match
	for _, r := range Catalog {
		limit := len(aa)
		if r.EndPos > 0 && r.EndPos < limit {
			limit = r.EndPos
		}
		loc := r.Regex.FindStringIndex(aa[:limit])
		if loc == nil {
			continue
		}
		first, last := loc[0], loc[1]

		var shift Shift
		switch r.ShiftMode {
		case SignalPeptide:
			shift = Aligned(-last)
		case Fixed:
			shift = Aligned(r.Fixed - first)
		}

		matches = append(matches, Match{
			Subtype:    r.EffectiveSubtype(),
			InformOnly: r.InformOnly(),
			Lineage:    r.Lineage,
			Gene:       r.Gene,
			Shift:      shift,
			Rule:       r,
		})
	}
	return matches
}
