// Package indel reconciles same-virus_type amino-acid sequences of
// varying length against a chosen master sequence, inserting '-' gaps so
// every sequence ends up the same length and positionally aligned.
package indel

import (
	"errors"
	"strings"

	"go.uber.org/zap"
)

// Canonical master lengths, one per virus_type with a known normal HA
// length; virus_types outside this set always start with a switchable
// master (the first entry's amino acids).
const (
	h1Len = 549
	h3Len = 550
	bLen  = 570

	maxGap                     = 5
	minCommonFraction          = 0.7
	masterSwitchLengthFraction = 0.9
)

func canonicalLength(virusType string) (int, bool) {
	switch virusType {
	case "A(H1N1)":
		return h1Len, true
	case "A(H3N2)":
		return h3Len, true
	case "B":
		return bLen, true
	default:
		return 0, false
	}
}

// Entry is one amino-acid sequence to reconcile against the master.
// Name is carried only for log messages.
type Entry struct {
	AminoAcids string
	Name       string
}

// Gap is one recorded (position, gap-count) insertion. Pos is 0-based in
// the entry's amino acids with every earlier Gap of the same Result
// already inserted.
type Gap struct {
	Pos int
	K   int
}

// Result is the outcome for one input Entry.
type Result struct {
	AminoAcids   string
	Gaps         []Gap
	SwitchMaster bool // true if this entry could not be reconciled against any master tried
}

// errSwitchMaster signals that an entry could not be aligned to the
// current master within the common-fraction threshold. It never escapes
// this package.
var errSwitchMaster = errors.New("indel: switch master")

func common(a, b byte) bool {
	return a == b && a != 'X' && a != '-'
}

func numberOfCommonFrom(a string, startA int, b string, startB int) int {
	n := 0
	for startA < len(a) && startB < len(b) {
		if common(a[startA], b[startB]) {
			n++
		}
		startA++
		startB++
	}
	return n
}

func numberOfCommon(a, b string) int {
	return numberOfCommonFrom(a, 0, b, 0)
}

func numberOfCommonBefore(a, b string, last int) int {
	if len(a) < last {
		last = len(a)
	}
	if len(b) < last {
		last = len(b)
	}
	n := 0
	for pos := 0; pos < last; pos++ {
		if common(a[pos], b[pos]) {
			n++
		}
	}
	return n
}

// nextDisagreement walks forward from pos to the first position where
// toAlign and master neither agree nor have a gap on either side.
func nextDisagreement(toAlign, master string, pos int) int {
	last := len(toAlign)
	if len(master) < last {
		last = len(master)
	}
	for pos < last && (common(toAlign[pos], master[pos]) || toAlign[pos] == '-' || master[pos] == '-') {
		pos++
	}
	return pos
}

type candidate struct {
	pos, k, numCommon int
}

// better reports whether c is preferred over o: higher numCommon wins;
// ties broken by lower pos.
func (c candidate) better(o candidate) bool {
	if c.numCommon != o.numCommon {
		return c.numCommon > o.numCommon
	}
	return c.pos < o.pos
}

// alignTo reconciles toAlign against master, repeatedly finding the
// single best gap-insertion candidate at or after a cursor that moves
// past each applied insertion, until no improving candidate remains. It applies the
// B/Yamagata-163 and B/Victoria-triple-del-2017 hacks when virusType is
// "B". It returns errSwitchMaster if the best common-count it reaches
// falls under 0.7 of the master's length.
func alignTo(master, toAlign, virusType string) (string, []Gap, error) {
	var gaps []Gap
	bestCommon := numberOfCommon(master, toAlign)
	start := 0

	for start < len(toAlign) {
		currentCommon := numberOfCommon(master, toAlign)

		lastPos := len(toAlign)
		if len(master) < lastPos {
			lastPos = len(master)
		}

		var candidates []candidate
		for pos := nextDisagreement(toAlign, master, start); pos < lastPos; pos = nextDisagreement(toAlign, master, pos+1) {
			if pos+maxGap >= lastPos {
				continue
			}
			before := numberOfCommonBefore(master, toAlign, pos)
			for k := 1; k <= maxGap; k++ {
				if common(master[pos+k], toAlign[pos]) {
					candidates = append(candidates, candidate{
						pos:       pos,
						k:         k,
						numCommon: before + numberOfCommonFrom(master, pos+k, toAlign, pos),
					})
				}
			}
		}

		start = len(toAlign)
		if len(candidates) == 0 {
			continue
		}
		best := candidates[0]
		for _, c := range candidates[1:] {
			if c.better(best) {
				best = c
			}
		}
		if best.numCommon <= currentCommon {
			continue
		}

		pos, k := best.pos, best.k
		switch {
		case virusType == "B" && k == 1 && pos > 163-1 && pos <= 166-1:
			pos = 163 - 1
		case virusType == "B" && k == 3 && pos == 164-1:
			pos = 162 - 1
		}

		toAlign = toAlign[:pos] + strings.Repeat("-", k) + toAlign[pos:]
		gaps = append(gaps, Gap{Pos: pos, K: k})
		if after := numberOfCommon(master, toAlign); after > bestCommon {
			bestCommon = after
		}
		start = pos + k + 1
	}

	if bestCommon < int(float64(len(master))*minCommonFraction) {
		return "", nil, errSwitchMaster
	}
	return toAlign, gaps, nil
}

func chooseMaster(virusType string, entries []Entry) (master string, switchable bool) {
	if length, known := canonicalLength(virusType); known {
		for _, e := range entries {
			if len(e.AminoAcids) == length {
				return e.AminoAcids, false
			}
		}
	}
	return entries[0].AminoAcids, true
}

// Detect reconciles every entry of one virus_type against a chosen
// master, switching masters (and reverting all progress so far) when an
// entry fails to align but is long enough and the current master
// accepts being aligned to it in turn. logger receives info-level
// messages on master selection/switching; a nil logger is treated as
// zap.NewNop().
func Detect(virusType string, entries []Entry, logger *zap.Logger) []Result {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(entries) == 0 {
		return nil
	}

	master, switchable := chooseMaster(virusType, entries)
	logger.Info("indel: master chosen", zap.String("virus_type", virusType), zap.Int("length", len(master)), zap.Bool("switchable", switchable))

	results := make([]Result, len(entries))
	for i, e := range entries {
		results[i] = Result{AminoAcids: e.AminoAcids}
	}

	for {
		restarted := false
		for i, e := range entries {
			gapped, gaps, err := alignTo(master, e.AminoAcids, virusType)
			if err == nil {
				results[i] = Result{AminoAcids: gapped, Gaps: gaps}
				continue
			}

			if switchable && len(e.AminoAcids) >= int(float64(len(master))*masterSwitchLengthFraction) {
				if _, _, symErr := alignTo(e.AminoAcids, master, virusType); symErr == nil {
					master = e.AminoAcids
					logger.Info("indel: master switched", zap.String("virus_type", virusType), zap.String("name", e.Name))
					for j, orig := range entries {
						results[j] = Result{AminoAcids: orig.AminoAcids}
					}
					restarted = true
					break
				}
			}
			results[i] = Result{AminoAcids: e.AminoAcids, SwitchMaster: true}
		}
		if !restarted {
			break
		}
	}

	return results
}
