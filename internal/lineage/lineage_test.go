package lineage

import (
	"strings"
	"testing"

	"github.com/acorg/seqdb/internal/align"
)

func withAA(length int, overrides map[int]byte) string {
	b := []byte(strings.Repeat("A", length))
	for pos, aa := range overrides {
		b[pos-1] = aa
	}
	return string(b)
}

func TestDetectYamagata(t *testing.T) {
	aa := withAA(400, map[int]byte{162: 'N', 164: '-'})
	if got := Detect(aa, align.Aligned(0)); got != "YAMAGATA" {
		t.Fatalf("Detect = %q, want YAMAGATA", got)
	}
}

func TestDetectVictoriaWhenBothGapped(t *testing.T) {
	aa := withAA(400, map[int]byte{162: '-', 163: '-'})
	if got := Detect(aa, align.Aligned(0)); got != "VICTORIA" {
		t.Fatalf("Detect = %q, want VICTORIA", got)
	}
}

func TestDetectVictoriaWhenNoGaps(t *testing.T) {
	aa := withAA(400, nil)
	if got := Detect(aa, align.Aligned(0)); got != "VICTORIA" {
		t.Fatalf("Detect = %q, want VICTORIA", got)
	}
}

func TestDetectRespectsShift(t *testing.T) {
	aa := "XXXXX" + withAA(400, map[int]byte{162: 'N', 165: '-'})
	if got := Detect(aa, align.Aligned(-5)); got != "YAMAGATA" {
		t.Fatalf("Detect = %q, want YAMAGATA", got)
	}
}
