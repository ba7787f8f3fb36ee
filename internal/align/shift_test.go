package align

import "testing"

func TestShiftZeroValueIsAlignedZero(t *testing.T) {
	var s Shift
	off, ok := s.Offset()
	if !ok || off != 0 {
		t.Fatalf("zero value Shift = (%d, %v), want (0, true)", off, ok)
	}
}

func TestShiftSub(t *testing.T) {
	s := Aligned(10)
	got, err := s.Sub(3)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if off, _ := got.Offset(); off != 7 {
		t.Fatalf("got offset %d, want 7", off)
	}
}

func TestShiftSubInvalidOnNotAligned(t *testing.T) {
	for _, s := range []Shift{NotAligned(), AlignmentFailed()} {
		if _, err := s.Sub(1); err != ErrInvalidShift {
			t.Fatalf("Sub on %v: got err %v, want ErrInvalidShift", s, err)
		}
	}
}

func TestShiftEquality(t *testing.T) {
	if !Aligned(5).Equal(Aligned(5)) {
		t.Error("Aligned(5) should equal Aligned(5)")
	}
	if Aligned(5).Equal(Aligned(6)) {
		t.Error("Aligned(5) should not equal Aligned(6)")
	}
	if NotAligned().Equal(AlignmentFailed()) {
		t.Error("NotAligned should not equal AlignmentFailed")
	}
}

func TestShiftJSONRoundTrip(t *testing.T) {
	s := Aligned(-16)
	data, err := s.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(data) != "-16" {
		t.Fatalf("MarshalJSON = %s, want -16", data)
	}

	var got Shift
	if err := got.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if !got.Equal(s) {
		t.Fatalf("round trip = %v, want %v", got, s)
	}
}

func TestShiftJSONNotAlignedOmitted(t *testing.T) {
	data, _ := NotAligned().MarshalJSON()
	if string(data) != "null" {
		t.Fatalf("MarshalJSON(NotAligned) = %s, want null", data)
	}
	var got Shift
	if err := got.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if !got.IsNotAligned() {
		t.Fatalf("got %v, want NotAligned", got)
	}
}
