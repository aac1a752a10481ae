package rocket

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/flamewing/mdcomp-go/internal/testutil"
)

func TestRoundTrip(t *testing.T) {
	r := testutil.NewRand(9)
	for _, n := range []int{0, 1, 2, 64, 65, 300, 4096} {
		in := r.RepetitiveBytes(n, 24)
		enc, err := Encode(in)
		if err != nil {
			t.Fatalf("Encode(n=%d): %v", n, err)
		}
		dec, err := Decode(enc)
		if err != nil {
			t.Fatalf("Decode(n=%d): %v", n, err)
		}
		if diff := cmp.Diff(in, dec); diff != "" {
			t.Fatalf("round trip mismatch at n=%d (-want +got):\n%s", n, diff)
		}
	}
}

func TestRoundTripRandom(t *testing.T) {
	r := testutil.NewRand(10)
	for _, n := range []int{0, 17, 513, 5000} {
		in := r.Bytes(n)
		enc, err := Encode(in)
		if err != nil {
			t.Fatalf("Encode(n=%d): %v", n, err)
		}
		dec, err := Decode(enc)
		if err != nil {
			t.Fatalf("Decode(n=%d): %v", n, err)
		}
		if diff := cmp.Diff(in, dec); diff != "" {
			t.Fatalf("round trip mismatch at n=%d (-want +got):\n%s", n, diff)
		}
	}
}

// TestAllSpacesMatchesPrefill exercises a canonical case: a run of 0x40
// space bytes compresses to a single dictionary token copying
// straight out of the virtual window pre-fill.
func TestAllSpacesMatchesPrefill(t *testing.T) {
	in := bytes.Repeat([]byte{0x20}, 0x40)
	enc, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if enc[0] != 0x00 || enc[1] != 0x40 {
		t.Fatalf("decompressed-size header = % x, want 00 40", enc[:2])
	}
	dec, err := Decode(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(in, dec); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWindowWraparound(t *testing.T) {
	r := testutil.NewRand(11)
	in := r.RepetitiveBytes(3000, 6)
	enc, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	dec, err := Decode(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(in, dec); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
