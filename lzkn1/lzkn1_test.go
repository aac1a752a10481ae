package lzkn1

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/flamewing/mdcomp-go/internal/testutil"
)

func TestRoundTrip(t *testing.T) {
	r := testutil.NewRand(7)
	for _, n := range []int{0, 1, 2, 5, 8, 71, 72, 300, 2048} {
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
	r := testutil.NewRand(8)
	for _, n := range []int{0, 13, 500, 4000} {
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

func TestHeaderLength(t *testing.T) {
	in := []byte("abcdefgh")
	enc, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(enc) < 2 {
		t.Fatalf("encoded output too short for header")
	}
	if enc[0] != 0 || enc[1] != byte(len(in)) {
		t.Fatalf("header = % x, want 00 %02x", enc[:2], len(in))
	}
}
