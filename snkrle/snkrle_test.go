package snkrle

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/flamewing/mdcomp-go/internal/testutil"
)

func roundTrip(t *testing.T, in []byte) []byte {
	t.Helper()
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
	return enc
}

func TestRoundTrip(t *testing.T) {
	r := testutil.NewRand(20)
	for _, n := range []int{0, 1, 2, 17, 333, 4096} {
		roundTrip(t, r.RepetitiveBytes(n, 6))
	}
}

func TestRoundTripRandom(t *testing.T) {
	r := testutil.NewRand(21)
	for _, n := range []int{0, 64, 1024} {
		roundTrip(t, r.Bytes(n))
	}
}

func TestExactMaxCountRun(t *testing.T) {
	// 2 + maxCount identical bytes, immediately followed by a different
	// byte: the edge case where original_source's decoder drops the
	// peeked byte instead of emitting it.
	in := make([]byte, 0, maxCount+3)
	for i := 0; i < maxCount+2; i++ {
		in = append(in, 0xAA)
	}
	in = append(in, 0xBB, 0xBB, 0xBB)
	roundTrip(t, in)
}

func TestRunContinuesPastMaxCount(t *testing.T) {
	in := make([]byte, maxCount+10)
	for i := range in {
		in[i] = 0x77
	}
	enc := roundTrip(t, in)
	if len(enc) >= len(in) {
		t.Fatalf("expected compression on a long run, got %d bytes from %d", len(enc), len(in))
	}
}

func TestNoRepeats(t *testing.T) {
	in := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	roundTrip(t, in)
}

func TestEmptyInput(t *testing.T) {
	enc := roundTrip(t, nil)
	if len(enc) != 2 || enc[0] != 0 || enc[1] != 0 {
		t.Fatalf("expected a bare 2-byte zero header, got % x", enc)
	}
}
