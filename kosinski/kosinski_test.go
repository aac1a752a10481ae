package kosinski

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/flamewing/mdcomp-go/internal/testutil"
)

func TestRoundTrip(t *testing.T) {
	r := testutil.NewRand(5)
	for _, n := range []int{0, 1, 2, 5, 9, 10, 64, 300, 4096} {
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
	r := testutil.NewRand(6)
	for _, n := range []int{0, 17, 513, 8500} {
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
