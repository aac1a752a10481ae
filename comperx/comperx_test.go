package comperx

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/flamewing/mdcomp-go/internal/testutil"
)

func TestRoundTrip(t *testing.T) {
	r := testutil.NewRand(2)
	for _, n := range []int{0, 2, 32, 64, 258, 4096} {
		in := r.RepetitiveBytes(n, 24)
		if len(in)%2 != 0 {
			in = append(in, 0)
		}
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

func TestFieldRoundTrip(t *testing.T) {
	for length := 2; length <= 257; length++ {
		f := lenToField(length)
		if got := fieldToLen(f); got != length {
			t.Fatalf("length %d -> field %#02x -> %d", length, f, got)
		}
	}
	for distance := 1; distance <= 256; distance++ {
		f := distToField(distance)
		if got := fieldToDist(f); got != distance {
			t.Fatalf("distance %d -> field %#02x -> %d", distance, f, got)
		}
	}
}
