package saxman

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/flamewing/mdcomp-go/internal/testutil"
)

func TestRoundTrip(t *testing.T) {
	r := testutil.NewRand(12)
	for _, n := range []int{0, 1, 2, 3, 18, 19, 300, 5000} {
		in := r.RepetitiveBytes(n, 24)
		enc, err := Encode(in)
		if err != nil {
			t.Fatalf("Encode(n=%d): %v", n, err)
		}
		dec, err := Decode(enc, len(enc))
		if err != nil {
			t.Fatalf("Decode(n=%d): %v", n, err)
		}
		if diff := cmp.Diff(in, dec); diff != "" {
			t.Fatalf("round trip mismatch at n=%d (-want +got):\n%s", n, diff)
		}
	}
}

func TestRoundTripRandom(t *testing.T) {
	r := testutil.NewRand(13)
	for _, n := range []int{0, 17, 513, 4200} {
		in := r.Bytes(n)
		enc, err := Encode(in)
		if err != nil {
			t.Fatalf("Encode(n=%d): %v", n, err)
		}
		dec, err := Decode(enc, len(enc))
		if err != nil {
			t.Fatalf("Decode(n=%d): %v", n, err)
		}
		if diff := cmp.Diff(in, dec); diff != "" {
			t.Fatalf("round trip mismatch at n=%d (-want +got):\n%s", n, diff)
		}
	}
}

func TestZeroRun(t *testing.T) {
	in := make([]byte, 200)
	enc, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	dec, err := Decode(enc, len(enc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(in, dec); diff != "" {
		t.Fatalf("round trip mismatch on all-zero input (-want +got):\n%s", diff)
	}
}

func TestSizedRoundTrip(t *testing.T) {
	r := testutil.NewRand(14)
	in := r.RepetitiveBytes(1000, 16)
	enc, err := EncodeSized(in)
	if err != nil {
		t.Fatalf("EncodeSized: %v", err)
	}
	dec, err := DecodeSized(enc)
	if err != nil {
		t.Fatalf("DecodeSized: %v", err)
	}
	if diff := cmp.Diff(in, dec); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
