package nemesis

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/flamewing/mdcomp-go/internal/testutil"
)

func TestRoundTrip(t *testing.T) {
	r := testutil.NewRand(15)
	for _, n := range []int{0, 32, 64, 320, 4096} {
		in := r.RepetitiveBytes(n, 16)
		enc, err := Encode(in)
		if err != nil {
			t.Fatalf("Encode(n=%d): %v", n, err)
		}
		dec, err := Decode(enc)
		if err != nil {
			t.Fatalf("Decode(n=%d): %v", n, err)
		}
		if len(dec) != len(in) {
			t.Fatalf("n=%d: decoded length %d, want %d", n, len(dec), len(in))
		}
		if diff := cmp.Diff(in, dec); diff != "" {
			t.Fatalf("round trip mismatch at n=%d (-want +got):\n%s", n, diff)
		}
	}
}

func TestRoundTripUnalignedInput(t *testing.T) {
	r := testutil.NewRand(16)
	for _, n := range []int{1, 17, 33, 500} {
		in := r.RepetitiveBytes(n, 16)
		enc, err := Encode(in)
		if err != nil {
			t.Fatalf("Encode(n=%d): %v", n, err)
		}
		dec, err := Decode(enc)
		if err != nil {
			t.Fatalf("Decode(n=%d): %v", n, err)
		}
		padded := n
		if rem := n % tileBytes; rem != 0 {
			padded += tileBytes - rem
		}
		if len(dec) != padded {
			t.Fatalf("n=%d: decoded length %d, want padded length %d", n, len(dec), padded)
		}
		if diff := cmp.Diff(in, dec[:n]); diff != "" {
			t.Fatalf("round trip mismatch at n=%d (-want +got):\n%s", n, diff)
		}
		for _, b := range dec[n:] {
			if b != 0 {
				t.Fatalf("n=%d: padding byte not zero", n)
			}
		}
	}
}

func TestRoundTripRandom(t *testing.T) {
	r := testutil.NewRand(17)
	for _, n := range []int{32, 64, 2048} {
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

func TestUniformTileCompressesSmall(t *testing.T) {
	in := make([]byte, tileBytes)
	for i := range in {
		in[i] = 0x12
	}
	enc, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(enc) >= len(in) {
		t.Fatalf("expected compression on a uniform tile, got %d bytes from %d", len(enc), len(in))
	}
	dec, err := Decode(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(in, dec); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestXorDeltaRoundTrip(t *testing.T) {
	r := testutil.NewRand(18)
	in := r.Bytes(256)
	delta := xorDelta(in)
	back := unXorDelta(delta)
	if diff := cmp.Diff(in, back); diff != "" {
		t.Fatalf("xorDelta/unXorDelta are not inverses (-want +got):\n%s", diff)
	}
}

func TestRLEEncodeCapsRunsAtEight(t *testing.T) {
	nibbles := make([]byte, 20)
	for i := range nibbles {
		nibbles[i] = 5
	}
	nibbles = append(nibbles, invalidNibble)
	runs, counts := rleEncode(nibbles)
	total := 0
	for _, run := range runs {
		if run.Count > 7 {
			t.Fatalf("run count %d exceeds the 3-bit field", run.Count)
		}
		total += int(run.Count) + 1
	}
	if total != 20 {
		t.Fatalf("runs cover %d nibbles, want 20", total)
	}
	if len(counts) == 0 {
		t.Fatalf("expected at least one counted run")
	}
}
