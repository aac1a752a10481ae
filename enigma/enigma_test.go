package enigma

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/flamewing/mdcomp-go/internal/testutil"
)

func wordsToBytes(words []uint16) []byte {
	out := make([]byte, len(words)*2)
	for i, w := range words {
		out[2*i] = byte(w >> 8)
		out[2*i+1] = byte(w)
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	r := testutil.NewRand(19)
	for _, n := range []int{0, 2, 16, 64, 400} {
		in := wordsToBytes(randomWords(r, n, 48))
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

func randomWords(r *testutil.Rand, n, alphabet int) []uint16 {
	words := make([]uint16, n)
	for i := range words {
		words[i] = uint16(r.Intn(alphabet))
	}
	return words
}

func TestIncrementingRun(t *testing.T) {
	words := make([]uint16, 40)
	for i := range words {
		words[i] = uint16(0x100 + i)
	}
	in := wordsToBytes(words)
	enc, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	dec, err := Decode(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(in, dec); diff != "" {
		t.Fatalf("round trip mismatch on an incrementing sequence (-want +got):\n%s", diff)
	}
}

func TestConstantRun(t *testing.T) {
	words := make([]uint16, 50)
	for i := range words {
		words[i] = 0x1234
	}
	in := wordsToBytes(words)
	enc, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(enc) >= len(in) {
		t.Fatalf("expected compression on a constant run, got %d bytes from %d", len(enc), len(in))
	}
	dec, err := Decode(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(in, dec); diff != "" {
		t.Fatalf("round trip mismatch on a constant run (-want +got):\n%s", diff)
	}
}

func TestDeltaRun(t *testing.T) {
	words := make([]uint16, 30)
	words[0] = 5 // 5 is both IncrementingBase and CommonValue; the stride-3 rest go inline
	for i := 1; i < len(words); i++ {
		words[i] = words[i-1] + 3
	}
	in := wordsToBytes(words)
	enc, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	dec, err := Decode(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(in, dec); diff != "" {
		t.Fatalf("round trip mismatch on a +3 delta run (-want +got):\n%s", diff)
	}
}

func TestOddLengthInputRejected(t *testing.T) {
	_, err := Encode([]byte{1, 2, 3})
	if err == nil {
		t.Fatalf("expected an error for odd-length input")
	}
}

func TestStatsTieBreakIsAscending(t *testing.T) {
	words := []uint16{5, 5, 3, 3}
	_, _, commonValue, _ := stats(words)
	if commonValue != 3 {
		t.Fatalf("commonValue = %d, want 3 (ascending tie-break)", commonValue)
	}
}
