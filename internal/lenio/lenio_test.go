package lenio

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeUntilExactSteps(t *testing.T) {
	calls := 0
	got := DecodeUntil(6, func(remaining int) []byte {
		calls++
		b := []byte{1, 2}
		if len(b) > remaining {
			b = b[:remaining]
		}
		return b
	})
	want := []byte{1, 2, 1, 2, 1, 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if calls != 3 {
		t.Fatalf("expected 3 steps, got %d", calls)
	}
}

func TestDecodeUntilClampedFinalStep(t *testing.T) {
	got := DecodeUntil(5, func(remaining int) []byte {
		b := []byte{9, 9, 9}
		if len(b) > remaining {
			b = b[:remaining]
		}
		return b
	})
	want := []byte{9, 9, 9, 9, 9}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeUntilZero(t *testing.T) {
	calls := 0
	got := DecodeUntil(0, func(remaining int) []byte {
		calls++
		return nil
	})
	if len(got) != 0 {
		t.Fatalf("expected empty output, got % x", got)
	}
	if calls != 0 {
		t.Fatalf("expected no steps for n=0, got %d", calls)
	}
}
