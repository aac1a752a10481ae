package lzss

import "github.com/flamewing/mdcomp-go/internal/bitio"

// Window describes one sliding dictionary window a format searches:
// Kosinski and Kosinski+ attach three (inline, short, long), LZKN1 two
// (short, long), and every other format exactly one.
type Window struct {
	SearchBufSize int
	MinLen        int
	MaxLen        int
	Kind          EdgeKind
}

// Trait fully parameterises the optimal-parser engine for one format. A
// format package implements Trait once, with value receivers on a small
// value type (an empty struct for most formats; koscore.Trait carries its
// descriptor framing), so the engine in this package is written only once.
type Trait interface {
	// Name is used to prefix error messages.
	Name() string

	// SymbolWidth is 1 or 2 bytes per symbol.
	SymbolWidth() int
	// SymbolByteOrder is the byte order of multi-byte symbols; ignored when
	// SymbolWidth is 1.
	SymbolByteOrder() bitio.ByteOrder

	// DescriptorWidth is the bit width (8, 16, or 32) of the descriptor
	// word interleaved with payload.
	DescriptorWidth() int
	DescriptorByteOrder() bitio.ByteOrder
	DescriptorBitOrder() bitio.BitOrder
	// NeedEarlyDescriptor, if true, requires the decoder to fetch a new
	// descriptor word the instant the current one is exhausted rather than
	// lazily at next bit-need.
	NeedEarlyDescriptor() bool

	// FirstMatchPosition is the offset from the start of input where
	// dictionary search first becomes legal (0x3C0 for Rocket, 0 for all
	// others).
	FirstMatchPosition() int

	// Windows enumerates the sliding windows this format searches.
	Windows() []Window

	// DescBits is the number of descriptor bits a token of this kind
	// consumes.
	DescBits(kind EdgeKind) int
	// EdgeWeight is the number of payload bits (not counting descriptor
	// bits) a token of this kind and length occupies.
	EdgeWeight(kind EdgeKind, length int) int
	// MatchAllowed reports whether a dictionary match of the given
	// distance and length is legal for kind.
	MatchAllowed(kind EdgeKind, distance, length int) bool

	// TerminatorWeight/NumTermBits are the payload-bit and descriptor-bit
	// cost of the end-of-stream marker; both 0 if the format is instead
	// terminated by an externally-known length.
	TerminatorWeight() int
	NumTermBits() int

	// ExtraMatches appends format-specific extra candidate edges starting
	// at base (Saxman zero-fills, LZKN1 packed literals) to dst and
	// returns the result.
	ExtraMatches(data []Symbol, base, upper, lower int, dst []Edge) []Edge

	// ModulePadding is the byte alignment the moduled wrapper pads to
	// between chunks encoded with this format.
	ModulePadding() int

	// EncodeEdge emits the descriptor bits and payload for a single edge.
	EncodeEdge(e *Emitter, data []Symbol, edge Edge)

	// DecodeNext consumes one token from d and appends its decoded
	// symbols to d's output. It reports true once the terminator has been
	// consumed (or, for formats with no in-band terminator, never: the
	// caller stops once the declared output length is reached).
	DecodeNext(d *Decoder) (done bool)
}
