// Package lzss implements the generic optimal LZSS engine shared by the
// seven sliding-window dictionary formats (Comper, ComperX, Kosinski,
// Kosinski+, LZKN1, Rocket, Saxman): the sliding window and match finder,
// the shortest-path parser, and the encoder/decoder shell that walks a
// format Trait to emit or consume the bitstream.
//
// Format-specific behaviour is injected through the Trait interface so this
// package is written once and monomorphised per format, mirroring how the
// original mdcomp C++ project parameterised a single lzss.hh template by an
// Adaptor type, and how github.com/dsnet/compress's flate package keeps its
// bit-reading mechanics (flate/bit_reader.go) independent of the Huffman
// table logic layered on top (flate/prefix.go).
package lzss

// EdgeKind names the kind of token an Edge represents. The zero value,
// Invalid, can never legally appear in a parsed path: if the shortest-path
// search selects it, that is an engine bug (an InvariantViolation), not a
// reportable condition.
type EdgeKind uint8

const (
	Invalid EdgeKind = iota
	Symbolwise
	Dictionary
	Terminator
	PackedSymbolwise
	DictionaryShort
	DictionaryInline
	DictionaryLong
	Zerofill
)

func (k EdgeKind) String() string {
	switch k {
	case Symbolwise:
		return "symbolwise"
	case Dictionary:
		return "dictionary"
	case Terminator:
		return "terminator"
	case PackedSymbolwise:
		return "packed-symbolwise"
	case DictionaryShort:
		return "dictionary-short"
	case DictionaryInline:
		return "dictionary-inline"
	case DictionaryLong:
		return "dictionary-long"
	case Zerofill:
		return "zerofill"
	default:
		return "invalid"
	}
}

// Symbol is one unit of input: a byte for every format except Comper and
// ComperX, whose symbols are 16-bit words.
type Symbol uint32

// Edge is one token in an LZSS-encoding path: it covers the half-open range
// [Pos, Pos+Length) of the symbol sequence. Distance is 0 for Symbolwise
// edges. Symbol is only meaningful for Symbolwise edges.
type Edge struct {
	Pos      int
	Kind     EdgeKind
	Length   int
	Distance int
	Symbol   Symbol
}

// Dest returns the node this edge leads to.
func (e Edge) Dest() int { return e.Pos + e.Length }
