// Package comper implements the Comper compression format: an LZSS variant
// whose symbols are 16-bit big-endian words instead of bytes. It is built
// on the generic engine in internal/lzss.
package comper

import (
	"github.com/flamewing/mdcomp-go/errs"
	"github.com/flamewing/mdcomp-go/internal/bitio"
	"github.com/flamewing/mdcomp-go/internal/lzss"
)

const pkgName = "comper"

// trait implements lzss.Trait for Comper. It carries no state: every
// parameter is a compile-time constant, one trait value per format, held
// static for the package's lifetime.
type trait struct{}

var _ lzss.Trait = trait{}

// Trait exposes the package's lzss.Trait for use by generic wrappers
// such as moduled.Codec.
func Trait() lzss.Trait { return trait{} }

func (trait) Name() string                          { return pkgName }
func (trait) SymbolWidth() int                       { return 2 }
func (trait) SymbolByteOrder() bitio.ByteOrder        { return bitio.BigEndian }
func (trait) DescriptorWidth() int                    { return 16 }
func (trait) DescriptorByteOrder() bitio.ByteOrder    { return bitio.BigEndian }
func (trait) DescriptorBitOrder() bitio.BitOrder      { return bitio.MSBFirst }
func (trait) NeedEarlyDescriptor() bool               { return false }
func (trait) FirstMatchPosition() int                 { return 0 }
func (trait) ModulePadding() int                      { return 1 }

const (
	minMatchLen = 1
	maxMatchLen = 256
	maxDistance = 256 // in symbols (words)
)

func (trait) Windows() []lzss.Window {
	return []lzss.Window{{SearchBufSize: maxDistance, MinLen: minMatchLen, MaxLen: maxMatchLen, Kind: lzss.Dictionary}}
}

func (trait) DescBits(kind lzss.EdgeKind) int {
	switch kind {
	case lzss.Symbolwise, lzss.Dictionary, lzss.Terminator:
		return 1
	default:
		return 0
	}
}

func (trait) EdgeWeight(kind lzss.EdgeKind, length int) int {
	switch kind {
	case lzss.Symbolwise:
		return 16
	case lzss.Dictionary, lzss.Terminator:
		return 16
	default:
		return 0
	}
}

func (trait) MatchAllowed(kind lzss.EdgeKind, distance, length int) bool {
	if kind != lzss.Dictionary {
		return false
	}
	return distance >= 1 && distance <= maxDistance && length >= minMatchLen && length <= maxMatchLen
}

func (trait) TerminatorWeight() int { return 16 }
func (trait) NumTermBits() int      { return 1 }

func (trait) ExtraMatches(data []lzss.Symbol, base, upper, lower int, dst []lzss.Edge) []lzss.Edge {
	return dst
}

// distToField encodes a symbol distance in [1, 256] as the dist8 byte
// dist8 = 256 - distance. At distance 256 this wraps to 0, the documented
// (if unofficial) dist=512-byte behaviour of the reference implementation.
func distToField(distance int) byte { return byte(256 - distance) }

func fieldToDist(dist8 byte) int {
	d := 256 - int(dist8)
	return d
}

func (trait) EncodeEdge(e *lzss.Emitter, data []lzss.Symbol, edge lzss.Edge) {
	switch edge.Kind {
	case lzss.Symbolwise:
		e.PutDescBit(0)
		sym := data[edge.Pos]
		e.PutByte(byte(sym >> 8))
		e.PutByte(byte(sym))
	case lzss.Dictionary:
		e.PutDescBit(1)
		e.PutByte(distToField(edge.Distance))
		e.PutByte(byte(edge.Length - 1))
	case lzss.Terminator:
		e.PutDescBit(1)
		e.PutByte(0)
		e.PutByte(0)
	default:
		lzss.Invariantf("comper: unexpected edge kind %s", edge.Kind)
	}
}

func (trait) DecodeNext(d *lzss.Decoder) bool {
	if d.DescBit() == 0 {
		hi, lo := d.Byte(), d.Byte()
		d.PutSymbol(lzss.Symbol(uint32(hi)<<8 | uint32(lo)))
		return false
	}
	dist8, len8 := d.Byte(), d.Byte()
	if dist8 == 0 && len8 == 0 {
		return true
	}
	d.CopyMatch(fieldToDist(dist8), int(len8)+1)
	return false
}

// Encode compresses input with Comper. Comper's symbols are 16-bit words,
// so an odd-length input is padded with one trailing zero byte before
// compression; decode reproduces the padded length, not the odd original
// one. Comper's own symbol width forces this at the wire level, same as
// the reference implementation's word-oriented input handling.
func Encode(input []byte) (output []byte, err error) {
	defer errs.Recover(&err)
	padded := input
	if len(padded)%2 != 0 {
		padded = append(append([]byte{}, padded...), 0)
	}
	syms := lzss.BytesToSymbols(trait{}, padded)
	return lzss.Encode(trait{}, syms), nil
}

// Decode decompresses a Comper stream.
func Decode(input []byte) (output []byte, err error) {
	defer errs.Recover(&err)
	syms := lzss.Decode(trait{}, input)
	return lzss.SymbolsToBytes(trait{}, syms), nil
}
