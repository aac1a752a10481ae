// Package comperx implements the ComperX compression format: Comper's
// 16-bit-symbol LZSS with an alternate dictionary payload encoding and an
// explicit two-byte terminator.
package comperx

import (
	"github.com/flamewing/mdcomp-go/errs"
	"github.com/flamewing/mdcomp-go/internal/bitio"
	"github.com/flamewing/mdcomp-go/internal/lzss"
)

const pkgName = "comperx"

type trait struct{}

var _ lzss.Trait = trait{}

// Trait exposes the package's lzss.Trait for use by generic wrappers
// such as moduled.Codec.
func Trait() lzss.Trait { return trait{} }

func (trait) Name() string                       { return pkgName }
func (trait) SymbolWidth() int                    { return 2 }
func (trait) SymbolByteOrder() bitio.ByteOrder    { return bitio.BigEndian }
func (trait) DescriptorWidth() int                { return 16 }
func (trait) DescriptorByteOrder() bitio.ByteOrder { return bitio.BigEndian }
func (trait) DescriptorBitOrder() bitio.BitOrder  { return bitio.MSBFirst }
func (trait) NeedEarlyDescriptor() bool           { return false }
func (trait) FirstMatchPosition() int             { return 0 }
func (trait) ModulePadding() int                  { return 1 }

const (
	minMatchLen = 2
	// maxMatchLen is capped at 255 (not the 257 the 7-bit-plus-extension-bit
	// length field could otherwise reach): the reference encoder's
	// LookAheadBufSize caps it there too, and a length of 256 would encode
	// to enc8 0x00, colliding with the dist8/enc8 == 0xFF/0x00 terminator.
	maxMatchLen = 255
	maxDistance = 256
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
	case lzss.Symbolwise, lzss.Dictionary, lzss.Terminator:
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

// distToField mirrors the reference encoder's putbyte(-dist+1): word
// distance 1 encodes to 0x00, and the field wraps downward from there as
// distance grows.
func distToField(wordDistance int) byte {
	return byte(1 - wordDistance)
}

// fieldToDist mirrors the reference decoder: a 0x00 field means word
// distance 1, anything else is 257 - dist8.
func fieldToDist(dist8 byte) int {
	if dist8 == 0 {
		return 1
	}
	return 257 - int(dist8)
}

// enc8 = (0x7F - (length-2)/2) | ((length&1)<<7).
func lenToField(length int) byte {
	l := length - 2
	return byte(0x7F-l/2) | byte((length&1)<<7)
}

func fieldToLen(enc8 byte) int {
	odd := int(enc8>>7) & 1
	l := int(0x7F-(enc8&0x7F)) * 2
	return l + 2 + odd
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
		e.PutByte(lenToField(edge.Length))
	case lzss.Terminator:
		e.PutDescBit(1)
		e.PutByte(0xFF)
		e.PutByte(0x00)
	default:
		lzss.Invariantf("comperx: unexpected edge kind %s", edge.Kind)
	}
}

func (trait) DecodeNext(d *lzss.Decoder) bool {
	if d.DescBit() == 0 {
		hi, lo := d.Byte(), d.Byte()
		d.PutSymbol(lzss.Symbol(uint32(hi)<<8 | uint32(lo)))
		return false
	}
	dist8, enc8 := d.Byte(), d.Byte()
	if dist8 == 0xFF && enc8 == 0x00 {
		return true
	}
	d.CopyMatch(fieldToDist(dist8), fieldToLen(enc8))
	return false
}

// Encode compresses input with ComperX. As with Comper, an odd-length
// input is padded with one trailing zero byte before compression.
func Encode(input []byte) (output []byte, err error) {
	defer errs.Recover(&err)
	padded := input
	if len(padded)%2 != 0 {
		padded = append(append([]byte{}, padded...), 0)
	}
	syms := lzss.BytesToSymbols(trait{}, padded)
	return lzss.Encode(trait{}, syms), nil
}

// Decode decompresses a ComperX stream.
func Decode(input []byte) (output []byte, err error) {
	defer errs.Recover(&err)
	syms := lzss.Decode(trait{}, input)
	return lzss.SymbolsToBytes(trait{}, syms), nil
}
