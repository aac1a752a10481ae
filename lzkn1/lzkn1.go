// Package lzkn1 implements the LZKN1 compression format: an LZSS variant
// with two dictionary windows (a 4-bit-distance short match and a 10-bit
// long match), a packed-literal run kind that folds up to 71 uninterrupted
// bytes behind a single descriptor bit, and a 16-bit big-endian
// uncompressed-size header. Built on the generic engine in internal/lzss.
package lzkn1

import (
	"github.com/flamewing/mdcomp-go/errs"
	"github.com/flamewing/mdcomp-go/internal/bitio"
	"github.com/flamewing/mdcomp-go/internal/ioendian"
	"github.com/flamewing/mdcomp-go/internal/lzss"
)

const pkgName = "lzkn1"

type trait struct{}

var _ lzss.Trait = trait{}

// Trait exposes the package's lzss.Trait for use by generic wrappers
// such as moduled.Codec.
func Trait() lzss.Trait { return trait{} }

func (trait) Name() string                        { return pkgName }
func (trait) SymbolWidth() int                     { return 1 }
func (trait) SymbolByteOrder() bitio.ByteOrder     { return bitio.BigEndian }
func (trait) DescriptorWidth() int                 { return 8 }
func (trait) DescriptorByteOrder() bitio.ByteOrder { return bitio.LittleEndian }
func (trait) DescriptorBitOrder() bitio.BitOrder   { return bitio.LSBFirst }
func (trait) NeedEarlyDescriptor() bool            { return false }
func (trait) FirstMatchPosition() int              { return 0 }
func (trait) ModulePadding() int                   { return 1 }

const (
	shortMinLen, shortMaxLen, shortMaxDist = 2, 5, 15
	longMinLen, longMaxLen, longMaxDist    = 3, 33, 1023
	packedMinLen, packedMaxLen             = 8, 71

	terminatorByte       = 0x1F
	packedMarker         = 0xC0
	shortMarker          = 0x80
	packedLengthBase     = 8
	shortCount      byte = 6
)

func (trait) Windows() []lzss.Window {
	return []lzss.Window{
		{SearchBufSize: shortMaxDist, MinLen: shortMinLen, MaxLen: shortMaxLen, Kind: lzss.DictionaryShort},
		{SearchBufSize: longMaxDist, MinLen: longMinLen, MaxLen: longMaxLen, Kind: lzss.DictionaryLong},
	}
}

func (trait) DescBits(lzss.EdgeKind) int { return 1 }

func (trait) EdgeWeight(kind lzss.EdgeKind, length int) int {
	switch kind {
	case lzss.Symbolwise:
		return 8
	case lzss.DictionaryShort:
		return 8
	case lzss.DictionaryLong:
		return 16
	case lzss.PackedSymbolwise:
		return 8 + length*8
	case lzss.Terminator:
		return 8
	default:
		return 0
	}
}

func (trait) MatchAllowed(kind lzss.EdgeKind, distance, length int) bool {
	switch kind {
	case lzss.DictionaryShort:
		return distance >= 1 && distance <= shortMaxDist && length >= shortMinLen && length <= shortMaxLen
	case lzss.DictionaryLong:
		return distance >= 1 && distance <= longMaxDist && length >= longMinLen && length <= longMaxLen
	case lzss.PackedSymbolwise:
		return length >= packedMinLen && length <= packedMaxLen
	default:
		return false
	}
}

func (trait) TerminatorWeight() int { return 8 }
func (trait) NumTermBits() int      { return 1 }

// ExtraMatches proposes one packed-symbolwise candidate per length from 8 up
// to the smaller of 71 and one less than the number of symbols remaining,
// letting the shortest-path parser decide whether folding a literal run
// under one descriptor bit beats emitting each byte as its own symbolwise
// edge. Mirroring the reference encoder's `ii < min(remaining,
// packedMaxLen+1)` bound, the candidate set stops one short of the
// remaining input whenever at most packedMaxLen symbols remain.
func (trait) ExtraMatches(data []lzss.Symbol, base, upper, lower int, dst []lzss.Edge) []lzss.Edge {
	remaining := upper - base
	bound := remaining
	if bound > packedMaxLen+1 {
		bound = packedMaxLen + 1
	}
	maxLen := bound - 1
	for length := packedMinLen; length <= maxLen; length++ {
		dst = append(dst, lzss.Edge{Pos: base, Kind: lzss.PackedSymbolwise, Length: length})
	}
	return dst
}

func (trait) EncodeEdge(e *lzss.Emitter, data []lzss.Symbol, edge lzss.Edge) {
	switch edge.Kind {
	case lzss.Symbolwise:
		e.PutDescBit(0)
		e.PutByte(byte(data[edge.Pos]))
	case lzss.DictionaryShort:
		e.PutDescBit(1)
		e.PutByte(byte(edge.Length+int(shortCount))<<4 | byte(edge.Distance))
	case lzss.DictionaryLong:
		e.PutDescBit(1)
		hi := byte(edge.Length-longMinLen) | byte((edge.Distance&0x300)>>3)
		lo := byte(edge.Distance)
		e.PutByte(hi)
		e.PutByte(lo)
	case lzss.PackedSymbolwise:
		e.PutDescBit(1)
		e.PutByte(byte(edge.Length - packedLengthBase + packedMarker))
		for i := 0; i < edge.Length; i++ {
			e.PutByte(byte(data[edge.Pos+i]))
		}
	case lzss.Terminator:
		e.PutDescBit(1)
		e.PutByte(terminatorByte)
	default:
		lzss.Invariantf("lzkn1: unexpected edge kind %s", edge.Kind)
	}
}

func (trait) DecodeNext(d *lzss.Decoder) bool {
	if d.DescBit() == 0 {
		d.PutSymbol(lzss.Symbol(d.Byte()))
		return false
	}
	b := d.Byte()
	if b == terminatorByte {
		return true
	}
	if b&packedMarker == packedMarker {
		count := int(b) - packedMarker + packedLengthBase
		for i := 0; i < count; i++ {
			d.PutSymbol(lzss.Symbol(d.Byte()))
		}
		return false
	}
	if b&shortMarker == shortMarker {
		distance := int(b & 0x0F)
		length := int(b>>4) - int(shortCount)
		d.CopyMatch(distance, length)
		return false
	}
	low := d.Byte()
	distance := ((int(b) << 3) & 0x300) | int(low)
	length := int(b&0x1F) + longMinLen
	d.CopyMatch(distance, length)
	return false
}

// Encode compresses input with LZKN1. The output carries a 2-byte
// big-endian uncompressed-size header.
func Encode(input []byte) (output []byte, err error) {
	defer errs.Recover(&err)
	if len(input) > 0xFFFF {
		errs.Malformed(pkgName, "input too large for a 16-bit size header")
	}
	syms := lzss.BytesToSymbols(trait{}, input)
	body := lzss.Encode(trait{}, syms)
	out := ioendian.PutUint16BE(make([]byte, 0, 2+len(body)), uint16(len(input)))
	return append(out, body...), nil
}

// Decode decompresses an LZKN1 stream.
func Decode(input []byte) (output []byte, err error) {
	defer errs.Recover(&err)
	if len(input) < 2 {
		errs.Malformed(pkgName, "truncated header")
	}
	uncompressedSize := ioendian.ReadUint16BE(pkgName, input, 0)
	syms := lzss.Decode(trait{}, input[2:])
	out := lzss.SymbolsToBytes(trait{}, syms)
	if len(out) != int(uncompressedSize) {
		errs.Malformed(pkgName, "decoded length does not match header")
	}
	return out, nil
}
