// Package saxman implements the Saxman compression format: a single-window
// LZSS variant whose dictionary token doubles as a zero-fill run when the
// decoded back-reference offset comes out ahead of the write cursor, and
// whose compressed-size header is optional — callers may instead supply the
// compressed length directly, mirroring how the real decompressor is
// invoked with a known transfer size. Built on the generic engine in
// internal/lzss.
package saxman

import (
	"github.com/flamewing/mdcomp-go/errs"
	"github.com/flamewing/mdcomp-go/internal/bitio"
	"github.com/flamewing/mdcomp-go/internal/ioendian"
	"github.com/flamewing/mdcomp-go/internal/lzss"
)

const pkgName = "saxman"

type trait struct{}

var _ lzss.Trait = trait{}

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
	searchBufSize = 4096
	minMatchLen   = 3
	maxMatchLen   = 18
	offsetBias    = 0x12

	// zerofillDistance is a wire-packing sentinel, not a real back
	// reference: any distance with (pos-distance) mod searchBufSize close
	// enough to pos that the decoder's rebased offset comes out negative
	// produces a zero-fill run rather than a copy. Using searchBufSize
	// itself keeps the encoder's formula simple.
	zerofillDistance = searchBufSize
)

func (trait) Windows() []lzss.Window {
	return []lzss.Window{
		{SearchBufSize: searchBufSize, MinLen: minMatchLen, MaxLen: maxMatchLen, Kind: lzss.Dictionary},
	}
}

func (trait) DescBits(lzss.EdgeKind) int { return 1 }

func (trait) EdgeWeight(kind lzss.EdgeKind, length int) int {
	switch kind {
	case lzss.Symbolwise:
		return 8
	case lzss.Dictionary, lzss.Zerofill:
		return 16
	default:
		return 0
	}
}

func (trait) MatchAllowed(kind lzss.EdgeKind, distance, length int) bool {
	switch kind {
	case lzss.Dictionary:
		return distance >= 1 && distance <= searchBufSize && length >= minMatchLen && length <= maxMatchLen
	case lzss.Zerofill:
		return distance == zerofillDistance && length >= minMatchLen && length <= maxMatchLen
	default:
		return false
	}
}

func (trait) TerminatorWeight() int { return 0 }
func (trait) NumTermBits() int      { return 0 }

// ExtraMatches proposes zero-fill runs of a repeated 0x00 byte, capped to
// maxMatchLen since the wire format packs length-3 into the same 4-bit
// field a dictionary match uses (the original lzss.hh proposes runs of
// unbounded length here, which the bitstream could not actually represent;
// capping at maxMatchLen keeps every proposed edge encodable). Saxman
// reserves this kind for positions before searchBufSize-1, matching
// saxman.cc's "can't encode zero match after this point" guard.
func (trait) ExtraMatches(data []lzss.Symbol, base, upper, lower int, dst []lzss.Edge) []lzss.Edge {
	if base >= searchBufSize-1 {
		return dst
	}
	jj := 0
	for base+jj < upper && data[base+jj] == 0 {
		jj++
	}
	if jj < minMatchLen {
		return dst
	}
	if jj > maxMatchLen {
		jj = maxMatchLen
	}
	for length := minMatchLen; length <= jj; length++ {
		dst = append(dst, lzss.Edge{Pos: base, Kind: lzss.Zerofill, Length: length, Distance: zerofillDistance})
	}
	return dst
}

func (trait) EncodeEdge(e *lzss.Emitter, data []lzss.Symbol, edge lzss.Edge) {
	switch edge.Kind {
	case lzss.Symbolwise:
		e.PutDescBit(1)
		e.PutByte(byte(data[edge.Pos]))
	case lzss.Dictionary, lzss.Zerofill:
		e.PutDescBit(0)
		base := properMod(edge.Pos-edge.Distance-offsetBias, searchBufSize)
		lo := byte(base)
		hi := (byte(edge.Length-3) & 0x0F) | (byte(base>>4) & 0xF0)
		e.PutByte(lo)
		e.PutByte(hi)
	case lzss.Terminator:
		// No in-band terminator: the caller supplies the compressed length.
	default:
		lzss.Invariantf("saxman: unexpected edge kind %s", edge.Kind)
	}
}

func (trait) DecodeNext(d *lzss.Decoder) bool {
	if d.DescBit() != 0 {
		d.PutSymbol(lzss.Symbol(d.Byte()))
		return false
	}
	lo := d.Byte()
	hi := d.Byte()
	rawOffset := ((int(lo) | (int(hi)<<4)&0xF00) + offsetBias) % searchBufSize
	length := int(hi&0x0F) + 3

	basedest := len(d.Out)
	rebased := properMod(rawOffset-basedest, searchBufSize)
	candidate := rebased + basedest - searchBufSize
	if candidate < 0 {
		for i := 0; i < length; i++ {
			d.PutSymbol(0)
		}
		return false
	}
	d.CopyMatch(basedest-candidate, length)
	return false
}

func properMod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// Encode compresses input with Saxman, returning the bare compressed body
// with no length header.
func Encode(input []byte) (output []byte, err error) {
	defer errs.Recover(&err)
	syms := lzss.BytesToSymbols(trait{}, input)
	return lzss.Encode(trait{}, syms), nil
}

// Decode decompresses a Saxman stream of exactly compressedSize bytes, a
// length the caller must already know.
func Decode(input []byte, compressedSize int) (output []byte, err error) {
	defer errs.Recover(&err)
	if compressedSize < 0 || compressedSize > len(input) {
		errs.Malformed(pkgName, "compressed size exceeds available input")
	}
	syms := lzss.DecodeUpToPos(trait{}, input, compressedSize)
	return lzss.SymbolsToBytes(trait{}, syms), nil
}

// EncodeSized is Encode with a 2-byte little-endian compressed-size header
// prepended, the self-describing form saxman.cc's WithSize flag selects.
func EncodeSized(input []byte) (output []byte, err error) {
	defer errs.Recover(&err)
	body, encErr := Encode(input)
	if encErr != nil {
		return nil, encErr
	}
	if len(body) > 0xFFFF {
		errs.Malformed(pkgName, "compressed body too large for a 16-bit size header")
	}
	out := ioendian.PutUint16LE(make([]byte, 0, 2+len(body)), uint16(len(body)))
	return append(out, body...), nil
}

// DecodeSized is Decode for a stream carrying EncodeSized's header, reading
// the compressed length back out instead of requiring the caller to supply
// it.
func DecodeSized(input []byte) (output []byte, err error) {
	defer errs.Recover(&err)
	if len(input) < 2 {
		errs.Malformed(pkgName, "truncated header")
	}
	size := ioendian.ReadUint16LE(pkgName, input, 0)
	return Decode(input[2:], int(size))
}
