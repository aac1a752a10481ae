// Package rocket implements the Rocket Knight Adventures compression
// format: a single-window LZSS variant whose search buffer is pre-filled
// with 0x3C0 bytes of 0x20 before the real input, so the earliest real
// bytes can still find a dictionary match, and whose dictionary token
// stores an absolute position modulo the 0x400-byte window rather than a
// plain distance. There is no in-band terminator; a 4-byte header gives
// the decompressed and compressed lengths instead. Built on
// the generic engine in internal/lzss.
package rocket

import (
	"github.com/flamewing/mdcomp-go/errs"
	"github.com/flamewing/mdcomp-go/internal/bitio"
	"github.com/flamewing/mdcomp-go/internal/ioendian"
	"github.com/flamewing/mdcomp-go/internal/lzss"
)

const pkgName = "rocket"

type trait struct{}

var _ lzss.Trait = trait{}

func (trait) Name() string                        { return pkgName }
func (trait) SymbolWidth() int                     { return 1 }
func (trait) SymbolByteOrder() bitio.ByteOrder     { return bitio.BigEndian }
func (trait) DescriptorWidth() int                 { return 8 }
func (trait) DescriptorByteOrder() bitio.ByteOrder { return bitio.LittleEndian }
func (trait) DescriptorBitOrder() bitio.BitOrder   { return bitio.LSBFirst }
func (trait) NeedEarlyDescriptor() bool            { return false }
func (trait) FirstMatchPosition() int              { return prefillLen }
func (trait) ModulePadding() int                   { return 1 }

const (
	prefillLen    = 0x3C0
	searchBufSize = 0x400
	minMatchLen   = 2
	maxMatchLen   = 0x40
	prefillByte   = 0x20
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
	case lzss.Dictionary:
		return 16
	default:
		return 0
	}
}

func (trait) MatchAllowed(kind lzss.EdgeKind, distance, length int) bool {
	if kind != lzss.Dictionary {
		return false
	}
	return distance >= 1 && distance <= searchBufSize && length >= minMatchLen && length <= maxMatchLen
}

// TerminatorWeight/NumTermBits are both zero: Rocket carries no in-band
// terminator, the decoder instead stops once it has consumed the
// compressed byte count recorded in the header.
func (trait) TerminatorWeight() int { return 0 }
func (trait) NumTermBits() int      { return 0 }

// Rocket finds no matches beyond the one sliding window (rocket.cc's
// extra_matches always returns false).
func (trait) ExtraMatches(data []lzss.Symbol, base, upper, lower int, dst []lzss.Edge) []lzss.Edge {
	return dst
}

func (trait) EncodeEdge(e *lzss.Emitter, data []lzss.Symbol, edge lzss.Edge) {
	switch edge.Kind {
	case lzss.Symbolwise:
		e.PutDescBit(1)
		e.PutByte(byte(data[edge.Pos]))
	case lzss.Dictionary:
		e.PutDescBit(0)
		pos := (edge.Pos - edge.Distance) % searchBufSize
		e.PutByte(byte((edge.Length-1)<<2) | byte(pos>>8))
		e.PutByte(byte(pos))
	case lzss.Terminator:
		// No in-band terminator: the header's compressed-size field tells
		// the decoder where to stop instead.
	default:
		lzss.Invariantf("rocket: unexpected edge kind %s", edge.Kind)
	}
}

func (trait) DecodeNext(d *lzss.Decoder) bool {
	if d.DescBit() != 0 {
		d.PutSymbol(lzss.Symbol(d.Byte()))
		return false
	}
	high := d.Byte()
	low := d.Byte()
	length := int(high&0xFC)>>2 + 1
	pos := int(high&0x03)<<8 | int(low)

	here := len(d.Out)
	distance := properMod(here-pos, searchBufSize)
	if distance == 0 {
		distance = searchBufSize
	}
	d.CopyMatch(distance, length)
	return false
}

func properMod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// Encode compresses input with Rocket. The encoder's view of the data is
// the real input prefixed with prefillLen bytes of 0x20, a virtual window
// that lets the earliest real bytes match against it; those prefix bytes
// are never themselves emitted. The output carries a 4-byte header: the
// decompressed size, then the compressed body size, both 16-bit
// big-endian.
func Encode(input []byte) (output []byte, err error) {
	defer errs.Recover(&err)
	if len(input) > 0xFFFF {
		errs.Malformed(pkgName, "input too large for a 16-bit size header")
	}
	extended := make([]byte, prefillLen+len(input))
	for i := 0; i < prefillLen; i++ {
		extended[i] = prefillByte
	}
	copy(extended[prefillLen:], input)

	syms := lzss.BytesToSymbols(trait{}, extended)
	body := lzss.Encode(trait{}, syms)

	out := ioendian.PutUint16BE(make([]byte, 0, 4+len(body)), uint16(len(input)))
	out = ioendian.PutUint16BE(out, uint16(len(body)))
	return append(out, body...), nil
}

// Decode decompresses a Rocket stream. It seeds the decoder's output with
// the same prefillLen bytes of 0x20 the encoder assumed, decodes until the
// header's compressed-size byte count is consumed, then trims the seed
// back off before returning.
func Decode(input []byte) (output []byte, err error) {
	defer errs.Recover(&err)
	if len(input) < 4 {
		errs.Malformed(pkgName, "truncated header")
	}
	decompressedSize := ioendian.ReadUint16BE(pkgName, input, 0)
	compressedSize := ioendian.ReadUint16BE(pkgName, input, 2)
	body := input[4:]
	if int(compressedSize) > len(body) {
		errs.Malformed(pkgName, "compressed size exceeds available input")
	}

	d := lzss.NewDecoder(trait{}, body[:compressedSize])
	seed := make([]lzss.Symbol, prefillLen)
	for i := range seed {
		seed[i] = prefillByte
	}
	d.Seed(seed)
	for d.Pos() < int(compressedSize) {
		trait{}.DecodeNext(d)
	}

	out := lzss.SymbolsToBytes(trait{}, d.Out[prefillLen:])
	if len(out) != int(decompressedSize) {
		errs.Malformed(pkgName, "decoded length does not match header")
	}
	return out, nil
}
