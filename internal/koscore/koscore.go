// Package koscore implements the shared Kosinski family trait: classic
// Kosinski and Kosinski+ parse and encode identically (three windows —
// inline, short, long dictionary matches) and differ only in
// their descriptor bitstream framing (word width, byte order, bit order,
// and early-refetch), so one trait type here is reused by both format
// packages with those four knobs supplied at construction.
package koscore

import (
	"github.com/flamewing/mdcomp-go/internal/bitio"
	"github.com/flamewing/mdcomp-go/internal/lzss"
)

const (
	inlineMinLen = 2
	inlineMaxLen = 5
	inlineMaxDist = 256

	shortMinLen = 3
	shortMaxLen = 9

	longMinLen = 10
	longMaxLen = 264

	bigMaxDist = 8192

	shortCountBase = 10 // hi's low 3 bits hold 10-length for the short form
	longLenBase    = 9  // len8 byte holds length-9 for the long form
)

// Config pins down the four descriptor-framing knobs that distinguish
// classic Kosinski from Kosinski+.
type Config struct {
	Name                string
	DescriptorWidth     int
	DescriptorByteOrder bitio.ByteOrder
	DescriptorBitOrder  bitio.BitOrder
	NeedEarlyDescriptor bool
	ModulePadding       int
}

// Trait implements lzss.Trait for the Kosinski family.
type Trait struct {
	cfg Config
}

// New returns a Trait for the given descriptor framing.
func New(cfg Config) Trait { return Trait{cfg: cfg} }

var _ lzss.Trait = Trait{}

func (t Trait) Name() string                          { return t.cfg.Name }
func (Trait) SymbolWidth() int                         { return 1 }
func (Trait) SymbolByteOrder() bitio.ByteOrder         { return bitio.BigEndian }
func (t Trait) DescriptorWidth() int                   { return t.cfg.DescriptorWidth }
func (t Trait) DescriptorByteOrder() bitio.ByteOrder   { return t.cfg.DescriptorByteOrder }
func (t Trait) DescriptorBitOrder() bitio.BitOrder     { return t.cfg.DescriptorBitOrder }
func (t Trait) NeedEarlyDescriptor() bool              { return t.cfg.NeedEarlyDescriptor }
func (Trait) FirstMatchPosition() int                  { return 0 }
func (t Trait) ModulePadding() int                     { return t.cfg.ModulePadding }

func (Trait) Windows() []lzss.Window {
	return []lzss.Window{
		{SearchBufSize: inlineMaxDist, MinLen: inlineMinLen, MaxLen: inlineMaxLen, Kind: lzss.DictionaryInline},
		{SearchBufSize: bigMaxDist, MinLen: shortMinLen, MaxLen: shortMaxLen, Kind: lzss.DictionaryShort},
		{SearchBufSize: bigMaxDist, MinLen: longMinLen, MaxLen: longMaxLen, Kind: lzss.DictionaryLong},
	}
}

func (Trait) DescBits(kind lzss.EdgeKind) int {
	switch kind {
	case lzss.Symbolwise:
		return 1
	case lzss.DictionaryInline:
		return 4 // "00" prefix + 2 count bits
	case lzss.DictionaryShort, lzss.DictionaryLong, lzss.Terminator:
		return 2 // "01" prefix
	default:
		return 0
	}
}

func (Trait) EdgeWeight(kind lzss.EdgeKind, length int) int {
	switch kind {
	case lzss.Symbolwise, lzss.DictionaryInline:
		return 8
	case lzss.DictionaryShort:
		return 16
	case lzss.DictionaryLong, lzss.Terminator:
		return 24
	default:
		return 0
	}
}

func (Trait) MatchAllowed(kind lzss.EdgeKind, distance, length int) bool {
	switch kind {
	case lzss.DictionaryInline:
		return distance >= 1 && distance <= inlineMaxDist && length >= inlineMinLen && length <= inlineMaxLen
	case lzss.DictionaryShort:
		return distance >= 1 && distance <= bigMaxDist && length >= shortMinLen && length <= shortMaxLen
	case lzss.DictionaryLong:
		return distance >= 1 && distance <= bigMaxDist && length >= longMinLen && length <= longMaxLen
	default:
		return false
	}
}

func (Trait) TerminatorWeight() int { return 24 }
func (Trait) NumTermBits() int      { return 2 }

func (Trait) ExtraMatches(data []lzss.Symbol, base, upper, lower int, dst []lzss.Edge) []lzss.Edge {
	return dst
}

func (t Trait) EncodeEdge(e *lzss.Emitter, data []lzss.Symbol, edge lzss.Edge) {
	switch edge.Kind {
	case lzss.Symbolwise:
		e.PutDescBit(1)
		e.PutByte(byte(data[edge.Pos]))
	case lzss.DictionaryInline:
		e.PutDescBit(0)
		e.PutDescBit(0)
		e.PutByte(byte(0x100 - edge.Distance))
		l := edge.Length - inlineMinLen
		e.PutDescBit(uint32(l>>1) & 1)
		e.PutDescBit(uint32(l) & 1)
	case lzss.DictionaryShort:
		e.PutDescBit(0)
		e.PutDescBit(1)
		dist := 0x2000 - edge.Distance
		high := byte((dist>>5)&0xF8) | byte(shortCountBase-edge.Length)
		low := byte(dist)
		e.PutByte(high)
		e.PutByte(low)
	case lzss.DictionaryLong:
		e.PutDescBit(0)
		e.PutDescBit(1)
		dist := 0x2000 - edge.Distance
		high := byte((dist >> 5) & 0xF8)
		low := byte(dist)
		e.PutByte(high)
		e.PutByte(low)
		e.PutByte(byte(edge.Length - longLenBase))
	case lzss.Terminator:
		e.PutDescBit(0)
		e.PutDescBit(1)
		e.PutByte(0xF0)
		e.PutByte(0x00)
		e.PutByte(0x00)
	default:
		lzss.Invariantf("%s: unexpected edge kind %s", t.Name(), edge.Kind)
	}
}

func (t Trait) DecodeNext(d *lzss.Decoder) bool {
	if d.DescBit() != 0 {
		d.PutSymbol(lzss.Symbol(d.Byte()))
		return false
	}
	if d.DescBit() != 0 {
		high, low := d.Byte(), d.Byte()
		count := int(high & 0x07)
		if count == 0 {
			extra := d.Byte()
			if extra == 0 {
				return true
			}
			count = int(extra) + longLenBase
		} else {
			count = shortCountBase - count
		}
		distance := 0x2000 - (int(high&0xF8)<<5 | int(low))
		d.CopyMatch(distance, count)
		return false
	}
	dist8 := d.Byte()
	hi := d.DescBit()
	lo := d.DescBit()
	length := int(hi<<1|lo) + inlineMinLen
	distance := 0x100 - int(dist8)
	d.CopyMatch(distance, length)
	return false
}
