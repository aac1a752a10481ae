// Package kosinski implements the classic Kosinski compression format: the
// same three-window LZSS shape as Kosinski+ (internal/koscore), but framed
// with a 16-bit little-endian, LSB-first descriptor word that is eagerly
// refetched the instant it empties, matching older Kosinski variants.
package kosinski

import (
	"github.com/flamewing/mdcomp-go/errs"
	"github.com/flamewing/mdcomp-go/internal/bitio"
	"github.com/flamewing/mdcomp-go/internal/koscore"
	"github.com/flamewing/mdcomp-go/internal/lzss"
)

func trait() koscore.Trait {
	return koscore.New(koscore.Config{
		Name:                "kosinski",
		DescriptorWidth:     16,
		DescriptorByteOrder: bitio.LittleEndian,
		DescriptorBitOrder:  bitio.LSBFirst,
		NeedEarlyDescriptor: true,
		ModulePadding:       16,
	})
}

// Trait exposes the package's lzss.Trait for use by generic wrappers such
// as moduled.Codec.
func Trait() lzss.Trait { return trait() }

// Encode compresses input with classic Kosinski.
func Encode(input []byte) (output []byte, err error) {
	defer errs.Recover(&err)
	syms := lzss.BytesToSymbols(trait(), input)
	return lzss.Encode(trait(), syms), nil
}

// Decode decompresses a classic Kosinski stream.
func Decode(input []byte) (output []byte, err error) {
	defer errs.Recover(&err)
	syms := lzss.Decode(trait(), input)
	return lzss.SymbolsToBytes(trait(), syms), nil
}
