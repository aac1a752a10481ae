// Package kosplus implements the Kosinski+ compression format: an LZSS
// variant with three sliding windows (an inline short match, a medium
// "short" dictionary match, and a "long" dictionary match) and an 8-bit
// MSB-first descriptor. It is built on the generic engine in internal/lzss
// via the shared internal/koscore trait.
package kosplus

import (
	"github.com/flamewing/mdcomp-go/errs"
	"github.com/flamewing/mdcomp-go/internal/bitio"
	"github.com/flamewing/mdcomp-go/internal/koscore"
	"github.com/flamewing/mdcomp-go/internal/lzss"
)

func trait() koscore.Trait {
	return koscore.New(koscore.Config{
		Name:                "kosplus",
		DescriptorWidth:     8,
		DescriptorByteOrder: bitio.LittleEndian,
		DescriptorBitOrder:  bitio.MSBFirst,
		NeedEarlyDescriptor: false,
		ModulePadding:       1,
	})
}

// Trait exposes the package's lzss.Trait for use by generic wrappers such
// as moduled.Codec.
func Trait() lzss.Trait { return trait() }

// Encode compresses input with Kosinski+.
func Encode(input []byte) (output []byte, err error) {
	defer errs.Recover(&err)
	syms := lzss.BytesToSymbols(trait(), input)
	return lzss.Encode(trait(), syms), nil
}

// Decode decompresses a Kosinski+ stream.
func Decode(input []byte) (output []byte, err error) {
	defer errs.Recover(&err)
	syms := lzss.Decode(trait(), input)
	return lzss.SymbolsToBytes(trait(), syms), nil
}
