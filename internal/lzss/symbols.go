package lzss

import "github.com/flamewing/mdcomp-go/internal/bitio"

// BytesToSymbols reinterprets raw bytes as the trait's symbol width
// (Comper and ComperX use 2-byte symbols, every other LZSS format uses
// 1-byte symbols).
func BytesToSymbols(t Trait, data []byte) []Symbol {
	w := t.SymbolWidth()
	if w == 1 {
		out := make([]Symbol, len(data))
		for i, b := range data {
			out[i] = Symbol(b)
		}
		return out
	}
	if len(data)%2 != 0 {
		Malformedf(t.Name(), "input length %d is not a multiple of the symbol width", len(data))
	}
	out := make([]Symbol, len(data)/2)
	be := t.SymbolByteOrder() == bitio.BigEndian
	for i := range out {
		hi, lo := data[2*i], data[2*i+1]
		if !be {
			hi, lo = lo, hi
		}
		out[i] = Symbol(uint32(hi)<<8 | uint32(lo))
	}
	return out
}

// SymbolsToBytes is the inverse of BytesToSymbols.
func SymbolsToBytes(t Trait, syms []Symbol) []byte {
	w := t.SymbolWidth()
	if w == 1 {
		out := make([]byte, len(syms))
		for i, s := range syms {
			out[i] = byte(s)
		}
		return out
	}
	out := make([]byte, 0, len(syms)*2)
	be := t.SymbolByteOrder() == bitio.BigEndian
	for _, s := range syms {
		hi, lo := byte(s>>8), byte(s)
		if !be {
			hi, lo = lo, hi
		}
		out = append(out, hi, lo)
	}
	return out
}
