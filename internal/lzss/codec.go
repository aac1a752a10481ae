package lzss

import "github.com/flamewing/mdcomp-go/internal/bitio"

// Emitter accumulates descriptor bits and payload bytes for LZSS encode,
// interleaving them the way the on-disk layout requires: each descriptor
// word is followed in the output by the payload buffered for the token(s)
// it describes. For NeedEarlyDescriptor formats a word is appended the
// instant it fills, matching the decoder's eager refetch; for the others a
// full word is held back until the next descriptor bit is written (or
// Finish runs), so the payload of the token whose bit filled it comes
// before the next word, where a lazily refetching decoder looks for it.
type Emitter struct {
	t            Trait
	desc         *bitio.Writer
	payload      []byte
	out          []byte
	totalDesc    int
	dw           int
	wroteAnyDesc bool
	wordFull     bool
}

// NewEmitter returns an Emitter for trait t.
func NewEmitter(t Trait) *Emitter {
	dw := t.DescriptorWidth()
	return &Emitter{
		t:    t,
		desc: bitio.NewWriter(t.Name(), dw, t.DescriptorByteOrder(), t.DescriptorBitOrder()),
		dw:   dw,
	}
}

// PutDescBit writes a single descriptor bit. A full descriptor word (and the
// payload buffered since the previous flush) is flushed the moment it fills
// for NeedEarlyDescriptor formats, and otherwise just before the first bit
// of the next word is written.
func (e *Emitter) PutDescBit(bit uint32) {
	e.totalDesc++
	e.wroteAnyDesc = true
	if e.wordFull {
		e.out = append(e.out, e.desc.TakeBytes()...)
		e.out = append(e.out, e.payload...)
		e.payload = e.payload[:0]
		e.wordFull = false
	}
	if e.desc.WriteBit(bit) {
		e.wordFull = true
		if e.t.NeedEarlyDescriptor() {
			e.out = append(e.out, e.desc.TakeBytes()...)
			e.out = append(e.out, e.payload...)
			e.payload = e.payload[:0]
			e.wordFull = false
		}
	}
}

// PutDescBits writes the low nbits of val, most significant bit first.
func (e *Emitter) PutDescBits(val uint32, nbits int) {
	for i := nbits - 1; i >= 0; i-- {
		e.PutDescBit((val >> uint(i)) & 1)
	}
}

// PutByte appends a payload byte to the buffer pending the next descriptor
// word flush.
func (e *Emitter) PutByte(b byte) { e.payload = append(e.payload, b) }

// PutBytes appends payload bytes to the buffer pending the next descriptor
// word flush.
func (e *Emitter) PutBytes(bs []byte) { e.payload = append(e.payload, bs...) }

// Finish pads any partial descriptor word to a full word (zero-padded per
// the writer's MSB-first/LSB-first rule), writes it (or a full word still
// held back) followed by the remaining payload, and —
// for formats with NeedEarlyDescriptor whose last word filled exactly —
// appends one further all-zero descriptor word, matching the decoder's
// eager refetch. It returns the complete encoded byte stream.
func (e *Emitter) Finish() []byte {
	exactFill := e.desc.Pending() == 0
	if e.desc.Pending() > 0 {
		e.desc.Flush()
	}
	e.out = append(e.out, e.desc.TakeBytes()...)
	e.wordFull = false
	e.out = append(e.out, e.payload...)
	e.payload = nil
	if e.t.NeedEarlyDescriptor() && exactFill && e.wroteAnyDesc {
		zero := bitio.NewWriter(e.t.Name(), e.dw, e.t.DescriptorByteOrder(), e.t.DescriptorBitOrder())
		for i := 0; i < e.dw; i++ {
			zero.WriteBit(0)
		}
		e.out = append(e.out, zero.TakeBytes()...)
	}
	return e.out
}

// Decoder reads descriptor bits and payload bytes back out of an encoded
// stream, and accumulates decoded symbols, supporting positional
// back-reference reads for dictionary copies.
type Decoder struct {
	t    Trait
	cur  *bitio.Cursor
	desc *bitio.Reader
	Out  []Symbol
}

// NewDecoder returns a Decoder reading data under trait t.
func NewDecoder(t Trait, data []byte) *Decoder {
	cur := &bitio.Cursor{Data: data}
	desc := bitio.NewReader(t.Name(), cur, t.DescriptorWidth(), t.DescriptorByteOrder(), t.DescriptorBitOrder())
	return &Decoder{t: t, cur: cur, desc: desc}
}

// Pos reports the current read offset into the raw input.
func (d *Decoder) Pos() int { return d.cur.Pos }

// Len reports the length of the raw input.
func (d *Decoder) Len() int { return len(d.cur.Data) }

// DescBit reads a single descriptor bit, eagerly fetching the next
// descriptor word the instant this one empties if the trait requires it.
func (d *Decoder) DescBit() uint32 {
	b := d.desc.ReadBit()
	if d.t.NeedEarlyDescriptor() && d.desc.Avail() == 0 && d.cur.Pos < len(d.cur.Data) {
		d.desc.FetchWord()
	}
	return b
}

// DescBits reads nbits descriptor bits, most significant bit first.
func (d *Decoder) DescBits(nbits int) uint32 {
	var v uint32
	for i := 0; i < nbits; i++ {
		v = (v << 1) | d.DescBit()
	}
	return v
}

// Byte reads a single raw payload byte.
func (d *Decoder) Byte() byte { return d.cur.ReadByte(d.t.Name()) }

// Bytes reads n raw payload bytes.
func (d *Decoder) Bytes(n int) []byte { return d.cur.ReadBytes(d.t.Name(), n) }

// PutSymbol appends a literal symbol to the decoded output.
func (d *Decoder) PutSymbol(s Symbol) { d.Out = append(d.Out, s) }

// Seed pre-populates Out with symbols that are legal copy sources but were
// never themselves encoded (Rocket's virtual window pre-fill). Callers
// that seed a decoder are responsible for trimming the seed back off the
// final result.
func (d *Decoder) Seed(syms []Symbol) { d.Out = append(d.Out, syms...) }

// CopyMatch appends length symbols copied from distance symbols back in the
// output so far, byte by byte (not block), so overlapping copies where
// distance < length correctly produce the classical repeating-pattern
// expansion.
func (d *Decoder) CopyMatch(distance, length int) {
	src := len(d.Out) - distance
	if src < 0 {
		Malformedf(d.t.Name(), "copy distance %d exceeds decoded length %d", distance, len(d.Out))
	}
	for i := 0; i < length; i++ {
		d.Out = append(d.Out, d.Out[src+i])
	}
}

// Encode runs the optimal parser over data and walks the resulting edge
// list, emitting descriptor bits and payload bytes per trait t.
func Encode(t Trait, data []Symbol) []byte {
	edges := Parse(t, data)
	e := NewEmitter(t)
	for _, edge := range edges {
		if edge.Kind == Invalid {
			Invariantf("%s: Invalid edge kind reached emit time", t.Name())
		}
		t.EncodeEdge(e, data, edge)
	}
	t.EncodeEdge(e, data, Edge{Pos: len(data), Kind: Terminator})
	return e.Finish()
}

// Decode reads an encoded stream back into a symbol sequence by repeatedly
// calling t.DecodeNext until it reports the terminator has been consumed.
func Decode(t Trait, data []byte) []Symbol {
	d := NewDecoder(t, data)
	for {
		if t.DecodeNext(d) {
			break
		}
	}
	return d.Out
}

// DecodePos is Decode that additionally reports the number of raw input
// bytes the terminator token consumed, used by the moduled container to
// locate the start of the next chunk past inter-module padding.
func DecodePos(t Trait, data []byte) ([]Symbol, int) {
	d := NewDecoder(t, data)
	for {
		if t.DecodeNext(d) {
			break
		}
	}
	return d.Out, d.Pos()
}

// DecodeLen is Decode for formats with no in-band terminator: decoding
// stops once exactly n symbols have been produced.
func DecodeLen(t Trait, data []byte, n int) []Symbol {
	d := NewDecoder(t, data)
	for len(d.Out) < n {
		t.DecodeNext(d)
	}
	return d.Out
}

// DecodeUpToPos is Decode for formats with no in-band terminator that are
// instead bounded by a declared compressed length (Rocket and Saxman: the
// decoder stops once the declared compressed-size byte count is consumed).
func DecodeUpToPos(t Trait, data []byte, compressedLen int) []Symbol {
	d := NewDecoder(t, data[:compressedLen])
	for d.Pos() < compressedLen {
		t.DecodeNext(d)
	}
	return d.Out
}
