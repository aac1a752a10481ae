// Package nemesis implements the Nemesis tile-graphics compression format:
// a nibble-run-length front end feeding a depth- and prefix-constrained
// Huffman code, with an inline escape for runs that would not pay for
// their own code, and a second XOR-delta candidate pass so the smaller of
// two encodings wins. Grounded on original_source/src/lib/nemesis.cc,
// translated from its pointer-tree
// Huffman builder into Go's garbage-collected node graph and from its
// istream/ostream bit I/O into internal/bitio.
package nemesis

import (
	"container/heap"
	"sort"

	"github.com/flamewing/mdcomp-go/errs"
	"github.com/flamewing/mdcomp-go/internal/bitio"
)

const pkgName = "nemesis"

const tileBytes = 32 // bytes per 8x8 4bpp tile

// Encode compresses input, padding it on the right with zero bytes to a
// multiple of tileBytes first.
func Encode(input []byte) (output []byte, err error) {
	defer errs.Recover(&err)
	padded := input
	if rem := len(padded) % tileBytes; rem != 0 {
		padded = append(append([]byte(nil), padded...), make([]byte, tileBytes-rem)...)
	}
	tiles := len(padded) / tileBytes
	if tiles > 0x7FFF {
		errs.Malformed(pkgName, "input too large for a 15-bit tile count")
	}

	plain := encodePass(padded)
	alt := encodePass(xorDelta(padded))

	mode := 0
	body := plain
	if len(alt) < len(plain) {
		mode = 1
		body = alt
	}

	out := make([]byte, 0, 2+len(body)+1)
	header := uint16(mode)<<15 | uint16(tiles)
	out = append(out, byte(header>>8), byte(header))
	out = append(out, body...)
	if len(out)%2 != 0 {
		out = append(out, 0)
	}
	return out, nil
}

// xorDelta replaces every 32-bit big-endian word at offset i>=4 with that
// word XORed against the word four bytes behind it.
func xorDelta(data []byte) []byte {
	out := append([]byte(nil), data...)
	for i := len(out) - 4; i >= 4; i -= 4 {
		for k := 0; k < 4; k++ {
			out[i+k] ^= out[i+k-4]
		}
	}
	return out
}

// unXorDelta reverses xorDelta by accumulating forward instead of folding
// backward, matching nemesis.cc's decode_internal alt_out pass.
func unXorDelta(data []byte) []byte {
	out := append([]byte(nil), data...)
	for i := 4; i+4 <= len(out); i += 4 {
		for k := 0; k < 4; k++ {
			out[i+k] ^= out[i+k-4]
		}
	}
	return out
}

func unpackNibbles(data []byte) []byte {
	out := make([]byte, 0, len(data)*2+1)
	for _, b := range data {
		out = append(out, b>>4, b&0x0F)
	}
	return append(out, invalidNibble)
}

// rleEncode coalesces the unpacked nibble sequence (including its
// invalidNibble terminator) into runs of up to 8 repetitions, tallying how
// often each run occurs. The terminator's own run is never emitted or
// counted; its only job is to force-flush the final real run.
func rleEncode(nibbles []byte) ([]nibbleRun, map[nibbleRun]int) {
	var runs []nibbleRun
	counts := map[nibbleRun]int{}
	curr := nibbleRun{Nibble: nibbles[0]}
	for _, nb := range nibbles[1:] {
		if nb != curr.Nibble || curr.Count >= 7 {
			runs = append(runs, curr)
			counts[curr]++
			curr = nibbleRun{Nibble: nb}
		} else {
			curr.Count++
		}
	}
	return runs, counts
}

// buildCodemap runs the full Huffman construction and Nemesis-constraint
// optimization, returning the codes worth assigning.
func buildCodemap(counts map[nibbleRun]int) map[nibbleRun]code {
	var leaves []*node
	var keys []nibbleRun
	for run, n := range counts {
		if n > 1 {
			keys = append(keys, run)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Nibble != keys[j].Nibble {
			return keys[i].Nibble < keys[j].Nibble
		}
		return keys[i].Count < keys[j].Count
	})
	for _, run := range keys {
		leaves = append(leaves, newLeaf(run, counts[run]))
	}
	if len(leaves) == 0 {
		// No run repeats: every nibble run goes out through the inline
		// escape, so there is nothing for a Huffman table to encode.
		return map[nibbleRun]code{}
	}

	var invNode *node
	wgt := -1
	for iter := 0; iter < 100; iter++ {
		q0 := cloneQueue(leaves)
		if invNode != nil {
			wgt = invNode.weight
			heap.Push(q0, pqItem{n: newLeaf(nibbleRun{Nibble: invalidNibble}, wgt), seq: q0.Len()})
		}
		tree0 := buildTree(q0)
		newInv := tree0.nodeForCode(0x3F, 6)
		if newInv == nil || newInv.value.Nibble == invalidNibble {
			break
		}
		invNode = newInv
	}
	if wgt >= 0 {
		leaves = append(leaves, newLeaf(nibbleRun{Nibble: invalidNibble}, wgt))
	}

	tree := buildTree(newQueue(leaves))
	tree.optimize(0, 0)

	codemap := map[nibbleRun]code{}
	tree.traverse(0, 0, codemap)
	return codemap
}

// encodePass runs the RLE, tree-construction, code-assignment, and
// bitstream-emission stages over one already-padded, already-transformed
// byte buffer.
func encodePass(data []byte) []byte {
	nibbles := unpackNibbles(data)
	runs, counts := rleEncode(nibbles)
	codemap := buildCodemap(counts)

	var out []byte
	lastNibble := byte(invalidNibble)
	var sortedRuns []nibbleRun
	for run := range codemap {
		sortedRuns = append(sortedRuns, run)
	}
	sort.Slice(sortedRuns, func(i, j int) bool {
		if sortedRuns[i].Nibble != sortedRuns[j].Nibble {
			return sortedRuns[i].Nibble < sortedRuns[j].Nibble
		}
		return sortedRuns[i].Count < sortedRuns[j].Count
	})
	for _, run := range sortedRuns {
		c := codemap[run]
		if run.Nibble != lastNibble {
			out = append(out, 0x80|run.Nibble)
			lastNibble = run.Nibble
		}
		out = append(out, run.Count<<4|byte(c.nbits), byte(c.value))
	}
	out = append(out, 0xFF)

	w := bitio.NewWriter(pkgName, 8, bitio.BigEndian, bitio.MSBFirst)
	for _, run := range runs {
		if c, ok := codemap[run]; ok {
			w.WriteBits(c.value, c.nbits)
			continue
		}
		w.WriteBits(0x3F, 6)
		w.WriteBits(uint32(run.Count), 3)
		w.WriteBits(uint32(run.Nibble), 4)
	}
	w.Flush()
	return append(out, w.Bytes()...)
}

// Decode decompresses a Nemesis stream.
func Decode(input []byte) (output []byte, err error) {
	defer errs.Recover(&err)
	if len(input) < 2 {
		errs.Malformed(pkgName, "truncated header")
	}
	header := uint16(input[0])<<8 | uint16(input[1])
	altOut := header&0x8000 != 0
	tiles := int(header & 0x7FFF)

	cur := &bitio.Cursor{Data: input, Pos: 2}
	codemap := decodeHeader(cur)

	plain := decodePayload(cur, codemap, tiles)
	if altOut {
		return unXorDelta(plain), nil
	}
	return plain, nil
}

// decodeHeader reads the code table terminated by 0xFF, building a map
// from each code (its byte value together with the bit length the header
// records for it) to its nibble run. The length is part of the key because
// codes of different lengths can share an integer value (100 and 0100).
func decodeHeader(cur *bitio.Cursor) map[uint16]nibbleRunWithLen {
	codemap := map[uint16]nibbleRunWithLen{}
	nibble := byte(0)
	for {
		b := cur.ReadByte(pkgName)
		if b == 0xFF {
			return codemap
		}
		if b&0x80 != 0 {
			nibble = b & 0x0F
			b = cur.ReadByte(pkgName)
		}
		count := (b & 0x70) >> 4
		length := b & 0x0F
		codeByte := cur.ReadByte(pkgName)
		codemap[codeKey(codeByte, int(length))] = nibbleRunWithLen{run: nibbleRun{Nibble: nibble, Count: count}, nbits: int(length)}
	}
}

func codeKey(code byte, nbits int) uint16 { return uint16(nbits)<<8 | uint16(code) }

type nibbleRunWithLen struct {
	run   nibbleRun
	nbits int
}

// decodePayload implements the decoder: an 8-bit shift register
// checked after every new bit, first against the inline-RLE escape then
// against the code table.
func decodePayload(cur *bitio.Cursor, codemap map[uint16]nibbleRunWithLen, tiles int) []byte {
	r := bitio.NewReader(pkgName, cur, 8, bitio.BigEndian, bitio.MSBFirst)

	var nibbles []byte
	emit := func(nib byte, count int) {
		for i := 0; i < count; i++ {
			nibbles = append(nibbles, nib)
		}
	}

	// Each symbol's bits are read one at a time and the running value is
	// checked after every bit, never before one is needed: over-reading a
	// priming bit for the next symbol would run past the last byte of a
	// tightly packed stream with no trailing padding to absorb it.
	totalNibbles := tiles * tileBytes * 2
	for len(nibbles) < totalNibbles {
		var code uint32
		for nbits := 1; ; nbits++ {
			code = (code << 1) | r.ReadBit()
			if nbits == 6 && code == 0x3F {
				count := int(r.ReadBits(3)) + 1
				nib := byte(r.ReadBits(4))
				emit(nib, count)
				break
			}
			if entry, ok := codemap[codeKey(byte(code), nbits)]; ok {
				emit(entry.run.Nibble, int(entry.run.Count)+1)
				break
			}
		}
	}

	out := make([]byte, 0, len(nibbles)/2)
	for i := 0; i+1 < len(nibbles); i += 2 {
		out = append(out, nibbles[i]<<4|nibbles[i+1])
	}
	return out
}
