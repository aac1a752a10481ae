// Package enigma implements the Enigma tile-graphics compression format:
// a word-oriented codec whose packets emit runs relative to two learned
// reference values (an incrementing base and a most-common value) or raw
// words carrying only the bits a per-file flag mask and bit width don't
// already fix. Grounded on original_source/src/lib/enigma.cc.
package enigma

import (
	"sort"

	"github.com/flamewing/mdcomp-go/errs"
	"github.com/flamewing/mdcomp-go/internal/bitio"
)

const pkgName = "enigma"

func unpackWords(data []byte) []uint16 {
	if len(data)%2 != 0 {
		errs.Malformed(pkgName, "input length must be a multiple of 2")
	}
	words := make([]uint16, len(data)/2)
	for i := range words {
		words[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return words
}

func packWords(words []uint16) []byte {
	out := make([]byte, len(words)*2)
	for i, w := range words {
		out[2*i] = byte(w >> 8)
		out[2*i+1] = byte(w)
	}
	return out
}

// bitLen returns floor(log2(v))+1 for v>0, and 0 for v==0.
func bitLen(v uint16) int {
	n := 0
	for v != 0 {
		n++
		v >>= 1
	}
	return n
}

// stats computes the header fields the encoder's pre-pass describes.
// Ties in CommonValue and IncrementingBase are broken by ascending word
// value, matching the C++ source's std::map (key-ordered) scan rather than
// input order.
func stats(words []uint16) (flagMask byte, packetLength int, commonValue, incrementingBase uint16) {
	var orAll uint16
	counts := map[uint16]int{}
	seen := map[uint16]bool{}
	var distinct []uint16
	for _, w := range words {
		orAll |= w
		counts[w]++
		if !seen[w] {
			seen[w] = true
			distinct = append(distinct, w)
		}
	}
	sort.Slice(distinct, func(i, j int) bool { return distinct[i] < distinct[j] })

	flagMask = byte(orAll>>11) & 0x1F
	packetLength = bitLen(orAll & 0x7FF)
	if packetLength == 0 {
		packetLength = 1
	}

	bestCount := -1
	for _, w := range distinct {
		if counts[w] > bestCount {
			bestCount = counts[w]
			commonValue = w
		}
	}

	bestRun := -1
	for _, b := range distinct {
		next := b
		run := 0
		for _, w := range words {
			if w == next {
				next++
				run++
			}
		}
		if run > bestRun {
			bestRun = run
			incrementingBase = b
		}
	}
	return flagMask, packetLength, commonValue, incrementingBase
}

func readBitfield(r *bitio.Reader, mask byte) uint16 {
	var flags uint16
	for i := 4; i >= 0; i-- {
		if mask&(1<<uint(i)) != 0 {
			flags |= uint16(r.ReadBit()) << uint(11+i)
		}
	}
	return flags
}

func writeBitfield(w *bitio.Writer, mask byte, word uint16) {
	for i := 4; i >= 0; i-- {
		if mask&(1<<uint(i)) != 0 {
			w.WriteBit(uint32((word >> uint(11+i)) & 1))
		}
	}
}

// Encode compresses input, which must hold an even number of bytes (16-bit
// big-endian tile words).
func Encode(input []byte) (output []byte, err error) {
	defer errs.Recover(&err)
	words := unpackWords(input)

	flagMask, packetLength, commonValue, incrementingValue := stats(words)

	header := []byte{
		byte(packetLength), flagMask,
		byte(incrementingValue >> 8), byte(incrementingValue),
		byte(commonValue >> 8), byte(commonValue),
	}

	w := bitio.NewWriter(pkgName, 16, bitio.BigEndian, bitio.MSBFirst)
	var buf []uint16
	flush := func() {
		if len(buf) == 0 {
			return
		}
		w.WriteBits(0x70|uint32(len(buf)-1)&0xF, 7)
		for _, v := range buf {
			writeBitfield(w, flagMask, v)
			w.WriteBits(uint32(v&0x7FF), packetLength)
		}
		buf = buf[:0]
	}

	pos := 0
	for pos < len(words) {
		v := words[pos]
		switch {
		case v == incrementingValue:
			flush()
			next := v + 1
			cnt := 0
			for i := pos + 1; i < len(words) && cnt < 0xF; i++ {
				if next != words[i] {
					break
				}
				next++
				cnt++
			}
			w.WriteBits(0x00|uint32(cnt), 6)
			incrementingValue = next
			pos += cnt
		case v == commonValue:
			flush()
			next := v
			cnt := 0
			for i := pos + 1; i < len(words) && cnt < 0xF; i++ {
				if next != words[i] {
					break
				}
				cnt++
			}
			w.WriteBits(0x10|uint32(cnt), 6)
			pos += cnt
		default:
			delta, next, isDelta := 0, uint16(0), false
			if pos+1 < len(words) {
				next = words[pos+1]
				d := int(next) - int(v)
				if next != incrementingValue && (d == -1 || d == 0 || d == 1) {
					delta, isDelta = d, true
				}
			}
			if isDelta {
				flush()
				cnt := 1
				next = uint16(int(next) + delta)
				for i := pos + 2; i < len(words) && cnt < 0xF; i++ {
					if next != words[i] || next == incrementingValue {
						break
					}
					next = uint16(int(next) + delta)
					cnt++
				}
				top := uint32(0x40)
				switch delta {
				case 1:
					top = 0x50
				case -1:
					top = 0x60
				}
				w.WriteBits(top|uint32(cnt), 7)
				writeBitfield(w, flagMask, v)
				w.WriteBits(uint32(v&0x7FF), packetLength)
				pos += cnt
			} else {
				if len(buf) >= 0xF {
					flush()
				}
				buf = append(buf, v)
			}
		}
		pos++
	}
	flush()
	w.WriteBits(0x7F, 7)
	w.Flush()

	return append(header, w.Bytes()...), nil
}

// Decode decompresses an Enigma stream.
func Decode(input []byte) (output []byte, err error) {
	defer errs.Recover(&err)
	if len(input) < 6 {
		errs.Malformed(pkgName, "truncated header")
	}
	packetLength := int(input[0])
	flagMask := input[1] & 0x1F
	incrementingValue := uint16(input[2])<<8 | uint16(input[3])
	commonValue := uint16(input[4])<<8 | uint16(input[5])

	cur := &bitio.Cursor{Data: input, Pos: 6}
	r := bitio.NewReader(pkgName, cur, 16, bitio.BigEndian, bitio.MSBFirst)

	return decodeBody(r, packetLength, flagMask, incrementingValue, commonValue), nil
}

func decodeBody(r *bitio.Reader, packetLength int, flagMask byte, incrementingValue, commonValue uint16) []byte {
	deltaLUT := [3]int{0, 1, -1}
	var words []uint16
	for {
		if r.ReadBit() != 0 {
			mode := int(r.ReadBits(2))
			switch mode {
			case 0, 1, 2:
				cnt := int(r.ReadBits(4)) + 1
				flags := readBitfield(r, flagMask)
				outv := uint16(r.ReadBits(packetLength)) | flags
				for i := 0; i < cnt; i++ {
					words = append(words, outv)
					outv = uint16(int(outv) + deltaLUT[mode])
				}
			case 3:
				cnt := int(r.ReadBits(4))
				if cnt == 0xF {
					return packWords(words)
				}
				for i := 0; i <= cnt; i++ {
					flags := readBitfield(r, flagMask)
					outv := uint16(r.ReadBits(packetLength)) | flags
					words = append(words, outv)
				}
			}
		} else if r.ReadBit() == 0 {
			cnt := int(r.ReadBits(4)) + 1
			for i := 0; i < cnt; i++ {
				words = append(words, incrementingValue)
				incrementingValue++
			}
		} else {
			cnt := int(r.ReadBits(4)) + 1
			for i := 0; i < cnt; i++ {
				words = append(words, commonValue)
			}
		}
	}
}
