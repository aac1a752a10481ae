// Package snkrle implements the SNK-RLE byte compression format: every
// byte is emitted literally, and whenever two consecutive emitted bytes
// are equal the byte that follows is a repeat count inserting that many
// additional copies, chaining into a fresh count whenever a single count
// byte (capped at 255) isn't enough to cover the whole run. Grounded on
// original_source/src/lib/snkrle.cc.
package snkrle

import (
	"github.com/flamewing/mdcomp-go/errs"
	"github.com/flamewing/mdcomp-go/internal/ioendian"
	"github.com/flamewing/mdcomp-go/internal/lenio"
)

const pkgName = "snkrle"

const maxCount = 255

type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) readByte() byte {
	if c.pos >= len(c.data) {
		errs.Malformed(pkgName, "unexpected end of input")
	}
	b := c.data[c.pos]
	c.pos++
	return b
}

// Encode compresses input.
func Encode(input []byte) (output []byte, err error) {
	defer errs.Recover(&err)
	if len(input) > 0xFFFF {
		errs.Malformed(pkgName, "input too large for a 16-bit size header")
	}

	out := ioendian.PutUint16BE(make([]byte, 0, len(input)+2), uint16(len(input)))
	if len(input) == 0 {
		return out, nil
	}

	pos := 0
	cc := input[pos]
	for pos < len(input) {
		out = append(out, cc)
		pos++
		if pos >= len(input) {
			break
		}
		nc := input[pos]
		if nc != cc {
			cc = nc
			continue
		}
		out = append(out, nc)
		pos++
		count := 0
		for pos < len(input) && input[pos] == nc && count < maxCount {
			count++
			pos++
		}
		out = append(out, byte(count))
		if pos < len(input) {
			cc = input[pos]
		}
	}
	return out, nil
}

// Decode decompresses an SNK-RLE stream. It drives the
// "decode-until-declared-length" loop (original_source's BasicDecoder,
// ported as internal/lenio.DecodeUntil), one literal byte or one repeat
// run per step.
func Decode(input []byte) (output []byte, err error) {
	defer errs.Recover(&err)
	size := int(ioendian.ReadUint16BE(pkgName, input, 0))
	if size == 0 {
		return []byte{}, nil
	}
	c := &cursor{data: input[2:]}

	cc := c.readByte()
	started := false
	out := lenio.DecodeUntil(size, func(remaining int) []byte {
		if !started {
			started = true
			return clamp([]byte{cc}, remaining)
		}
		nc := c.readByte()
		if nc != cc {
			cc = nc
			return clamp([]byte{nc}, remaining)
		}
		buf := []byte{nc}
		count := int(c.readByte())
		for i := 0; i < count; i++ {
			buf = append(buf, nc)
		}
		if count == maxCount && len(buf) < remaining {
			// A single byte can't carry more than maxCount, so the run
			// continues as a brand new literal: original_source's decoder
			// re-emits nc here unconditionally, which silently corrupts
			// output whenever a run of exactly 2+maxCount identical bytes
			// is immediately followed by a different byte (the peeked
			// byte it reads is discarded rather than checked or used).
			// Writing the peeked byte itself, rather than assuming it
			// repeats nc, keeps both that case and genuine continuations
			// correct. The peek happens only while more output is pending:
			// a run that ends the stream has no byte after its count.
			peek := c.readByte()
			buf = append(buf, peek)
			cc = peek
		}
		return clamp(buf, remaining)
	})
	return out, nil
}

func clamp(b []byte, remaining int) []byte {
	if len(b) > remaining {
		return b[:remaining]
	}
	return b
}
