// Package ioendian implements fixed-width integer byte I/O: reading and
// writing unsigned integers in big- or little-endian byte order. It plays
// the role of the original mdcomp
// project's bigendian_io.hh, translated into small value-returning helpers
// in the style of github.com/dsnet/compress's internal LUT helpers
// (internal/common.go).
package ioendian

import "github.com/flamewing/mdcomp-go/errs"

// ReadUint8 reads one byte at off.
func ReadUint8(pkg string, data []byte, off int) uint8 {
	if off < 0 || off >= len(data) {
		errs.Malformed(pkg, "unexpected end of input")
	}
	return data[off]
}

// ReadUint16BE reads a big-endian 16-bit word at off.
func ReadUint16BE(pkg string, data []byte, off int) uint16 {
	b := requireN(pkg, data, off, 2)
	return uint16(b[0])<<8 | uint16(b[1])
}

// ReadUint16LE reads a little-endian 16-bit word at off.
func ReadUint16LE(pkg string, data []byte, off int) uint16 {
	b := requireN(pkg, data, off, 2)
	return uint16(b[1])<<8 | uint16(b[0])
}

// ReadUint32BE reads a big-endian 32-bit word at off.
func ReadUint32BE(pkg string, data []byte, off int) uint32 {
	b := requireN(pkg, data, off, 4)
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// ReadUint32LE reads a little-endian 32-bit word at off.
func ReadUint32LE(pkg string, data []byte, off int) uint32 {
	b := requireN(pkg, data, off, 4)
	return uint32(b[3])<<24 | uint32(b[2])<<16 | uint32(b[1])<<8 | uint32(b[0])
}

func requireN(pkg string, data []byte, off, n int) []byte {
	if off < 0 || off+n > len(data) {
		errs.Malformed(pkg, "unexpected end of input")
	}
	return data[off : off+n]
}

// PutUint8 appends a single byte.
func PutUint8(buf []byte, v uint8) []byte {
	return append(buf, v)
}

// PutUint16BE appends a big-endian 16-bit word.
func PutUint16BE(buf []byte, v uint16) []byte {
	return append(buf, byte(v>>8), byte(v))
}

// PutUint16LE appends a little-endian 16-bit word.
func PutUint16LE(buf []byte, v uint16) []byte {
	return append(buf, byte(v), byte(v>>8))
}

// PutUint32BE appends a big-endian 32-bit word.
func PutUint32BE(buf []byte, v uint32) []byte {
	return append(buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// PutUint32LE appends a little-endian 32-bit word.
func PutUint32LE(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}
