// Package testutil is a collection of testing helpers shared by every codec
// package's round-trip and golden-byte tests, grounded on
// github.com/dsnet/compress's internal/testutil package.
package testutil

import (
	"encoding/hex"
	"os"
)

// LoadFile loads the first n bytes of the input file. If n is negative, it
// returns the whole file. If the file is shorter than n, it replicates the
// file's contents (each copy XORed by an incrementing mask, so large
// windows do not get an unfair advantage matching against themselves) until
// the result is n bytes long.
func LoadFile(file string, n int) ([]byte, error) {
	input, err := os.ReadFile(file)
	switch {
	case err != nil:
		return nil, err
	case n < 0:
		return input, nil
	case len(input) >= n:
		return input[:n], nil
	case len(input) == 0:
		return nil, os.ErrInvalid
	}

	var mask byte
	output := make([]byte, n)
	for i := range output {
		idx := i % len(input)
		output[i] = input[idx] ^ mask
		if idx == len(input)-1 {
			mask++
		}
	}
	return output, nil
}

// MustLoadFile loads a file or panics.
func MustLoadFile(file string, n int) []byte {
	b, err := LoadFile(file, n)
	if err != nil {
		panic(err)
	}
	return b
}

// MustDecodeHex decodes a hexadecimal string or panics.
func MustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}
