// Package artc42 is a placeholder for a format the original tool stubs
// out entirely: both its encode and decode entry points ignore their
// arguments and report failure unconditionally. Grounded on
// original_source/src/lib/artc42.cc.
package artc42

import "github.com/flamewing/mdcomp-go/errs"

const pkgName = "artc42"

// ErrNotImplemented is returned by both Encode and Decode. There is no
// input this format could ever accept, so there is nothing for Recover to
// turn a panic into. Its Kind is UsageError: the failure comes from
// calling a format with no defined behavior, not from malformed input.
var ErrNotImplemented = errs.New(pkgName, errs.UsageError, "artc42 is not implemented upstream")

// Encode always fails: artc42 has no defined encoding behavior upstream.
func Encode(input []byte) (output []byte, err error) {
	return nil, ErrNotImplemented
}

// Decode always fails: artc42 has no defined decoding behavior upstream.
func Decode(input []byte) (output []byte, err error) {
	return nil, ErrNotImplemented
}
