package lzss

import (
	"fmt"

	"github.com/flamewing/mdcomp-go/errs"
)

// Malformedf panics a *errs.Error tagged MalformedInput, to be caught by
// errs.Recover at the format package's exported Decode function.
func Malformedf(pkg, format string, args ...interface{}) {
	errs.Malformed(pkg, fmt.Sprintf(format, args...))
}

// Invariantf panics an unrecovered internal-bug error: an Invalid edge
// surviving into the parsed path, or a length/distance outside the
// format's declared range at emit time, means the trait or engine has a
// bug and must crash loudly rather than produce a silently wrong stream.
func Invariantf(format string, args ...interface{}) {
	errs.Invariant(fmt.Sprintf(format, args...))
}
