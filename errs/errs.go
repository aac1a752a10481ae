// Package errs defines the error taxonomy shared by every codec package in
// this module: MalformedInput, InvariantViolation, IoError, and UsageError.
//
// Codecs signal a recoverable failure by panicking with a value that
// satisfies error (an *Error from this package, in the panic-and-recover
// style of github.com/dsnet/compress). Every exported Encode/Decode entry point
// defers Recover(&err), which turns a recovered error into a normal return
// value while letting runtime.Error and anything unrecognised keep
// unwinding — an InvariantViolation is a bug, not a reportable condition,
// and must crash loudly rather than be swallowed.
package errs

import "runtime"

// Kind classifies an error by its place in the shared taxonomy.
type Kind int

const (
	// MalformedInput covers truncated bitstreams, invalid headers, Huffman
	// code mismatches, and out-of-range fields detected while decoding.
	MalformedInput Kind = iota
	// IoError covers a failure of the backing source or sink.
	IoError
	// UsageError covers CLI-level misuse (option parsing, bad combinations).
	UsageError
)

func (k Kind) String() string {
	switch k {
	case MalformedInput:
		return "malformed input"
	case IoError:
		return "I/O error"
	case UsageError:
		return "usage error"
	default:
		return "error"
	}
}

// Error is a reportable error of a known Kind, carrying a package prefix and
// a message. It is never used to represent an InvariantViolation: those are
// raised as plain panics (or runtime.Error) and are never wrapped in Error,
// so Recover lets them propagate.
type Error struct {
	Kind    Kind
	Package string
	Msg     string
}

func (e *Error) Error() string {
	return e.Package + ": " + e.Kind.String() + ": " + e.Msg
}

// New constructs a reportable *Error for the given package and kind.
func New(pkg string, kind Kind, msg string) *Error {
	return &Error{Kind: kind, Package: pkg, Msg: msg}
}

// Malformed panics with a MalformedInput error, to be caught by Recover at
// the exported API boundary.
func Malformed(pkg, msg string) {
	panic(New(pkg, MalformedInput, msg))
}

// Invariant panics with a plain, unwrapped error: a violated invariant is a
// bug in the trait or the engine, not a condition callers should recover
// from, so Recover deliberately does not catch it.
func Invariant(msg string) {
	panic("mdcomp: invariant violation: " + msg)
}

// Recover is deferred by every exported Encode/Decode function. It turns a
// panicked *Error (or any other error value) into *errp, while re-panicking
// runtime.Error and anything else so invariant violations and real bugs
// keep crashing the process.
func Recover(errp *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case runtime.Error:
		panic(ex)
	case error:
		*errp = ex
	default:
		panic(ex)
	}
}
