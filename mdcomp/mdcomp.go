// Package mdcomp is a small format registry and dispatch table over the
// individual codec packages, shaped the way original_source's
// options_lib.hh shapes its own per-format defaults table (module size,
// padding) so a command-line front end can be built as a thin shim over
// this package without reaching into any codec package directly.
package mdcomp

import (
	"sort"

	"github.com/flamewing/mdcomp-go/artc42"
	"github.com/flamewing/mdcomp-go/comper"
	"github.com/flamewing/mdcomp-go/comperx"
	"github.com/flamewing/mdcomp-go/enigma"
	"github.com/flamewing/mdcomp-go/errs"
	"github.com/flamewing/mdcomp-go/kosinski"
	"github.com/flamewing/mdcomp-go/kosplus"
	"github.com/flamewing/mdcomp-go/lzkn1"
	"github.com/flamewing/mdcomp-go/moduled"
	"github.com/flamewing/mdcomp-go/nemesis"
	"github.com/flamewing/mdcomp-go/rocket"
	"github.com/flamewing/mdcomp-go/saxman"
	"github.com/flamewing/mdcomp-go/snkrle"
)

const pkgName = "mdcomp"

// Format describes one registered codec: its name, its plain (non-moduled)
// Encode/Decode entry points, and the defaults a moduled wrapper around it
// would use. Moduled is false for formats the moduled container does not
// wrap (only the formats below that report one have a defined wrapper);
// for those, DefaultModuleSize and DefaultPadding are zero.
type Format struct {
	Name              string
	Encode            func([]byte) ([]byte, error)
	Decode            func([]byte) ([]byte, error)
	Moduled           bool
	DefaultModuleSize int
	DefaultPadding    int
}

var registry = buildRegistry()

func buildRegistry() map[string]Format {
	formats := []Format{
		{Name: "comper", Encode: comper.Encode, Decode: comper.Decode,
			Moduled: true, DefaultModuleSize: moduled.DefaultModuleSize, DefaultPadding: comper.Trait().ModulePadding()},
		{Name: "comperx", Encode: comperx.Encode, Decode: comperx.Decode,
			Moduled: true, DefaultModuleSize: moduled.DefaultModuleSize, DefaultPadding: comperx.Trait().ModulePadding()},
		{Name: "kosinski", Encode: kosinski.Encode, Decode: kosinski.Decode,
			Moduled: true, DefaultModuleSize: moduled.DefaultModuleSize, DefaultPadding: kosinski.Trait().ModulePadding()},
		{Name: "kosplus", Encode: kosplus.Encode, Decode: kosplus.Decode,
			Moduled: true, DefaultModuleSize: moduled.DefaultModuleSize, DefaultPadding: kosplus.Trait().ModulePadding()},
		{Name: "lzkn1", Encode: lzkn1.Encode, Decode: lzkn1.Decode,
			Moduled: true, DefaultModuleSize: moduled.DefaultModuleSize, DefaultPadding: lzkn1.Trait().ModulePadding()},
		{Name: "rocket", Encode: rocket.Encode, Decode: rocket.Decode,
			Moduled: true, DefaultModuleSize: moduled.DefaultModuleSize, DefaultPadding: 1},
		{Name: "saxman", Encode: saxman.EncodeSized, Decode: saxman.DecodeSized,
			Moduled: true, DefaultModuleSize: moduled.DefaultModuleSize, DefaultPadding: 1},
		{Name: "nemesis", Encode: nemesis.Encode, Decode: nemesis.Decode},
		{Name: "enigma", Encode: enigma.Encode, Decode: enigma.Decode},
		{Name: "snkrle", Encode: snkrle.Encode, Decode: snkrle.Decode},
		{Name: "artc42", Encode: artc42.Encode, Decode: artc42.Decode},
	}
	m := make(map[string]Format, len(formats))
	for _, f := range formats {
		m[f.Name] = f
	}
	return m
}

// Formats returns every registered format, sorted by name.
func Formats() []Format {
	out := make([]Format, 0, len(registry))
	for _, f := range registry {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the registered Format for name, or false if name is not a
// known format.
func Lookup(name string) (Format, bool) {
	f, ok := registry[name]
	return f, ok
}

// Encode dispatches to the named format's Encode.
func Encode(name string, input []byte) (output []byte, err error) {
	f, ok := registry[name]
	if !ok {
		return nil, errs.New(pkgName, errs.UsageError, "unknown format: "+name)
	}
	return f.Encode(input)
}

// Decode dispatches to the named format's Decode.
func Decode(name string, input []byte) (output []byte, err error) {
	f, ok := registry[name]
	if !ok {
		return nil, errs.New(pkgName, errs.UsageError, "unknown format: "+name)
	}
	return f.Decode(input)
}
