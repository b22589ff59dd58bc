// Package codegen turns a resolved representation map into a generated
// Go source file for binding code to consume.
//
// Each type becomes a defined integer type plus a compile-time size
// assertion, so a wrong representation fails the downstream build at
// compile time instead of corrupting memory at run time.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"

	"github.com/visakit/visarepr/pkg/repr"
	"github.com/visakit/visarepr/pkg/resolver"
)

// Options configures artifact generation.
type Options struct {
	// Package is the package clause of the generated file.
	// Defaults to "visa".
	Package string

	// Target describes the platform the map was resolved for; it goes
	// into the file header for provenance.
	Target string
}

// goType maps a representation to the Go type with the same layout.
var goType = map[repr.Representation]string{
	repr.I8:  "int8",
	repr.I16: "int16",
	repr.I32: "int32",
	repr.I64: "int64",
	repr.U8:  "uint8",
	repr.U16: "uint16",
	repr.U32: "uint32",
	repr.U64: "uint64",
}

// Generate renders the resolved map as gofmt-formatted Go source.
func Generate(m resolver.ResolvedMap, opts Options) ([]byte, error) {
	pkg := opts.Package
	if pkg == "" {
		pkg = "visa"
	}

	var buf bytes.Buffer
	buf.WriteString("// Code generated by visarepr. DO NOT EDIT.\n")
	if opts.Target != "" {
		fmt.Fprintf(&buf, "//\n// Resolved for target: %s.\n", opts.Target)
	}
	fmt.Fprintf(&buf, "\npackage %s\n\n", pkg)
	buf.WriteString("import \"unsafe\"\n\n")

	for _, typ := range m.Ordered() {
		rep := m[typ]
		gt, ok := goType[rep]
		if !ok {
			return nil, fmt.Errorf("%s resolved to %s, which has no Go equivalent", typ, rep)
		}
		fmt.Fprintf(&buf, "// %s is backed by %s on this target.\n", typ, rep)
		fmt.Fprintf(&buf, "type %s %s\n\n", typ, gt)
	}

	// One assertion per type: the array lengths only agree when the
	// generated type has the resolved byte width.
	buf.WriteString("// Size assertions; a mismatch here means the resolved\n")
	buf.WriteString("// representation does not match the declared type.\n")
	for _, typ := range m.Ordered() {
		size := m[typ].Bits() / 8
		fmt.Fprintf(&buf, "var _ [unsafe.Sizeof(%s(0))]byte = [%d]byte{}\n", typ, size)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("generated source does not format: %w", err)
	}
	return src, nil
}
