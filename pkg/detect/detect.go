// Package detect measures the VISA types on the machine the tool runs
// on and serializes the result in forms the resolver can consume again:
// shell exports, Windows batch sets, a platform-table fragment, or JSON.
//
// The intended workflow for a cross build is to run `visarepr detect`
// on the target machine, carry the output back, and feed it to the
// resolver as environment overrides or as an explicit table file. Both
// round trips reproduce the detected map exactly.
package detect

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/visakit/visarepr/pkg/facts"
	"github.com/visakit/visarepr/pkg/resolver"
)

// Format selects a serialization of the detection report.
type Format string

const (
	FormatShell Format = "shell"
	FormatBatch Format = "batch"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ParseFormat accepts the canonical format names and common aliases.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "shell", "sh":
		return FormatShell, nil
	case "batch", "bat", "cmd":
		return FormatBatch, nil
	case "table", "yaml":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown detect format %q (expected shell, batch, table or json)", s)
	}
}

// Report holds one machine's measured representations together with the
// facts describing that machine.
type Report struct {
	Facts *facts.Table
	Map   resolver.ResolvedMap
}

// New measures the host and builds its report.
func New() (*Report, error) {
	m, err := resolver.Resolve(resolver.Inputs{Mode: resolver.ModeNative})
	if err != nil {
		return nil, err
	}
	return &Report{Facts: facts.Host(), Map: m}, nil
}

// Write serializes the report in the given format.
func (r *Report) Write(w io.Writer, f Format) error {
	switch f {
	case FormatShell:
		return r.writeShell(w)
	case FormatBatch:
		return r.writeBatch(w)
	case FormatTable:
		return r.writeTable(w)
	case FormatJSON:
		return r.writeJSON(w)
	default:
		return fmt.Errorf("unknown detect format %q", f)
	}
}

// Condition returns a condition string matching exactly the platforms
// that share this report's relevant facts.
func (r *Report) Condition() string {
	osName, _ := r.Facts.Lookup(facts.KeyOS)
	width, _ := r.Facts.Lookup(facts.KeyPointerWidth)
	return fmt.Sprintf("all(%s = %q, %s = %q)", facts.KeyOS, osName, facts.KeyPointerWidth, width)
}

// writeShell emits POSIX shell exports suitable for sourcing before a
// custom-mode build.
func (r *Report) writeShell(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "#!/bin/sh\n# Detected VISA representations for %s\n# Source this file, then build in custom mode.\n\n", r.Facts); err != nil {
		return err
	}
	for _, typ := range r.Map.Ordered() {
		if _, err := fmt.Fprintf(w, "export %s=%q\n", typ.OverrideVar(), r.Map[typ]); err != nil {
			return err
		}
	}
	return nil
}

// writeBatch emits a Windows batch script setting the same variables.
func (r *Report) writeBatch(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "@echo off\nREM Detected VISA representations for %s\nREM Run this file, then build in custom mode.\n\n", r.Facts); err != nil {
		return err
	}
	for _, typ := range r.Map.Ordered() {
		if _, err := fmt.Fprintf(w, "set %s=%s\n", typ.OverrideVar(), r.Map[typ]); err != nil {
			return err
		}
	}
	return nil
}

// tableFragment mirrors the platform-table file shape.
type tableFragment struct {
	Platforms []tableEntry `yaml:"platforms"`
}

type tableEntry struct {
	When  string            `yaml:"when"`
	Types map[string]string `yaml:"types"`
}

// writeTable emits a single-entry platform table whose condition pins
// the detected platform. The output is a valid table file on its own
// and can also be pasted into a larger one.
func (r *Report) writeTable(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# Detected VISA representations for %s\n", r.Facts); err != nil {
		return err
	}
	types := make(map[string]string, len(r.Map))
	for typ, rep := range r.Map {
		types[string(typ)] = string(rep)
	}
	frag := tableFragment{Platforms: []tableEntry{{When: r.Condition(), Types: types}}}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(frag); err != nil {
		return err
	}
	return enc.Close()
}

// writeJSON emits the map as a JSON object for programmatic use.
// Keys marshal in sorted order, so the output is deterministic.
func (r *Report) writeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.Map)
}
