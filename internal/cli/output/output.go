// Package output renders command results for terminals, pipes and
// machine consumers.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Mode selects how results are rendered.
type Mode string

const (
	// ModeAuto styles output on a terminal and stays plain when piped.
	ModeAuto Mode = "auto"
	ModeText Mode = "text"
	ModeJSON Mode = "json"
)

var (
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Renderer writes results in a chosen mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styled bool
}

// NewRenderer creates a renderer for the given writers and mode.
// An unrecognized mode falls back to auto.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	switch mode {
	case ModeText, ModeJSON, ModeAuto:
	default:
		mode = ModeAuto
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		styled: mode == ModeAuto && isTerminal(out),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// EffectiveMode resolves auto to the concrete mode in effect.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode == ModeAuto {
		return ModeText
	}
	return r.mode
}

// Out returns the destination writer for command results.
func (r *Renderer) Out() io.Writer { return r.out }

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Printf writes plain result text.
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Successf writes a success line, styled on terminals.
func (r *Renderer) Successf(format string, args ...any) {
	r.styledLine(r.out, successStyle, format, args...)
}

// Notef writes a secondary informational line to stderr so it never
// contaminates piped output.
func (r *Renderer) Notef(format string, args ...any) {
	r.styledLine(r.errOut, dimStyle, format, args...)
}

// Errorf writes an error line to stderr, styled on terminals.
func (r *Renderer) Errorf(format string, args ...any) {
	r.styledLine(r.errOut, errStyle, format, args...)
}

func (r *Renderer) styledLine(w io.Writer, style lipgloss.Style, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if r.styled {
		msg = style.Render(msg)
	}
	fmt.Fprintln(w, msg)
}
