package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/visakit/visarepr/internal/cli/output"
	"github.com/visakit/visarepr/pkg/repr"
	"github.com/visakit/visarepr/pkg/resolver"
)

// ResolveOptions holds options for the resolve command.
type ResolveOptions struct {
	Format string // Output format override
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand() *cobra.Command {
	opts := &ResolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve [type...]",
		Short: "Resolve VISA type representations",
		Long: `Resolve the machine representation of each VISA type for the
configured target, applying the active policy mode:

  native                  measure the host ABI (default)
  cross-compile           resolve from the active platform table
  custom                  environment overrides, table as fallback
  cross-compile+custom    overrides plus an explicit table only

Without arguments all required types are resolved; naming types
restricts the output to those types.`,
		Example: `  # Resolve everything for the host
  visarepr resolve

  # Resolve for a 64-bit Windows target
  visarepr resolve --cross-compile --target-os windows --target-pointer-width 64

  # Shell-export form for one type
  visarepr resolve --format env ViStatus`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, env")

	return cmd
}

func runResolve(cmd *cobra.Command, args []string, opts *ResolveOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	types, err := parseTypeArgs(args)
	if err != nil {
		return err
	}

	in, err := BuildInputs(cmdCtx.Cfg)
	if err != nil {
		return err
	}
	in.Types = types

	cmdCtx.Logger.Debug("resolving representations",
		"mode", in.Mode.String(),
		"facts", in.Facts.String())

	m, err := resolver.Resolve(in)
	if err != nil {
		return err
	}

	switch {
	case opts.Format == "env":
		return renderResolveEnv(r, m)
	case opts.Format == "json" || (opts.Format == "" && r.EffectiveMode() == output.ModeJSON):
		return renderResolveJSON(r, in, m)
	default:
		return renderResolveText(r, in, m)
	}
}

// parseTypeArgs converts command arguments into the types to resolve.
// An empty argument list means the full required set.
func parseTypeArgs(args []string) ([]repr.TypeName, error) {
	if len(args) == 0 {
		return nil, nil
	}
	types := make([]repr.TypeName, 0, len(args))
	for _, a := range args {
		t, err := repr.ParseTypeName(a)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

func renderResolveText(r *output.Renderer, in resolver.Inputs, m resolver.ResolvedMap) error {
	r.Notef("mode: %s", in.Mode)
	r.Notef("target: %s", in.Facts)

	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Type", "Representation", "Bits"})
	for _, typ := range m.Ordered() {
		rep := m[typ]
		t.AppendRow(table.Row{typ, rep, rep.Bits()})
	}
	t.Render()
	return nil
}

func renderResolveJSON(r *output.Renderer, in resolver.Inputs, m resolver.ResolvedMap) error {
	return r.JSON(struct {
		Mode  string               `json:"mode"`
		Facts string               `json:"target"`
		Types resolver.ResolvedMap `json:"types"`
	}{
		Mode:  in.Mode.String(),
		Facts: in.Facts.String(),
		Types: m,
	})
}

// renderResolveEnv emits the map as override assignments, so a resolved
// configuration can be replayed on another machine in custom mode.
func renderResolveEnv(r *output.Renderer, m resolver.ResolvedMap) error {
	for _, typ := range m.Ordered() {
		r.Printf("export %s=%q\n", typ.OverrideVar(), m[typ])
	}
	return nil
}
