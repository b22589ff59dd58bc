package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/visakit/visarepr/pkg/codegen"
	"github.com/visakit/visarepr/pkg/resolver"
)

// GenerateOptions holds options for the generate command.
type GenerateOptions struct {
	Out     string // Output file, empty for stdout
	Package string // Package clause of the generated file
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	opts := &GenerateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate Go type definitions for the resolved representations",
		Long: `Resolve all VISA types for the configured target, then emit a Go
source file declaring one defined integer type per VISA type plus
compile-time size assertions. A wrong representation then fails the
consuming build instead of corrupting memory at run time.`,
		Example: `  # Print generated source for the host
  visarepr generate

  # Write a file for a cross target
  visarepr generate --cross-compile --target-os windows \
      --target-pointer-width 64 --out visa_types_windows.go`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&opts.Package, "package", "", "Package name of the generated file (default: visa)")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *GenerateOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	in, err := BuildInputs(cmdCtx.Cfg)
	if err != nil {
		return err
	}
	m, err := resolver.Resolve(in)
	if err != nil {
		return err
	}

	src, err := codegen.Generate(m, codegen.Options{
		Package: opts.Package,
		Target:  in.Facts.String(),
	})
	if err != nil {
		return err
	}

	if opts.Out == "" {
		r.Printf("%s", src)
		return nil
	}
	if err := os.WriteFile(opts.Out, src, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.Out, err)
	}
	r.Successf("Wrote %s (%d types, mode %s)", opts.Out, len(m), in.Mode)
	return nil
}
