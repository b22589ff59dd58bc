package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/visakit/visarepr/pkg/detect"
)

// DetectOptions holds options for the detect command.
type DetectOptions struct {
	Format string // Serialization format
	Out    string // Output file, empty for stdout
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Measure the VISA types on this machine",
		Long: `Measure the representation of each VISA type on the machine the
tool is running on and serialize the result for transport back to a
build host:

  shell   POSIX shell exports, sourced before a custom-mode build
  batch   Windows batch equivalents of the shell exports
  table   a platform-table fragment pinning this machine
  json    the raw map for programmatic use

Run this on the target machine of a cross build, then feed the output
to the resolver as overrides (shell, batch) or an explicit table file
(table).`,
		Example: `  # Print shell exports
  visarepr detect

  # Write a table fragment for the build host
  visarepr detect --format table --out target_repr.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDetect(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "shell", "Output format: shell, batch, table, json")
	cmd.Flags().StringVar(&opts.Out, "out", "", "Output file (default: stdout)")

	return cmd
}

func runDetect(cmd *cobra.Command, opts *DetectOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	format, err := detect.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	report, err := detect.New()
	if err != nil {
		return err
	}
	cmdCtx.Logger.Debug("detected host representations", "facts", report.Facts.String())

	if opts.Out == "" {
		return report.Write(r.Out(), format)
	}

	f, err := os.Create(opts.Out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", opts.Out, err)
	}
	if err := report.Write(f, format); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	r.Successf("Wrote %s (%s format) for %s", opts.Out, format, report.Facts)
	return nil
}
