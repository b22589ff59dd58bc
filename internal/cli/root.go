// Package cli provides the command-line interface for visarepr.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/visakit/visarepr/internal/cli/commands"
	"github.com/visakit/visarepr/internal/cli/config"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "visarepr",
		Short: "visarepr - VISA type representation resolver",
		Long: `visarepr decides, at build time, which machine integer backs each
VISA type on the target platform.

It layers a bundled platform table, an optional project-local table,
an optional explicit-path table and per-type environment overrides
under a policy mode selected by the --cross-compile and --custom
switches, then resolves every required type or reports the complete
list of failures.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, config.NewLogger(os.Stderr, cfg.Verbose))
			cmd.SetContext(ctx)

			if cfg.Verbose {
				fmt.Fprintf(os.Stderr, "Project root: %s\n", cfg.ProjectRoot)
				if cfg.TablePath != "" {
					fmt.Fprintf(os.Stderr, "Explicit table: %s\n", cfg.TablePath)
				}
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
VISA type representation resolver
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./visarepr.yaml)")
	rootCmd.PersistentFlags().String("project-dir", "", "Project directory (default: nearest directory with a config or table file)")
	rootCmd.PersistentFlags().Bool("cross-compile", false, "Resolve from the active platform table")
	rootCmd.PersistentFlags().Bool("custom", false, "Consult per-type environment overrides first")
	rootCmd.PersistentFlags().String("config-table", "", "Explicit platform table file (absolute path)")
	rootCmd.PersistentFlags().String("target-os", "", "Target operating system (e.g. windows, linux, macos)")
	rootCmd.PersistentFlags().String("target-arch", "", "Target architecture (e.g. amd64, arm64)")
	rootCmd.PersistentFlags().String("target-pointer-width", "", "Target pointer width in bits (e.g. 32, 64)")
	rootCmd.PersistentFlags().String("target-env", "", "Target ABI environment (e.g. gnu, msvc, musl)")
	rootCmd.PersistentFlags().Bool("legacy-native-fallback", false, "Silently measure the host for types custom mode cannot resolve")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("target-os", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"windows", "linux", "macos", "freebsd"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewResolveCommand())
	rootCmd.AddCommand(commands.NewGenerateCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewCheckCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
