// Package commands implements the visarepr subcommands.
package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/visakit/visarepr/internal/cli/config"
	"github.com/visakit/visarepr/internal/cli/output"
	"github.com/visakit/visarepr/pkg/override"
	"github.com/visakit/visarepr/pkg/repr"
	"github.com/visakit/visarepr/pkg/resolver"
	"github.com/visakit/visarepr/pkg/table"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext gathers config, logger and renderer for a command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// BuildInputs assembles a resolution pass from the loaded config: target
// facts, mode, the tables the mode consults and the parsed environment
// overrides. Every loading failure is collected so the user sees the
// complete list in one run.
func BuildInputs(cfg *config.Config) (resolver.Inputs, error) {
	var errs resolver.Errors

	f, err := cfg.Facts()
	if err != nil {
		return resolver.Inputs{}, err
	}

	in := resolver.Inputs{
		Facts:                f,
		Mode:                 cfg.Mode(),
		LegacyNativeFallback: cfg.LegacyNativeFallback,
	}

	if cfg.TablePath != "" {
		tbl, err := table.LoadExplicit(cfg.TablePath)
		if err != nil {
			errs = append(errs, err)
		} else {
			in.Explicit = tbl
		}
	}

	switch in.Mode {
	case resolver.ModeCross, resolver.ModeCustom:
		tbl, err := table.LoadProject(cfg.ProjectRoot)
		if err != nil {
			errs = append(errs, err)
		} else {
			in.Project = tbl
		}
	}

	switch in.Mode {
	case resolver.ModeCustom, resolver.ModeCrossCustom:
		set, parseErrs := override.FromEnv(repr.Required())
		errs = append(errs, parseErrs...)
		in.Overrides = set
	}

	if len(errs) > 0 {
		return resolver.Inputs{}, errs
	}
	return in, nil
}
