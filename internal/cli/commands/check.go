package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/visakit/visarepr/internal/cli/output"
	"github.com/visakit/visarepr/pkg/repr"
	"github.com/visakit/visarepr/pkg/resolver"
	"github.com/visakit/visarepr/pkg/table"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [table-file]",
		Short: "Validate a platform table file",
		Long: `Parse and validate a platform table file: every condition must
parse, every entry must cover all required types, and the configured
target must select exactly one entry.

Without an argument the project-local table is checked. Target facts
come from the usual flags, so a table can be probed against several
targets without editing it.`,
		Example: `  # Check the project table against the host
  visarepr check

  # Check a file against a cross target
  visarepr check target_repr.yaml --target-os windows --target-pointer-width 64`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args)
		},
	}
	return cmd
}

type checkResult struct {
	Path    string `json:"path"`
	Entries int    `json:"entries"`
	Matched string `json:"matched_condition,omitempty"`
	Target  string `json:"target"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	path := ""
	if len(args) == 1 {
		path = args[0]
	} else if p := table.FindProjectFile(cmdCtx.Cfg.ProjectRoot); p != "" {
		path = p
	} else {
		return fmt.Errorf("no table file given and no %s found in %s",
			table.ProjectFileName, cmdCtx.Cfg.ProjectRoot)
	}

	tbl, err := table.LoadFile(path)
	if err != nil {
		return err
	}
	if err := tbl.Validate(repr.Required()); err != nil {
		return err
	}

	f, err := cmdCtx.Cfg.Facts()
	if err != nil {
		return err
	}

	// Probing through the resolver exercises the same exactly-one-match
	// rule a real cross-compile resolution would apply.
	m, err := resolver.Resolve(resolver.Inputs{
		Mode:     resolver.ModeCross,
		Facts:    f,
		Explicit: tbl,
	})
	if err != nil {
		return err
	}

	matched := ""
	for i := range tbl.Entries {
		if tbl.Entries[i].Matches(f) {
			matched = tbl.Entries[i].When
			break
		}
	}

	res := checkResult{
		Path:    path,
		Entries: len(tbl.Entries),
		Matched: matched,
		Target:  f.String(),
	}
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(res)
	}
	r.Successf("%s: %d entries, all conditions parse, all types covered", path, res.Entries)
	r.Printf("target %s selects: %s (%d types)\n", res.Target, res.Matched, len(m))
	return nil
}
