// Package config loads the tool's own configuration: target facts,
// policy mode and output preferences. It layers, from lowest to highest
// precedence: built-in defaults, the visarepr.yaml project file,
// VISAREPR_-prefixed environment variables, and command-line flags.
//
// This is distinct from the platform tables and VISA_REPR_* overrides
// in pkg/table and pkg/override, which configure what is being
// resolved rather than how the tool runs.
package config

import (
	"fmt"

	"github.com/visakit/visarepr/pkg/facts"
	"github.com/visakit/visarepr/pkg/resolver"
)

// DefaultOutput is the output mode applied before any other source.
const DefaultOutput = "auto"

// Config holds the loaded tool configuration.
type Config struct {
	// ProjectRoot anchors the search for project-local files.
	ProjectRoot string `koanf:"-"`

	// Target attribute overrides; empty fields keep the host's value.
	TargetOS           string `koanf:"target_os"`
	TargetArch         string `koanf:"target_arch"`
	TargetPointerWidth string `koanf:"target_pointer_width"`
	TargetEnv          string `koanf:"target_env"`

	// Policy mode selection.
	CrossCompile bool `koanf:"cross_compile"`
	Custom       bool `koanf:"custom"`

	// TablePath is an explicit platform-table path. When empty, the
	// VISA_REPR_CONFIG_PATH variable is consulted instead.
	TablePath string `koanf:"table_path"`

	// LegacyNativeFallback restores the historical silent host
	// fallback in custom mode.
	LegacyNativeFallback bool `koanf:"legacy_native_fallback"`

	Output  string `koanf:"output"`
	Verbose bool   `koanf:"verbose"`
}

// Mode maps the two policy switches onto the resolver's mode.
func (c *Config) Mode() resolver.Mode {
	switch {
	case c.CrossCompile && c.Custom:
		return resolver.ModeCrossCustom
	case c.Custom:
		return resolver.ModeCustom
	case c.CrossCompile:
		return resolver.ModeCross
	default:
		return resolver.ModeNative
	}
}

// Facts builds the target fact table: the host's facts overlaid with
// any explicitly configured attributes. Setting target_os also adjusts
// the derived family, so `--target-os windows` behaves as expected
// without a separate flag.
func (c *Config) Facts() (*facts.Table, error) {
	f := facts.Host()
	overlays := []struct{ key, value string }{
		{facts.KeyOS, c.TargetOS},
		{facts.KeyArch, c.TargetArch},
		{facts.KeyPointerWidth, c.TargetPointerWidth},
		{facts.KeyEnv, c.TargetEnv},
	}
	for _, o := range overlays {
		if o.value == "" {
			continue
		}
		var err error
		if f, err = f.With(o.key, o.value); err != nil {
			return nil, fmt.Errorf("invalid target attribute: %w", err)
		}
	}
	if c.TargetOS != "" {
		family := "unix"
		if c.TargetOS == "windows" {
			family = "windows"
		}
		var err error
		if f, err = f.With(facts.KeyFamily, family); err != nil {
			return nil, err
		}
	}
	return f, nil
}
