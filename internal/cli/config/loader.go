package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/visakit/visarepr/pkg/override"
	"github.com/visakit/visarepr/pkg/table"
)

// ConfigFileName is the name of the tool config file.
const ConfigFileName = "visarepr.yaml"

// ConfigFileNameAlt is the alternate name of the tool config file.
const ConfigFileNameAlt = "visarepr.yml"

// maxUpwardSearchLevels limits how far up the directory tree to search
// for a project root.
const maxUpwardSearchLevels = 10

// loggerKey stores the logger in the command context.
type loggerKey struct{}

// configKey stores the loaded config in the command context.
type configKey struct{}

// configExistsIn checks whether dir carries a tool config or a
// project-local platform table; either marks a project root.
func configExistsIn(dir string) bool {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt, table.ProjectFileName, table.ProjectFileNameAlt} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// findProjectRoot searches upward from startDir for a project marker.
// Returns startDir when none is found within the search limit.
func findProjectRoot(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if configExistsIn(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return startDir
}

// findConfigFile picks the tool config file to load.
// Priority: explicit path > visarepr.yaml > visarepr.yml in root.
func findConfigFile(explicit, root string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		candidate := filepath.Join(root, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Load loads the tool configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	projectRoot := ""
	if flags != nil && flags.Changed("project-dir") {
		dir, _ := flags.GetString("project-dir")
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("invalid project dir: %w", err)
		}
		projectRoot = abs
	} else if cwd, err := os.Getwd(); err == nil {
		projectRoot = findProjectRoot(cwd)
	} else {
		projectRoot = "."
	}

	// 1. Defaults.
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"output":  DefaultOutput,
		"verbose": false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file, if any.
	if configFile := findConfigFile(cfgFile, projectRoot); configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	// 3. Environment variables (VISAREPR_ prefix).
	// Transform: VISAREPR_TARGET_OS -> target_os.
	if err := k.Load(env.Provider("VISAREPR_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "VISAREPR_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority).
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			// The --config-table flag maps to the table_path key.
			if key == "config_table" {
				return "table_path", posflag.FlagVal(flags, f)
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ProjectRoot = projectRoot

	// The explicit table path may also arrive through the resolver's
	// own variable; flags/file/env for the tool win when both are set.
	if cfg.TablePath == "" {
		cfg.TablePath = override.ConfigPathFromEnv()
	}

	return &cfg, nil
}

// WithConfig stores the config in a context.
func WithConfig(ctx context.Context, c *Config) context.Context {
	return context.WithValue(ctx, configKey{}, c)
}

// GetConfig retrieves the config from the command context, or a default
// config when none was loaded.
func GetConfig(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return &Config{Output: DefaultOutput}
}

// NewLogger builds the tool logger; verbose enables debug level.
func NewLogger(w *os.File, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// WithLogger stores the logger in a context.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Discard logger as safe fallback.
	return slog.New(slog.DiscardHandler)
}
