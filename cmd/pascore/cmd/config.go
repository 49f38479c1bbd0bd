package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/pascore/internal/scope"
	"github.com/cwbudde/pascore/internal/types"
	"github.com/goccy/go-yaml"
)

// ProjectConfig is the optional pascore.yaml project file: a way to pin the
// core's normally-fixed constants (internal/scope.FrameReserved,
// internal/types.Integer's bounds) once per project instead of reasoning
// about them from flags on every subcommand invocation.
type ProjectConfig struct {
	FrameReserved   int `yaml:"frameReserved"`
	IntegerBitWidth int `yaml:"integerBitWidth"`
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "pascore.yaml", "project config file (optional)")
}

// loadProjectConfig reads configPath if present. A missing file is not an
// error: the config is entirely optional. IntegerBitWidth, if set, widens or
// narrows types.Integer's bounds; FrameReserved, if set, is only checked
// against scope.FrameReserved (a compiled-in constant the file cannot
// actually change) so a stale project file fails loudly instead of silently
// disagreeing with the binary it's paired with.
func loadProjectConfig() (*ProjectConfig, error) {
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", configPath, err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", configPath, err)
	}

	if cfg.FrameReserved != 0 && cfg.FrameReserved != scope.FrameReserved {
		return nil, fmt.Errorf("%s: frameReserved %d does not match the compiled-in value %d", configPath, cfg.FrameReserved, scope.FrameReserved)
	}

	if cfg.IntegerBitWidth != 0 {
		lower, upper := integerBoundsFor(cfg.IntegerBitWidth)
		types.Integer.Lower = lower
		types.Integer.Upper = upper
	}

	return &cfg, nil
}

// integerBoundsFor returns the signed [lower, upper] range for a bit width.
func integerBoundsFor(bits int) (int, int) {
	upper := 1<<(bits-1) - 1
	lower := -upper - 1
	return lower, upper
}
