// Package hostcfg loads the host simulator configuration. Only the desktop
// runner reads it; device builds carry their nominals as constants.
package hostcfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the YAML schema for the simulator.
type Config struct {
	Headless bool   `yaml:"headless"`
	Hz       int    `yaml:"hz"`
	Ticks    uint64 `yaml:"ticks"`
	Scale    int    `yaml:"scale"`

	// Keys maps button names (up, down, left, right, ok, back, menu) to
	// key names (ArrowUp, Z, ...). Unset buttons use defaults.
	Keys map[string]string `yaml:"keys"`

	Policy PolicyConfig `yaml:"policy"`
}

// PolicyConfig overrides scheduler nominals; zero fields keep defaults.
type PolicyConfig struct {
	TickMS         uint32 `yaml:"tick_ms"`
	RestoreMS      uint32 `yaml:"restore_ms"`
	ProbeMS        uint32 `yaml:"probe_ms"`
	ReinsertMS     uint32 `yaml:"reinsert_ms"`
	ProbeFailLimit int    `yaml:"probe_fail_limit"`
	RequireStorage *bool  `yaml:"require_storage"`
}

// Default returns the simulator defaults.
func Default() Config {
	return Config{Hz: 60, Scale: 2}
}

// Load reads a config file. A missing file is not an error: the defaults
// apply, same as running without a file at all.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("hostcfg: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("hostcfg: parse %q: %w", path, err)
	}
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 2
	}
	return cfg, nil
}
