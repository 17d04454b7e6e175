// Package config loads the simulator configuration from defaults, a YAML file,
// SRAMSIM_* environment variables and command-line flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/spf13/pflag"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/sarchlab/sramsim/timing/sram"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "SRAMSIM_"

// flagKeys maps flag names whose config key is not the snake_case form of
// the flag name.
var flagKeys = map[string]string{
	"random": "random_edges",
}

// ignoredFlags are flags that never map to a config key.
var ignoredFlags = map[string]bool{
	"config": true,
	"dump":   true,
	"help":   true,
}

// Config holds the parameters of a simulation run.
type Config struct {
	// DataWidth is the word width in bits. Default: 32.
	DataWidth int `koanf:"data_width" yaml:"data_width"`

	// AddrWidth is the address width in bits. Default: 8.
	AddrWidth int `koanf:"addr_width" yaml:"addr_width"`

	// ClockMHz is the clock frequency used to time-stamp edges.
	// Default: 100 MHz.
	ClockMHz float64 `koanf:"clock_mhz" yaml:"clock_mhz"`

	// Stimulus is the path of a YAML stimulus file.
	Stimulus string `koanf:"stimulus" yaml:"stimulus,omitempty"`

	// Scenario names a built-in stimulus program, or "all".
	Scenario string `koanf:"scenario" yaml:"scenario,omitempty"`

	// RandomEdges is the length of a generated random program.
	RandomEdges int `koanf:"random_edges" yaml:"random_edges,omitempty"`

	// Seed seeds the random program generator.
	Seed uint64 `koanf:"seed" yaml:"seed"`

	// Verbose enables per-edge debug logging.
	Verbose bool `koanf:"verbose" yaml:"verbose"`
}

// DefaultConfig returns the default configuration: a 32-bit, 256-word memory
// clocked at 100 MHz.
func DefaultConfig() *Config {
	mem := sram.DefaultConfig()
	return &Config{
		DataWidth: mem.DataWidth,
		AddrWidth: mem.AddrWidth,
		ClockMHz:  100,
	}
}

func defaults() map[string]interface{} {
	d := DefaultConfig()
	return map[string]interface{}{
		"data_width":   d.DataWidth,
		"addr_width":   d.AddrWidth,
		"clock_mhz":    d.ClockMHz,
		"stimulus":     d.Stimulus,
		"scenario":     d.Scenario,
		"random_edges": d.RandomEdges,
		"seed":         d.Seed,
		"verbose":      d.Verbose,
	}
}

// Load builds a configuration. Precedence, highest first: flags that were
// explicitly set, SRAMSIM_* environment variables, the YAML file at path,
// defaults. An empty path skips the file; flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || ignoredFlags[f.Name] {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
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

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Memory returns the memory geometry.
func (c *Config) Memory() sram.Config {
	return sram.Config{
		DataWidth: c.DataWidth,
		AddrWidth: c.AddrWidth,
	}
}

// Freq returns the clock frequency.
func (c *Config) Freq() sim.Freq {
	return sim.Freq(c.ClockMHz) * sim.MHz
}

// Validate checks the memory geometry and the run parameters.
func (c *Config) Validate() error {
	if err := c.Memory().Validate(); err != nil {
		return err
	}
	if c.ClockMHz <= 0 {
		return fmt.Errorf("clock_mhz must be > 0")
	}
	if c.RandomEdges < 0 {
		return fmt.Errorf("random_edges must be >= 0")
	}

	sources := 0
	for _, set := range []bool{c.Stimulus != "", c.Scenario != "", c.RandomEdges > 0} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return fmt.Errorf("only one of stimulus, scenario and random_edges may be set")
	}

	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// Save writes the configuration to a YAML file that Load accepts.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
