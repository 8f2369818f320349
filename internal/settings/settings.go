// Package settings loads the hardware timing constants the simulator
// treats as external knobs rather than spec-fixed values.
package settings

import (
	"io"

	"gopkg.in/yaml.v3"
)

// Settings holds the DRAM bandwidth model, tick cap and weight-cache
// sweep parameters for one simulator run.
type Settings struct {
	BwBytesPerCycle  int64           `yaml:"bw_bytes_per_cycle"`
	FixedLatency     int64           `yaml:"fixed_latency"`
	WireEntryBytes   int             `yaml:"wire_entry_bytes"`
	PerCycleBudget   int64           `yaml:"per_cycle_budget"`
	MaxTicksPerSite  uint64          `yaml:"max_ticks_per_site"`
	CacheSweep       CacheSweepConfig `yaml:"cache_sweep"`
}

// CacheSweepConfig parameterizes the optional weight-cache performance
// sweep.
type CacheSweepConfig struct {
	Enabled     bool  `yaml:"enabled"`
	SetsOptions []int `yaml:"sets_options"`
	WaysOptions []int `yaml:"ways_options"`
}

// Default returns the simulator's built-in timing constants, used when no
// settings file is supplied on the CLI.
func Default() Settings {
	return Settings{
		BwBytesPerCycle: 16,
		FixedLatency:    40,
		WireEntryBytes:  5,
		PerCycleBudget:  128,
		MaxTicksPerSite: 10_000_000,
	}
}

// Load parses a YAML settings document from r, starting from Default() so
// an omitted field keeps its default rather than zeroing out.
func Load(r io.Reader) (Settings, error) {
	s := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return Settings{}, err
	}
	return s, nil
}
