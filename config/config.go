// Package config provides the run profile and the simulated platform.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/akita/v4/sim"
	"gopkg.in/yaml.v3"
)

// EngineKind selects how a program is executed.
type EngineKind string

const (
	// EngineDirect steps the machine in a plain loop.
	EngineDirect EngineKind = "direct"
	// EngineSim runs the machine as an akita component, one instruction
	// per cycle.
	EngineSim EngineKind = "sim"
)

// BufferMode selects whether program output is buffered.
type BufferMode string

const (
	BufferAuto   BufferMode = "auto"
	BufferAlways BufferMode = "always"
	BufferNever  BufferMode = "never"
)

// Config is a run profile.
type Config struct {
	Engine       EngineKind `yaml:"engine"`
	FreqMHz      float64    `yaml:"freq_mhz"`
	Optimize     bool       `yaml:"optimize"`
	Trace        bool       `yaml:"trace"`
	Stats        bool       `yaml:"stats"`
	DumpTape     bool       `yaml:"dump_tape"`
	Monitor      bool       `yaml:"monitor"`
	BufferOutput BufferMode `yaml:"buffer_output"`
}

// Default returns the profile used when no file is given.
func Default() Config {
	return Config{
		Engine:       EngineDirect,
		FreqMHz:      1000,
		Optimize:     true,
		BufferOutput: BufferAuto,
	}
}

// Load reads a YAML profile. Fields missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the profile for values the driver cannot use.
func (c Config) Validate() error {
	switch c.Engine {
	case EngineDirect, EngineSim:
	default:
		return fmt.Errorf("unknown engine %q", c.Engine)
	}

	switch c.BufferOutput {
	case BufferAuto, BufferAlways, BufferNever:
	default:
		return fmt.Errorf("unknown buffer mode %q", c.BufferOutput)
	}

	if c.FreqMHz <= 0 {
		return fmt.Errorf("frequency must be positive, got %v MHz", c.FreqMHz)
	}

	if c.Monitor && c.Engine != EngineSim {
		return errors.New("the monitor requires the sim engine")
	}

	return nil
}

// Freq returns the core frequency.
func (c Config) Freq() sim.Freq {
	return sim.Freq(c.FreqMHz) * sim.MHz
}
