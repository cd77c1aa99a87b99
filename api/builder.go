package api

import (
	"io"
	"strings"

	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/bfsim/config"
	"github.com/sarchlab/bfsim/core"
)

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	cfg    *config.Config
	engine sim.Engine
	input  io.Reader
	output io.Writer
}

// WithConfig sets the run profile. The default profile is used otherwise.
func (b DriverBuilder) WithConfig(cfg config.Config) DriverBuilder {
	b.cfg = &cfg
	return b
}

// WithEngine sets the engine used by the sim engine kind.
func (b DriverBuilder) WithEngine(engine sim.Engine) DriverBuilder {
	b.engine = engine
	return b
}

// WithInput sets the program input.
func (b DriverBuilder) WithInput(in io.Reader) DriverBuilder {
	b.input = in
	return b
}

// WithOutput sets the program output.
func (b DriverBuilder) WithOutput(out io.Writer) DriverBuilder {
	b.output = out
	return b
}

// Build creates a driver.
func (b DriverBuilder) Build(name string) Driver {
	cfg := config.Default()
	if b.cfg != nil {
		cfg = *b.cfg
	}

	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	d := &driverImpl{
		name: name,
		cfg:  cfg,
		in:   b.input,
		out:  b.output,
	}

	if d.in == nil {
		d.in = strings.NewReader("")
	}
	if d.out == nil {
		d.out = io.Discard
	}

	if cfg.Stats {
		d.counter = core.NewInstCounter()
	}

	if cfg.Engine == config.EngineSim {
		pb := config.PlatformBuilder{}.
			WithEngine(b.engine).
			WithFreq(cfg.Freq()).
			WithInput(d.in).
			WithOutput(d.out)

		if cfg.Monitor {
			pb = pb.WithMonitor(monitoring.NewMonitor())
		}

		d.platform = pb.Build(name)

		if d.platform.Monitor != nil {
			d.platform.Monitor.StartServer()
		}

		for _, h := range d.hooks() {
			d.platform.Core.AcceptInstHook(h)
		}
	}

	return d
}
