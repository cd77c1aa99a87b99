package config

import (
	"io"

	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/bfsim/core"
)

// Platform is a simulated machine: an engine and the core it drives.
type Platform struct {
	Engine  sim.Engine
	Core    *core.Core
	Monitor *monitoring.Monitor
}

// PlatformBuilder can build simulated platforms.
type PlatformBuilder struct {
	engine  sim.Engine
	freq    sim.Freq
	monitor *monitoring.Monitor
	input   io.Reader
	output  io.Writer
}

// WithEngine sets the engine that drives the platform. A serial engine is
// created when none is given.
func (b PlatformBuilder) WithEngine(engine sim.Engine) PlatformBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the core.
func (b PlatformBuilder) WithFreq(freq sim.Freq) PlatformBuilder {
	b.freq = freq
	return b
}

// WithMonitor registers the engine and the core with the monitor.
func (b PlatformBuilder) WithMonitor(monitor *monitoring.Monitor) PlatformBuilder {
	b.monitor = monitor
	return b
}

// WithInput sets the input of the core.
func (b PlatformBuilder) WithInput(in io.Reader) PlatformBuilder {
	b.input = in
	return b
}

// WithOutput sets the output of the core.
func (b PlatformBuilder) WithOutput(out io.Writer) PlatformBuilder {
	b.output = out
	return b
}

// Build creates the platform.
func (b PlatformBuilder) Build(name string) *Platform {
	engine := b.engine
	if engine == nil {
		engine = sim.NewSerialEngine()
	}

	cb := core.NewBuilder().WithEngine(engine)
	if b.freq > 0 {
		cb = cb.WithFreq(b.freq)
	}
	if b.input != nil {
		cb = cb.WithInput(b.input)
	}
	if b.output != nil {
		cb = cb.WithOutput(b.output)
	}

	p := &Platform{
		Engine:  engine,
		Core:    cb.Build(name + ".Core"),
		Monitor: b.monitor,
	}

	if b.monitor != nil {
		b.monitor.RegisterEngine(engine)
		b.monitor.RegisterComponent(p.Core)
	}

	return p
}
