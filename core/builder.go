package core

import (
	"io"
	"strings"

	"github.com/sarchlab/akita/v4/sim"
)

// Builder can create new cores.
type Builder struct {
	engine sim.Engine
	freq   sim.Freq
	input  io.Reader
	output io.Writer
}

// NewBuilder returns a builder with a 1 GHz clock, an empty input and a
// discarded output.
func NewBuilder() Builder {
	return Builder{
		freq:   1 * sim.GHz,
		input:  strings.NewReader(""),
		output: io.Discard,
	}
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the core.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	if freq <= 0 {
		panic("frequency must be positive")
	}
	b.freq = freq
	return b
}

// WithInput sets where input instructions read from.
func (b Builder) WithInput(in io.Reader) Builder {
	b.input = in
	return b
}

// WithOutput sets where output instructions write to.
func (b Builder) WithOutput(out io.Writer) Builder {
	b.output = out
	return b
}

// Build creates a core.
func (b Builder) Build(name string) *Core {
	if b.engine == nil {
		panic("core builder requires an engine")
	}

	c := &Core{
		in:  b.input,
		out: b.output,
	}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)

	return c
}
