package core

import (
	"io"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/bfsim/program"
)

// Core runs a machine on an akita engine, one instruction per cycle.
type Core struct {
	*sim.TickingComponent

	in    io.Reader
	out   io.Writer
	hooks []sim.Hook

	machine *Machine
	err     error
}

// AcceptInstHook registers a hook on the machines this core runs. Hooks
// registered after MapProgram are attached to the current machine as well.
func (c *Core) AcceptInstHook(hook sim.Hook) {
	c.hooks = append(c.hooks, hook)

	if c.machine != nil {
		c.machine.AcceptHook(hook)
	}
}

// MapProgram sets the program that the core needs to run and schedules the
// first tick.
func (c *Core) MapProgram(prog program.Program) {
	c.machine = NewMachine(prog, c.in, c.out)
	c.err = nil

	for _, h := range c.hooks {
		c.machine.AcceptHook(h)
	}

	Trace("MapProgram",
		"Core", c.Name(),
		"Insts", prog.Len(),
	)

	c.TickLater()
}

// Tick runs one instruction.
func (c *Core) Tick() (madeProgress bool) {
	if c.machine == nil || c.err != nil || c.machine.Halted() {
		return false
	}

	halted, err := c.machine.Step()
	if err != nil {
		c.err = err
		Trace("Core",
			"Behavior", "Fault",
			"Time", float64(c.Engine.CurrentTime()*1e9),
			"PC", c.machine.PC(),
			"Error", err.Error(),
		)
		return false
	}

	return !halted
}

// Machine returns the machine mapped by the last MapProgram.
func (c *Core) Machine() *Machine {
	return c.machine
}

// Err returns the error that stopped the machine, if any.
func (c *Core) Err() error {
	return c.err
}
