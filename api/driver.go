// Package api defines the driver that compiles and runs tape machine
// programs.
package api

import (
	"errors"
	"io"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/bfsim/config"
	"github.com/sarchlab/bfsim/core"
	"github.com/sarchlab/bfsim/program"
)

// ErrNoProgram is returned by Run before a program has been mapped.
var ErrNoProgram = errors.New("no program mapped")

// Driver provides the interface to run a program.
type Driver interface {
	// MapProgram compiles the source text and prepares a fresh machine for
	// it. Compilation errors, such as unbalanced brackets, are returned
	// before anything runs.
	MapProgram(src string) error

	// Run executes the mapped program until it halts or fails.
	Run() error

	// Program returns the compiled program.
	Program() program.Program

	// Machine returns the machine of the mapped program. Its tape and
	// pointer remain readable after Run returns.
	Machine() *core.Machine

	// Counter returns the executed instruction counter, or nil when
	// statistics are disabled.
	Counter() *core.InstCounter

	// SimTime returns the simulated time spent so far. It is always zero
	// for the direct engine.
	SimTime() sim.VTimeInSec
}

type driverImpl struct {
	name string
	cfg  config.Config
	in   io.Reader
	out  io.Writer

	platform *config.Platform
	counter  *core.InstCounter

	prog    program.Program
	machine *core.Machine
	mapped  bool
}

func (d *driverImpl) hooks() []sim.Hook {
	var hooks []sim.Hook

	if d.cfg.Trace {
		hooks = append(hooks, core.InstTracer{})
	}

	if d.counter != nil {
		hooks = append(hooks, d.counter)
	}

	return hooks
}

// MapProgram compiles src and maps it.
func (d *driverImpl) MapProgram(src string) error {
	prog, err := program.Compile(src, program.CompileOptions{
		Optimize: d.cfg.Optimize,
	})
	if err != nil {
		return err
	}

	d.prog = prog
	d.mapped = true

	if d.platform != nil {
		d.platform.Core.MapProgram(prog)
		d.machine = d.platform.Core.Machine()
		return nil
	}

	d.machine = core.NewMachine(prog, d.in, d.out)
	for _, h := range d.hooks() {
		d.machine.AcceptHook(h)
	}

	return nil
}

// Run runs the mapped program.
func (d *driverImpl) Run() error {
	if !d.mapped {
		return ErrNoProgram
	}

	core.Trace("Driver",
		"Behavior", "Run",
		"Name", d.name,
		"Engine", string(d.cfg.Engine),
		"Insts", d.prog.Len(),
	)

	if d.platform == nil {
		return d.machine.Run()
	}

	if err := d.platform.Engine.Run(); err != nil {
		return err
	}

	return d.platform.Core.Err()
}

func (d *driverImpl) Program() program.Program {
	return d.prog
}

func (d *driverImpl) Machine() *core.Machine {
	return d.machine
}

func (d *driverImpl) Counter() *core.InstCounter {
	return d.counter
}

func (d *driverImpl) SimTime() sim.VTimeInSec {
	if d.platform == nil {
		return 0
	}

	return d.platform.Engine.CurrentTime()
}
