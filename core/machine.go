package core

import (
	"io"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/bfsim/program"
)

// Machine executes a compiled program against an input and an output
// stream. A Machine is used for a single run and is not safe for concurrent
// use.
type Machine struct {
	*sim.HookableBase

	state coreState
	emu   instEmulator
}

// NewMachine creates a machine at its initial state: pc 0, pointer 0 and an
// empty tape.
func NewMachine(prog program.Program, in io.Reader, out io.Writer) *Machine {
	return &Machine{
		HookableBase: sim.NewHookableBase(),
		state: coreState{
			Tape: NewTape(),
			Code: prog.Insts,
		},
		emu: instEmulator{in: in, out: out},
	}
}

// PC returns the index of the next instruction.
func (m *Machine) PC() int {
	return m.state.PC
}

// Pos returns the tape address under the pointer.
func (m *Machine) Pos() int {
	return m.state.Pos
}

// Tape returns the machine memory.
func (m *Machine) Tape() *Tape {
	return m.state.Tape
}

// Steps returns the number of instructions executed so far.
func (m *Machine) Steps() uint64 {
	return m.state.Steps
}

// Halted reports whether the program counter ran past the last instruction.
func (m *Machine) Halted() bool {
	return m.state.halted()
}

// Step executes a single instruction. It reports whether the machine has
// halted after the step. A failed step leaves the machine at the failing
// instruction.
func (m *Machine) Step() (halted bool, err error) {
	if m.state.halted() {
		return true, nil
	}

	pc := m.state.PC
	inst := m.state.Code[pc]

	if err := m.emu.RunInst(inst, &m.state); err != nil {
		m.invokeHalt(err)
		return false, err
	}

	m.state.Steps++

	if m.NumHooks() > 0 {
		m.InvokeHook(sim.HookCtx{
			Domain: m,
			Pos:    HookPosInstExec,
			Item: ExecRecord{
				PC:   pc,
				Inst: inst,
				Pos:  m.state.Pos,
				Cell: m.state.Tape.Read(m.state.Pos),
			},
		})
	}

	if m.state.halted() {
		m.invokeHalt(nil)
		return true, nil
	}

	return false, nil
}

// Run steps the machine until it halts or an instruction fails.
func (m *Machine) Run() error {
	for {
		halted, err := m.Step()
		if err != nil {
			return err
		}

		if halted {
			return nil
		}
	}
}

func (m *Machine) invokeHalt(err error) {
	if m.NumHooks() == 0 {
		return
	}

	m.InvokeHook(sim.HookCtx{
		Domain: m,
		Pos:    HookPosHalt,
		Item: HaltRecord{
			PC:    m.state.PC,
			Steps: m.state.Steps,
			Err:   err,
		},
	})
}
