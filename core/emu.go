package core

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/sarchlab/bfsim/program"
)

var (
	// ErrPointerOverflow is returned when moving the pointer right past the
	// largest address.
	ErrPointerOverflow = errors.New("pointer overflow")

	// ErrPointerUnderflow is returned when moving the pointer left past the
	// smallest address.
	ErrPointerUnderflow = errors.New("pointer underflow")

	// ErrPCOverflow is returned when the program counter cannot advance.
	ErrPCOverflow = errors.New("program counter overflow")

	// ErrOutput wraps failures of the output sink.
	ErrOutput = errors.New("output failed")

	// ErrInput wraps failures of the input source other than end of stream.
	ErrInput = errors.New("input failed")
)

type coreState struct {
	PC    int
	Pos   int
	Tape  *Tape
	Code  []program.Instruction
	Steps uint64
}

func (s *coreState) halted() bool {
	return s.PC >= len(s.Code)
}

type instEmulator struct {
	in  io.Reader
	out io.Writer
	buf [1]byte
}

// RunInst executes one instruction and moves the program counter.
func (i *instEmulator) RunInst(inst program.Instruction, state *coreState) error {
	var err error

	switch inst.Opcode {
	case program.OpIncPtr:
		err = i.runIncPtr(inst, state)
	case program.OpDecPtr:
		err = i.runDecPtr(inst, state)
	case program.OpIncVal:
		state.Tape.Add(state.Pos, inst.Delta)
	case program.OpDecVal:
		state.Tape.Sub(state.Pos, inst.Delta)
	case program.OpPutChar:
		err = i.runPutChar(state)
	case program.OpGetChar:
		err = i.runGetChar(state)
	case program.OpLoopStart:
		i.runLoopStart(inst, state)
	case program.OpLoopEnd:
		// The loop start re-tests the cell, so the PC is not advanced.
		state.PC = inst.Target
		return nil
	default:
		panic(fmt.Sprintf("unknown instruction '%s' at PC %d", inst.Opcode, state.PC))
	}

	if err != nil {
		return err
	}

	return i.advancePC(state)
}

func (i *instEmulator) runIncPtr(inst program.Instruction, state *coreState) error {
	pos := state.Pos + inst.Shift
	if (pos > state.Pos) != (inst.Shift > 0) {
		return fmt.Errorf("%w at pc %d", ErrPointerOverflow, state.PC)
	}

	state.Pos = pos

	return nil
}

func (i *instEmulator) runDecPtr(inst program.Instruction, state *coreState) error {
	pos := state.Pos - inst.Shift
	if (pos < state.Pos) != (inst.Shift > 0) {
		return fmt.Errorf("%w at pc %d", ErrPointerUnderflow, state.PC)
	}

	state.Pos = pos

	return nil
}

func (i *instEmulator) runPutChar(state *coreState) error {
	i.buf[0] = state.Tape.Read(state.Pos)

	if _, err := i.out.Write(i.buf[:]); err != nil {
		return fmt.Errorf("%w at pc %d: %w", ErrOutput, state.PC, err)
	}

	return nil
}

// runGetChar reads one byte into the current cell. End of input leaves the
// cell unchanged. A source that flushes pending output before reading may
// fail with ErrOutput; that error stays an output failure.
func (i *instEmulator) runGetChar(state *coreState) error {
	_, err := io.ReadFull(i.in, i.buf[:])

	switch {
	case err == nil:
		state.Tape.Write(state.Pos, i.buf[0])
	case errors.Is(err, io.EOF):
		// keep the cell
	case errors.Is(err, ErrOutput):
		return fmt.Errorf("%w (flushed at pc %d)", err, state.PC)
	default:
		return fmt.Errorf("%w at pc %d: %w", ErrInput, state.PC, err)
	}

	return nil
}

func (i *instEmulator) runLoopStart(inst program.Instruction, state *coreState) {
	if state.Tape.Read(state.Pos) == 0 {
		state.PC = inst.Target
	}
}

func (i *instEmulator) advancePC(state *coreState) error {
	if state.PC == math.MaxInt {
		return ErrPCOverflow
	}

	state.PC++

	return nil
}
