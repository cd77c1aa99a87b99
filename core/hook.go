package core

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/bfsim/program"
)

// HookPosInstExec marks when an instruction has been executed.
var HookPosInstExec = &sim.HookPos{Name: "Inst Exec"}

// HookPosHalt marks when the machine stops, normally or with an error.
var HookPosHalt = &sim.HookPos{Name: "Halt"}

// ExecRecord is the hook item at HookPosInstExec. Pos and Cell describe the
// state after the instruction.
type ExecRecord struct {
	PC   int
	Inst program.Instruction
	Pos  int
	Cell uint8
}

// HaltRecord is the hook item at HookPosHalt.
type HaltRecord struct {
	PC    int
	Steps uint64
	Err   error
}

// InstTracer logs every executed instruction at LevelTrace.
type InstTracer struct{}

// Func implements sim.Hook.
func (InstTracer) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case HookPosInstExec:
		rec := ctx.Item.(ExecRecord)
		Trace("Inst",
			"PC", rec.PC,
			"Inst", rec.Inst.String(),
			"Pos", rec.Pos,
			"Cell", rec.Cell,
		)
	case HookPosHalt:
		rec := ctx.Item.(HaltRecord)
		if rec.Err != nil {
			Trace("Halt", "PC", rec.PC, "Steps", rec.Steps, "Error", rec.Err.Error())
			return
		}
		Trace("Halt", "PC", rec.PC, "Steps", rec.Steps)
	}
}

// InstCounter counts executed instructions per opcode.
type InstCounter struct {
	counts [program.NumOpcodes]uint64
	amount [program.NumOpcodes]uint64
}

// NewInstCounter creates a counter with all counts at zero.
func NewInstCounter() *InstCounter {
	return &InstCounter{}
}

// Func implements sim.Hook.
func (c *InstCounter) Func(ctx sim.HookCtx) {
	if ctx.Pos != HookPosInstExec {
		return
	}

	inst := ctx.Item.(ExecRecord).Inst
	c.counts[inst.Opcode]++

	switch inst.Opcode {
	case program.OpIncPtr, program.OpDecPtr:
		c.amount[inst.Opcode] += uint64(inst.Shift)
	case program.OpIncVal, program.OpDecVal:
		c.amount[inst.Opcode] += uint64(inst.Delta)
	default:
		c.amount[inst.Opcode]++
	}
}

// Count returns how many times op was executed.
func (c *InstCounter) Count(op program.Opcode) uint64 {
	return c.counts[op]
}

// Total returns the number of executed instructions.
func (c *InstCounter) Total() uint64 {
	var total uint64
	for _, n := range c.counts {
		total += n
	}
	return total
}

// SourceSteps returns how many unoptimized source instructions the executed
// instructions stand for.
func (c *InstCounter) SourceSteps() uint64 {
	var total uint64
	for _, n := range c.amount {
		total += n
	}
	return total
}

// WriteTable renders the counts as a table.
func (c *InstCounter) WriteTable(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Executed Instructions")
	t.AppendHeader(table.Row{"Opcode", "Symbol", "Executed", "Source Steps"})

	for op := program.Opcode(0); int(op) < program.NumOpcodes; op++ {
		t.AppendRow(table.Row{
			op.String(),
			string(op.Symbol()),
			c.counts[op],
			c.amount[op],
		})
	}

	t.AppendFooter(table.Row{"Total", "", c.Total(), c.SourceSteps()})
	t.Render()
}

func (c *InstCounter) String() string {
	return fmt.Sprintf("InstCounter{total: %d}", c.Total())
}
