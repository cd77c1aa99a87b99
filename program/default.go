package program

import "fmt"

// Opcode identifies one of the eight tape machine instructions.
type Opcode uint8

const (
	OpIncPtr Opcode = iota
	OpDecPtr
	OpIncVal
	OpDecVal
	OpPutChar
	OpGetChar
	OpLoopStart
	OpLoopEnd
)

// Unresolved is the loop target carried by brackets before ResolveLoops runs.
const Unresolved = -1

var opcodeInfo = [...]struct {
	name   string
	symbol rune
}{
	OpIncPtr:    {"INCPTR", '>'},
	OpDecPtr:    {"DECPTR", '<'},
	OpIncVal:    {"INCVAL", '+'},
	OpDecVal:    {"DECVAL", '-'},
	OpPutChar:   {"PUTC", '.'},
	OpGetChar:   {"GETC", ','},
	OpLoopStart: {"LOOPSTART", '['},
	OpLoopEnd:   {"LOOPEND", ']'},
}

// NumOpcodes is the size of the instruction set.
const NumOpcodes = len(opcodeInfo)

func (o Opcode) String() string {
	if int(o) < len(opcodeInfo) {
		return opcodeInfo[o].name
	}
	return fmt.Sprintf("Opcode(%d)", uint8(o))
}

// Symbol returns the source character that encodes the opcode.
func (o Opcode) Symbol() rune {
	if int(o) < len(opcodeInfo) {
		return opcodeInfo[o].symbol
	}
	return '?'
}

// Instruction is a single decoded instruction. Only the field matching the
// opcode is meaningful: Shift for pointer moves, Delta for cell adjustments,
// Target for brackets.
type Instruction struct {
	Opcode Opcode
	Shift  int
	Delta  uint8
	Target int
}

// Unit returns the single-step form of op as produced by the tokenizer.
func Unit(op Opcode) Instruction {
	switch op {
	case OpIncPtr, OpDecPtr:
		return Instruction{Opcode: op, Shift: 1}
	case OpIncVal, OpDecVal:
		return Instruction{Opcode: op, Delta: 1}
	case OpLoopStart, OpLoopEnd:
		return Instruction{Opcode: op, Target: Unresolved}
	default:
		return Instruction{Opcode: op}
	}
}

// IsUnit reports whether the instruction moves or adjusts by exactly one.
func (i Instruction) IsUnit() bool {
	switch i.Opcode {
	case OpIncPtr, OpDecPtr:
		return i.Shift == 1
	case OpIncVal, OpDecVal:
		return i.Delta == 1
	default:
		return false
	}
}

// HasAmount reports whether the opcode carries an amount that the
// optimizer can merge.
func (i Instruction) HasAmount() bool {
	switch i.Opcode {
	case OpIncPtr, OpDecPtr, OpIncVal, OpDecVal:
		return true
	default:
		return false
	}
}

func (i Instruction) String() string {
	switch i.Opcode {
	case OpIncPtr, OpDecPtr:
		return fmt.Sprintf("%s %d", i.Opcode, i.Shift)
	case OpIncVal, OpDecVal:
		return fmt.Sprintf("%s %d", i.Opcode, i.Delta)
	case OpLoopStart, OpLoopEnd:
		return fmt.Sprintf("%s @%d", i.Opcode, i.Target)
	default:
		return i.Opcode.String()
	}
}

func newDefaultISA() *ISA {
	isa := NewISA("bf")
	for op := Opcode(0); int(op) < NumOpcodes; op++ {
		isa.registerNewInst(op.Symbol(), op)
	}
	return isa
}
