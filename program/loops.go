package program

import (
	"errors"
	"fmt"
)

var (
	// ErrUnmatchedOpen is returned when a loop is never closed.
	ErrUnmatchedOpen = errors.New("unmatched opening bracket(s)")

	// ErrUnmatchedClose is returned for a loop end without a loop start.
	ErrUnmatchedClose = errors.New("unmatched closing bracket")
)

// ResolveLoops pairs every loop start with its loop end in place. A loop
// start's target becomes the index of its loop end and the other way round.
func ResolveLoops(insts []Instruction) error {
	var starts []int

	for i := range insts {
		switch insts[i].Opcode {
		case OpLoopStart:
			starts = append(starts, i)
		case OpLoopEnd:
			if len(starts) == 0 {
				return fmt.Errorf("%w at instruction %d", ErrUnmatchedClose, i)
			}

			start := starts[len(starts)-1]
			starts = starts[:len(starts)-1]

			insts[start] = Instruction{Opcode: OpLoopStart, Target: i}
			insts[i] = Instruction{Opcode: OpLoopEnd, Target: start}
		}
	}

	if len(starts) > 0 {
		return fmt.Errorf("%w: %d left open, first at instruction %d",
			ErrUnmatchedOpen, len(starts), starts[0])
	}

	return nil
}

// MaxLoopDepth returns the deepest bracket nesting in the instructions.
// Unbalanced brackets are counted as they appear.
func MaxLoopDepth(insts []Instruction) int {
	depth, maxDepth := 0, 0

	for _, inst := range insts {
		switch inst.Opcode {
		case OpLoopStart:
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		case OpLoopEnd:
			if depth > 0 {
				depth--
			}
		}
	}

	return maxDepth
}
