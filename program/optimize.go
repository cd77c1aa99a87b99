package program

// Opposite returns the opcode that undoes op, if there is one.
func Opposite(op Opcode) (Opcode, bool) {
	switch op {
	case OpIncPtr:
		return OpDecPtr, true
	case OpDecPtr:
		return OpIncPtr, true
	case OpIncVal:
		return OpDecVal, true
	case OpDecVal:
		return OpIncVal, true
	default:
		return 0, false
	}
}

// RemoveCancellingPairs removes adjacent unit instructions that undo each
// other, such as "+-" or "<>". Removing a pair can make its neighbours
// adjacent, so "+<>-" disappears entirely. The result has no cancelling
// pair left. Pointer and cell pairs are reduced in the same scan, so
// ">+-<" disappears as well. Only unit amounts are considered, so this must
// run before CoalesceSequences.
func RemoveCancellingPairs(insts []Instruction) []Instruction {
	out := make([]Instruction, 0, len(insts))

	for _, inst := range insts {
		if n := len(out); n > 0 && cancels(out[n-1], inst) {
			out = out[:n-1]
			continue
		}

		out = append(out, inst)
	}

	return out
}

func cancels(a, b Instruction) bool {
	if !a.IsUnit() || !b.IsUnit() {
		return false
	}

	op, ok := Opposite(a.Opcode)

	return ok && op == b.Opcode
}

// CoalesceSequences merges runs of identical pointer moves or cell
// adjustments into a single instruction carrying the summed amount. Cell
// amounts wrap modulo 256. Input, output and loop instructions are never
// merged.
func CoalesceSequences(insts []Instruction) []Instruction {
	out := make([]Instruction, 0, len(insts))

	for i, inst := range insts {
		if i > 0 && inst.HasAmount() && inst == insts[i-1] {
			head := &out[len(out)-1]
			head.Shift += inst.Shift
			head.Delta += inst.Delta
			continue
		}

		out = append(out, inst)
	}

	return out
}

// Optimize runs the peephole passes in their required order.
func Optimize(insts []Instruction) []Instruction {
	return CoalesceSequences(RemoveCancellingPairs(insts))
}
