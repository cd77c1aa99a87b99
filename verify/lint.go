package verify

import (
	"slices"

	"github.com/sarchlab/bfsim/program"
)

// RunLint performs static checks on source text.
// STRUCT issues are reported for every unmatched bracket. REDUNDANT issues
// are reported for adjacent instructions that undo each other, ignoring the
// comment characters between them.
// Returns the issues ordered by their position in the source.
func RunLint(src string) []Issue {
	var (
		issues []Issue
		opens  []position
		prev   *symbolAt
	)

	pos := position{line: 1, col: 1}

	for offset, r := range src {
		pos.offset = offset

		op, ok := program.Lookup(r)
		if ok {
			switch op {
			case program.OpLoopStart:
				opens = append(opens, pos)
			case program.OpLoopEnd:
				if len(opens) == 0 {
					issues = append(issues, pos.issue(IssueStruct,
						"unmatched closing bracket"))
				} else {
					opens = opens[:len(opens)-1]
				}
			}

			if prev != nil && undoes(prev.op, op) {
				issues = append(issues, prev.pos.issue(IssueRedundant,
					"%q followed by %q has no effect",
					prev.op.Symbol(), op.Symbol()))
				prev = nil
			} else {
				prev = &symbolAt{op: op, pos: pos}
			}
		}

		if r == '\n' {
			pos.line++
			pos.col = 1
		} else {
			pos.col++
		}
	}

	for _, open := range opens {
		issues = append(issues, open.issue(IssueStruct,
			"unmatched opening bracket"))
	}

	slices.SortStableFunc(issues, func(a, b Issue) int {
		return a.Offset - b.Offset
	})

	return issues
}

type symbolAt struct {
	op  program.Opcode
	pos position
}

func undoes(a, b program.Opcode) bool {
	op, ok := program.Opposite(a)
	return ok && op == b
}
