package program

import (
	"fmt"
	"strings"
)

// Preprocess drops every character that is not an instruction symbol. The
// order of the kept symbols is preserved.
func Preprocess(src string) string {
	var sb strings.Builder
	sb.Grow(len(src))

	for _, r := range src {
		if defaultISA.IsSymbol(r) {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

// Tokenize converts a preprocessed string into instructions, one per symbol.
// Brackets carry the Unresolved target until ResolveLoops runs. The input
// must only contain instruction symbols; anything else is a caller bug and
// panics.
func Tokenize(src string) []Instruction {
	insts := make([]Instruction, 0, len(src))

	for _, r := range src {
		op, ok := defaultISA.Lookup(r)
		if !ok {
			panic(fmt.Sprintf("trying to tokenize invalid character: %q", r))
		}

		insts = append(insts, Unit(op))
	}

	return insts
}
