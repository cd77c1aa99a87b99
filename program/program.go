// Package program turns tape machine source text into executable
// instructions.
package program

// Program is a compiled, loop-resolved instruction sequence.
type Program struct {
	Insts []Instruction

	// SymbolCount is the number of instruction symbols in the source, before
	// optimization.
	SymbolCount int
}

// Len returns the number of instructions.
func (p Program) Len() int {
	return len(p.Insts)
}

// CompileOptions controls the compilation pipeline.
type CompileOptions struct {
	Optimize bool
}

// DefaultCompileOptions enables the optimizer.
func DefaultCompileOptions() CompileOptions {
	return CompileOptions{Optimize: true}
}

// Compile preprocesses, tokenizes, optimizes and resolves src. Loop targets
// are resolved last because the optimizer shifts instruction indices.
func Compile(src string, opts CompileOptions) (Program, error) {
	symbols := Preprocess(src)
	insts := Tokenize(symbols)

	if opts.Optimize {
		insts = Optimize(insts)
	}

	if err := ResolveLoops(insts); err != nil {
		return Program{}, err
	}

	return Program{Insts: insts, SymbolCount: len(symbols)}, nil
}
