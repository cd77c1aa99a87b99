package program

// ISA is a struct that represents an Instruction Set Architecture.
type ISA struct {
	// name of the ISA.
	isaName string
	// map from source symbol to the opcode it encodes.
	symbolToOpcode map[rune]Opcode
}

// NewISA creates an empty ISA.
func NewISA(name string) *ISA {
	return &ISA{
		isaName:        name,
		symbolToOpcode: make(map[rune]Opcode),
	}
}

// Register a new instruction to the ISA.
func (isa *ISA) registerNewInst(symbol rune, op Opcode) {
	isa.symbolToOpcode[symbol] = op
}

// Name returns the name of the ISA.
func (isa *ISA) Name() string {
	return isa.isaName
}

// Lookup returns the opcode encoded by a source symbol.
func (isa *ISA) Lookup(symbol rune) (Opcode, bool) {
	op, ok := isa.symbolToOpcode[symbol]
	return op, ok
}

// IsSymbol reports whether r is one of the instruction symbols.
func (isa *ISA) IsSymbol(r rune) bool {
	_, ok := isa.symbolToOpcode[r]
	return ok
}

// Symbols returns the number of registered symbols.
func (isa *ISA) Symbols() int {
	return len(isa.symbolToOpcode)
}

var defaultISA = newDefaultISA()

// DefaultISA returns the eight-symbol tape machine ISA.
func DefaultISA() *ISA {
	return defaultISA
}

// Lookup resolves a symbol in the default ISA.
func Lookup(symbol rune) (Opcode, bool) {
	return defaultISA.Lookup(symbol)
}
