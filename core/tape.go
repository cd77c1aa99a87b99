package core

import "slices"

// Tape is the machine memory. Every address reads as zero until it is
// written; only written addresses are stored.
type Tape struct {
	cells map[int]uint8
}

// NewTape creates an empty tape.
func NewTape() *Tape {
	return &Tape{cells: make(map[int]uint8)}
}

// Read returns the cell at addr.
func (t *Tape) Read(addr int) uint8 {
	return t.cells[addr]
}

// Write stores v at addr.
func (t *Tape) Write(addr int, v uint8) {
	t.cells[addr] = v
}

// Add increments the cell at addr by d, wrapping around at 256.
func (t *Tape) Add(addr int, d uint8) {
	t.cells[addr] += d
}

// Sub decrements the cell at addr by d, wrapping around at zero.
func (t *Tape) Sub(addr int, d uint8) {
	t.cells[addr] -= d
}

// Len returns the number of materialized cells.
func (t *Tape) Len() int {
	return len(t.cells)
}

// Addresses returns the materialized addresses in ascending order.
func (t *Tape) Addresses() []int {
	addrs := make([]int, 0, len(t.cells))
	for addr := range t.cells {
		addrs = append(addrs, addr)
	}

	slices.Sort(addrs)

	return addrs
}
