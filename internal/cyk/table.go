package cyk

import (
	"github.com/dekarrin/chomsky/internal/util"
)

// Backpointer is one justification for a non-terminal being in a cell of the
// table. It is either a leaf, where the non-terminal derives a single token
// directly, or a split of the cell's span into a left part derived by Left and
// a right part derived by Right.
type Backpointer struct {
	// Leaf is whether this is a terminal justification.
	Leaf bool

	// Terminal is the token derived. Only set when Leaf is true.
	Terminal string

	// Left is the non-terminal deriving the left part of the span.
	Left string

	// Right is the non-terminal deriving the right part of the span.
	Right string

	// Split is the length index of the left part; the left part covers Split+1
	// tokens.
	Split int

	// LeftStart is the token index the left part starts at.
	LeftStart int

	// RightStart is the token index the right part starts at.
	RightStart int
}

// Cell is a single entry of the DP table. It holds every non-terminal that
// derives the cell's span, in the order they were found, along with every
// justification found for each of them.
type Cell struct {
	symbols util.OrderedSet[string]
	back    map[string][]Backpointer
}

func (c *Cell) add(nt string, bp Backpointer) {
	if c.back == nil {
		c.back = map[string][]Backpointer{}
	}
	c.symbols.Add(nt)
	c.back[nt] = append(c.back[nt], bp)
}

// Symbols returns the non-terminals in the cell in the order they were added.
// The returned slice must not be modified.
func (c *Cell) Symbols() []string {
	if c == nil {
		return nil
	}
	return c.symbols.Elements()
}

// Has returns whether nt derives the cell's span.
func (c *Cell) Has(nt string) bool {
	if c == nil {
		return false
	}
	return c.symbols.Has(nt)
}

// Len returns the number of non-terminals in the cell.
func (c *Cell) Len() int {
	if c == nil {
		return 0
	}
	return c.symbols.Len()
}

// Backpointers returns every justification recorded for nt, in the order they
// were found. The first one is the one used to build parse trees.
func (c *Cell) Backpointers(nt string) []Backpointer {
	if c == nil {
		return nil
	}
	return c.back[nt]
}

func (c *Cell) String() string {
	return c.symbols.String()
}

// Table is the DP table of a CYK run. The cell at (i, l) holds the
// non-terminals that derive the l+1 tokens starting at token i.
type Table struct {
	n     int
	cells [][]*Cell
}

func newTable(n int) Table {
	t := Table{n: n, cells: make([][]*Cell, n)}
	for i := 0; i < n; i++ {
		t.cells[i] = make([]*Cell, n-i)
		for l := range t.cells[i] {
			t.cells[i][l] = &Cell{}
		}
	}
	return t
}

// Len returns the number of tokens the table was built for.
func (t Table) Len() int {
	return t.n
}

// Cell returns the cell for the l+1 tokens starting at token i. Returns nil if
// there is no such span.
func (t Table) Cell(i, l int) *Cell {
	if i < 0 || l < 0 || i >= t.n || l >= t.n-i {
		return nil
	}
	return t.cells[i][l]
}
