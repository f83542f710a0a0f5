// Package cyk recognizes sentences of a grammar in Chomsky Normal Form with the
// Cocke-Younger-Kasami algorithm and builds parse trees from the resulting
// table.
package cyk

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/dekarrin/chomsky/internal/grammar"
)

// Result is the outcome of running a Parser on a sequence of tokens.
type Result struct {
	// Accepted is whether the tokens are a sentence of the grammar.
	Accepted bool

	// Elapsed is the time taken to fill the table.
	Elapsed time.Duration

	// Tokens is the sequence of tokens that was parsed.
	Tokens []string

	// Start is the start symbol of the CNF grammar.
	Start string

	// Origin is the start symbol of the grammar before it was normalized. It is
	// the label given to the root of trees built from the Result.
	Origin string

	// Table is the filled DP table. It is empty if there were no tokens.
	Table Table
}

type symbolPair struct {
	left, right string
}

// Parser runs CYK against a single CNF grammar. Once created with New, a
// Parser is never modified and may be used by multiple goroutines at once.
type Parser struct {
	start  string
	origin string

	// lexical maps a terminal to every non-terminal that derives it, in
	// grammar order.
	lexical map[string][]string

	// binary maps a pair (B, C) to every non-terminal A with A -> B C, in
	// grammar order.
	binary map[symbolPair][]string
}

// New creates a Parser for the given grammar. If g is not in Chomsky Normal
// Form, the returned error will be an *grammar.InvalidCNFGrammarError.
func New(g grammar.CNF) (*Parser, error) {
	if err := g.Check(); err != nil {
		return nil, err
	}

	p := &Parser{
		start:   g.StartSymbol(),
		origin:  g.Origin,
		lexical: map[string][]string{},
		binary:  map[symbolPair][]string{},
	}
	if p.origin == "" {
		p.origin = p.start
	}

	for _, r := range g.Rules() {
		for _, prod := range r.Productions {
			if prod.IsLexical() {
				term := prod[0].Name
				p.lexical[term] = append(p.lexical[term], r.NonTerminal)
			} else {
				key := symbolPair{left: prod[0].Name, right: prod[1].Name}
				p.binary[key] = append(p.binary[key], r.NonTerminal)
			}
		}
	}

	return p, nil
}

// MustNew is like New but panics if g is not in Chomsky Normal Form.
func MustNew(g grammar.CNF) *Parser {
	p, err := New(g)
	if err != nil {
		panic(err.Error())
	}
	return p
}

// Parse is a convenience function that creates a Parser for g and runs it on
// tokens.
func Parse(g grammar.CNF, tokens []string) (Result, error) {
	p, err := New(g)
	if err != nil {
		return Result{}, fmt.Errorf("create parser: %w", err)
	}
	return p.Parse(tokens), nil
}

// Start returns the start symbol of the grammar the parser was built for.
func (p *Parser) Start() string {
	return p.start
}

// Knows returns whether the grammar has any non-terminal that derives the
// given token.
func (p *Parser) Knows(token string) bool {
	return len(p.lexical[token]) > 0
}

// Parse fills the CYK table for tokens one cell at a time and reports whether
// the tokens are a sentence of the grammar. An empty sequence of tokens is
// never accepted.
func (p *Parser) Parse(tokens []string) Result {
	return p.run(tokens, 1)
}

// ParseParallel is like Parse, but the cells that cover spans of the same
// length are filled concurrently. All cells for one span length are complete
// before any cell of the next length is started. The Result is identical to
// the one Parse gives.
func (p *Parser) ParseParallel(tokens []string) Result {
	return p.run(tokens, runtime.GOMAXPROCS(0))
}

func (p *Parser) run(tokens []string, workers int) Result {
	res := Result{
		Tokens: make([]string, len(tokens)),
		Start:  p.start,
		Origin: p.origin,
	}
	copy(res.Tokens, tokens)

	n := len(tokens)
	if n == 0 {
		return res
	}

	startTime := time.Now()

	table := newTable(n)

	for i, tok := range tokens {
		cell := table.cells[i][0]
		for _, nt := range p.lexical[tok] {
			cell.add(nt, Backpointer{Leaf: true, Terminal: tok})
		}
	}

	for length := 2; length <= n; length++ {
		starts := n - length + 1
		if workers <= 1 || starts == 1 {
			for i := 0; i < starts; i++ {
				p.fillCell(table, i, length)
			}
			continue
		}

		var wg sync.WaitGroup
		count := workers
		if starts < count {
			count = starts
		}
		for w := 0; w < count; w++ {
			wg.Add(1)
			go func(first int) {
				defer wg.Done()
				for i := first; i < starts; i += count {
					p.fillCell(table, i, length)
				}
			}(w)
		}
		wg.Wait()
	}

	res.Elapsed = time.Since(startTime)
	res.Table = table
	res.Accepted = table.cells[0][n-1].Has(p.start)

	return res
}

// fillCell fills the cell for the span of the given length starting at token
// i. Every cell for shorter spans must already be filled.
func (p *Parser) fillCell(t Table, i, length int) {
	cell := t.cells[i][length-1]

	for k := 0; k < length-1; k++ {
		left := t.cells[i][k]
		right := t.cells[i+k+1][length-k-2]

		for _, b := range left.Symbols() {
			for _, c := range right.Symbols() {
				for _, a := range p.binary[symbolPair{left: b, right: c}] {
					cell.add(a, Backpointer{
						Left:       b,
						Right:      c,
						Split:      k,
						LeftStart:  i,
						RightStart: i + k + 1,
					})
				}
			}
		}
	}
}
