package grammar

import (
	"fmt"

	"github.com/dekarrin/chomsky/internal/util"
)

// DefaultStartSymbol is the name given to the start symbol introduced by
// Normalize, if it is not already in use by the grammar.
const DefaultStartSymbol = "S0"

// CNF is a Grammar in Chomsky Normal Form: every production is either a single
// terminal or exactly two non-terminals. The start symbol never appears in the
// body of a production.
type CNF struct {
	Grammar

	// Origin is the start symbol of the grammar that was normalized. Parse
	// trees are labeled with it at the root.
	Origin string

	// Nullable is every non-terminal that derives the empty string before
	// unit productions are removed, including the new start symbol if the
	// original one is nullable. Normalize drops empty productions rather than
	// rewriting around them, so sentences that need one of these to derive ε
	// are not in the language of the CNF.
	Nullable []string
}

// Check verifies that c is in the form CYK needs. Every production must be a
// single terminal or two non-terminals which both have a rule, and the start
// symbol must have a rule. The returned error is an *InvalidCNFGrammarError if
// the check fails.
func (c CNF) Check() error {
	start := c.StartSymbol()
	if !c.HasRule(start) {
		return &InvalidCNFGrammarError{NonTerminal: start, Reason: "start symbol has no rule"}
	}

	for _, r := range c.rules {
		for _, p := range r.Productions {
			switch {
			case len(p) == 0:
				return &InvalidCNFGrammarError{NonTerminal: r.NonTerminal, Production: p, Reason: "empty production"}
			case len(p) > 2:
				return &InvalidCNFGrammarError{NonTerminal: r.NonTerminal, Production: p, Reason: "production has more than two symbols"}
			case p.IsUnit():
				return &InvalidCNFGrammarError{NonTerminal: r.NonTerminal, Production: p, Reason: "unit production"}
			case len(p) == 2:
				for _, sym := range p {
					if sym.Terminal {
						return &InvalidCNFGrammarError{NonTerminal: r.NonTerminal, Production: p, Reason: fmt.Sprintf("terminal %q in binary production", sym.Name)}
					}
					if !c.HasRule(sym.Name) {
						return &InvalidCNFGrammarError{NonTerminal: r.NonTerminal, Production: p, Reason: fmt.Sprintf("non-terminal %q has no rule", sym.Name)}
					}
				}
			}
		}
	}

	return nil
}

// Copy returns a deep copy of c.
func (c CNF) Copy() CNF {
	cp := CNF{
		Grammar: c.Grammar.Copy(),
		Origin:  c.Origin,
	}
	if c.Nullable != nil {
		cp.Nullable = make([]string, len(c.Nullable))
		copy(cp.Nullable, c.Nullable)
	}
	return cp
}

// Equal returns whether o is a CNF (or pointer to one) with the same grammar,
// origin, and nullable set.
func (c CNF) Equal(o any) bool {
	other, ok := o.(CNF)
	if !ok {
		otherPtr, ok := o.(*CNF)
		if !ok || otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if c.Origin != other.Origin {
		return false
	}
	if len(c.Nullable) != len(other.Nullable) {
		return false
	}
	for i := range c.Nullable {
		if c.Nullable[i] != other.Nullable[i] {
			return false
		}
	}
	return c.Grammar.Equal(other.Grammar)
}

// Normalize converts g into Chomsky Normal Form. g itself is not modified.
//
// The conversion runs these steps in order:
//
//  1. A new start symbol S0 is added with the single production S0 -> S, where
//     S is the old start symbol.
//  2. The nullable non-terminals are found. They are reported in the Nullable
//     field of the result; no productions are rewritten for them.
//  3. Unit productions are removed. Each non-terminal takes every non-unit
//     production of every non-terminal it reaches through unit productions.
//     Empty productions are dropped.
//  4. Terminals in productions of two or more symbols are replaced with a new
//     non-terminal that derives only that terminal.
//  5. Productions longer than two symbols are split into a right-branching
//     chain of new non-terminals.
//
// New non-terminals are named X1, X2, and so on, skipping any name already in
// use. If S0 is already in use, the new start symbol is given one of these
// names as well.
//
// If g refers to a non-terminal that has no rule, or if its start symbol has
// no rule, a *MalformedGrammarError is returned.
func Normalize(g Grammar) (CNF, error) {
	if err := g.Validate(); err != nil {
		return CNF{}, err
	}

	n := newNormalizer(g)
	n.isolateStart()
	nullable := n.work.Nullables()
	n.removeUnitProductions()
	n.isolateTerminals()
	n.binarize()

	return CNF{
		Grammar:  n.work,
		Origin:   n.origin,
		Nullable: nullable,
	}, nil
}

// MustNormalize is like Normalize but panics if g cannot be normalized.
func MustNormalize(g Grammar) CNF {
	c, err := Normalize(g)
	if err != nil {
		panic(err.Error())
	}
	return c
}

// normalizer holds the state of a single normalization run. Each run owns its
// own fresh-variable counter.
type normalizer struct {
	work   Grammar
	origin string
	fresh  *freshVars
}

func newNormalizer(g Grammar) *normalizer {
	return &normalizer{
		work:   g.Copy(),
		origin: g.StartSymbol(),
		fresh:  newFreshVars(g),
	}
}

func (n *normalizer) isolateStart() {
	newStart := DefaultStartSymbol
	if n.fresh.taken(newStart) {
		newStart = n.fresh.next()
	} else {
		n.fresh.reserve(newStart)
	}

	var g Grammar
	g.Start = newStart
	g.AddRule(newStart, Production{NT(n.origin)})
	for _, r := range n.work.rules {
		g.AddNonTerminal(r.NonTerminal)
		for _, p := range r.Productions {
			g.AddRule(r.NonTerminal, p)
		}
	}
	n.work = g
}

func (n *normalizer) removeUnitProductions() {
	var g Grammar
	g.Start = n.work.Start

	for _, r := range n.work.rules {
		g.AddNonTerminal(r.NonTerminal)

		closure := n.unitClosure(r.NonTerminal)
		for _, b := range closure.Elements() {
			for _, p := range n.work.rules[n.work.rulesByNT[b]].Productions {
				if len(p) == 0 || p.IsUnit() {
					continue
				}
				g.AddRule(r.NonTerminal, p)
			}
		}
	}

	n.work = g
}

// unitClosure gives every non-terminal reachable from nt through unit
// productions alone, starting with nt itself, in the order they are reached.
func (n *normalizer) unitClosure(nt string) *util.OrderedSet[string] {
	closure := util.OrderedSetOf(nt)
	for i := 0; i < closure.Len(); i++ {
		cur := closure.Elements()[i]
		for _, p := range n.work.rules[n.work.rulesByNT[cur]].Productions {
			if p.IsUnit() {
				closure.Add(p[0].Name)
			}
		}
	}
	return closure
}

func (n *normalizer) isolateTerminals() {
	var g Grammar
	g.Start = n.work.Start

	termVars := map[string]string{}
	var termOrder []string

	for _, r := range n.work.rules {
		g.AddNonTerminal(r.NonTerminal)
		for _, p := range r.Productions {
			if len(p) < 2 {
				g.AddRule(r.NonTerminal, p)
				continue
			}

			newProd := make(Production, len(p))
			for i, sym := range p {
				if !sym.Terminal {
					newProd[i] = sym
					continue
				}
				v, ok := termVars[sym.Name]
				if !ok {
					v = n.fresh.next()
					termVars[sym.Name] = v
					termOrder = append(termOrder, sym.Name)
				}
				newProd[i] = NT(v)
			}
			g.AddRule(r.NonTerminal, newProd)
		}
	}

	for _, term := range termOrder {
		g.AddRule(termVars[term], Production{T(term)})
	}

	n.work = g
}

func (n *normalizer) binarize() {
	var g Grammar
	g.Start = n.work.Start

	type chainLink struct {
		nt   string
		prod Production
	}
	var chains []chainLink

	for _, r := range n.work.rules {
		g.AddNonTerminal(r.NonTerminal)
		for _, p := range r.Productions {
			if len(p) <= 2 {
				g.AddRule(r.NonTerminal, p)
				continue
			}

			cur := r.NonTerminal
			for i := 0; i < len(p)-2; i++ {
				v := n.fresh.next()
				link := Production{p[i], NT(v)}
				if i == 0 {
					g.AddRule(cur, link)
				} else {
					chains = append(chains, chainLink{nt: cur, prod: link})
				}
				cur = v
			}
			chains = append(chains, chainLink{nt: cur, prod: Production{p[len(p)-2], p[len(p)-1]}})
		}
	}

	for _, link := range chains {
		g.AddRule(link.nt, link.prod)
	}

	n.work = g
}

// freshVars hands out new non-terminal names of the form X<n> that do not
// collide with any symbol name already in the grammar or already handed out.
type freshVars struct {
	counter int
	used    util.KeySet[string]
}

func newFreshVars(g Grammar) *freshVars {
	fv := &freshVars{used: util.NewKeySet[string]()}
	for _, r := range g.rules {
		fv.used.Add(r.NonTerminal)
		for _, p := range r.Productions {
			for _, sym := range p {
				fv.used.Add(sym.Name)
			}
		}
	}
	return fv
}

func (fv *freshVars) taken(name string) bool {
	return fv.used.Has(name)
}

func (fv *freshVars) reserve(name string) {
	fv.used.Add(name)
}

func (fv *freshVars) next() string {
	for {
		fv.counter++
		name := fmt.Sprintf("X%d", fv.counter)
		if !fv.used.Has(name) {
			fv.used.Add(name)
			return name
		}
	}
}
