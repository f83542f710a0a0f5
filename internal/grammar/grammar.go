// Package grammar holds the context-free grammar model along with the
// normalizer that converts a Grammar into Chomsky Normal Form.
package grammar

import (
	"strings"

	"github.com/dekarrin/chomsky/internal/util"
)

// Grammar is a context-free grammar. Rules are kept in the order their
// non-terminals were first added and the productions of each rule are kept in
// the order they were added. The zero value is an empty grammar ready for use.
type Grammar struct {
	// Start is the start symbol. If not set, the non-terminal of the first
	// rule added is used.
	Start string

	rules     []Rule
	rulesByNT map[string]int
}

// AddRule adds the given production as an alternative for nonTerminal. If
// nonTerminal has no rule yet, one is created at the end of the grammar. A
// production that is already present for nonTerminal is not added a second
// time.
func (g *Grammar) AddRule(nonTerminal string, prod Production) {
	idx := g.ensureRule(nonTerminal)

	r := g.rules[idx]
	for _, existing := range r.Productions {
		if existing.Equal(prod) {
			return
		}
	}
	r.Productions = append(r.Productions, prod.Copy())
	g.rules[idx] = r
}

// AddNonTerminal makes sure nonTerminal has a rule, without adding any
// productions to it.
func (g *Grammar) AddNonTerminal(nonTerminal string) {
	g.ensureRule(nonTerminal)
}

func (g *Grammar) ensureRule(nonTerminal string) int {
	if g.rulesByNT == nil {
		g.rulesByNT = map[string]int{}
	}
	idx, ok := g.rulesByNT[nonTerminal]
	if !ok {
		g.rules = append(g.rules, Rule{NonTerminal: nonTerminal})
		idx = len(g.rules) - 1
		g.rulesByNT[nonTerminal] = idx
	}
	return idx
}

// StartSymbol returns the start symbol of the grammar. This is Start if it
// has been set, otherwise the first non-terminal of the grammar.
func (g Grammar) StartSymbol() string {
	if g.Start != "" {
		return g.Start
	}
	if len(g.rules) > 0 {
		return g.rules[0].NonTerminal
	}
	return ""
}

// HasRule returns whether nonTerminal has an entry in the grammar.
func (g Grammar) HasRule(nonTerminal string) bool {
	_, ok := g.rulesByNT[nonTerminal]
	return ok
}

// Rule returns a copy of the rule for nonTerminal. If there isn't one, a Rule
// with an empty NonTerminal is returned.
func (g Grammar) Rule(nonTerminal string) Rule {
	idx, ok := g.rulesByNT[nonTerminal]
	if !ok {
		return Rule{}
	}
	return g.rules[idx].Copy()
}

// Rules returns a copy of every rule in the grammar in order.
func (g Grammar) Rules() []Rule {
	rules := make([]Rule, len(g.rules))
	for i := range g.rules {
		rules[i] = g.rules[i].Copy()
	}
	return rules
}

// NonTerminals returns the identifier of every non-terminal with a rule, in
// grammar order.
func (g Grammar) NonTerminals() []string {
	nts := make([]string, len(g.rules))
	for i := range g.rules {
		nts[i] = g.rules[i].NonTerminal
	}
	return nts
}

// Terminals returns the text of every terminal used in the grammar, in the
// order they are first seen.
func (g Grammar) Terminals() []string {
	terms := util.OrderedSet[string]{}
	for _, r := range g.rules {
		for _, p := range r.Productions {
			for _, sym := range p {
				if sym.Terminal {
					terms.Add(sym.Name)
				}
			}
		}
	}
	return terms.Elements()
}

// Len returns the total number of productions in the grammar.
func (g Grammar) Len() int {
	var count int
	for _, r := range g.rules {
		count += len(r.Productions)
	}
	return count
}

// Copy returns a deep copy of the grammar.
func (g Grammar) Copy() Grammar {
	cp := Grammar{Start: g.Start}
	if g.rules != nil {
		cp.rules = make([]Rule, len(g.rules))
		cp.rulesByNT = make(map[string]int, len(g.rules))
		for i := range g.rules {
			cp.rules[i] = g.rules[i].Copy()
			cp.rulesByNT[g.rules[i].NonTerminal] = i
		}
	}
	return cp
}

// Validate checks that the grammar is closed. The start symbol and every
// non-terminal used in a production body must have a rule. The returned error
// will be a *MalformedGrammarError if the grammar is not closed.
func (g Grammar) Validate() error {
	start := g.StartSymbol()
	if !g.HasRule(start) {
		return &MalformedGrammarError{NonTerminal: start}
	}

	for _, r := range g.rules {
		for _, p := range r.Productions {
			for _, sym := range p {
				if !sym.Terminal && !g.HasRule(sym.Name) {
					return &MalformedGrammarError{NonTerminal: sym.Name, Referrer: r.NonTerminal}
				}
			}
		}
	}

	return nil
}

// Nullables returns every non-terminal that can derive the empty string, in
// grammar order. A non-terminal is nullable if it has a production made only
// of nullable non-terminals, which includes the empty production.
func (g Grammar) Nullables() []string {
	nullable := util.NewKeySet[string]()

	changed := true
	for changed {
		changed = false
		for _, r := range g.rules {
			if nullable.Has(r.NonTerminal) {
				continue
			}
			for _, p := range r.Productions {
				allNullable := true
				for _, sym := range p {
					if sym.Terminal || !nullable.Has(sym.Name) {
						allNullable = false
						break
					}
				}
				if allNullable {
					nullable.Add(r.NonTerminal)
					changed = true
					break
				}
			}
		}
	}

	var ordered []string
	for _, r := range g.rules {
		if nullable.Has(r.NonTerminal) {
			ordered = append(ordered, r.NonTerminal)
		}
	}
	return ordered
}

// Equal returns whether o is a Grammar (or pointer to one) with the same start
// symbol and the same rules in the same order.
func (g Grammar) Equal(o any) bool {
	other, ok := o.(Grammar)
	if !ok {
		otherPtr, ok := o.(*Grammar)
		if !ok || otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if g.StartSymbol() != other.StartSymbol() {
		return false
	}
	if len(g.rules) != len(other.rules) {
		return false
	}
	for i := range g.rules {
		if !g.rules[i].Equal(other.rules[i]) {
			return false
		}
	}
	return true
}

// String gives the grammar in the text format read by Parse, one rule per
// line.
func (g Grammar) String() string {
	var sb strings.Builder
	for i, r := range g.rules {
		if i > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(r.String())
	}
	return sb.String()
}
