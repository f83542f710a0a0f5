package grammar

import (
	"strings"
)

// Epsilon is the text used to write out an empty production.
const Epsilon = "ε"

// Symbol is a single symbol in the body of a production. It is explicitly
// tagged as a terminal or a non-terminal; nothing that consumes a Grammar ever
// has to guess which one a symbol is from its name.
type Symbol struct {
	// Name is the identifier of a non-terminal or the text of a terminal.
	Name string

	// Terminal is whether the symbol is a terminal.
	Terminal bool
}

// T returns the terminal symbol with the given text.
func T(text string) Symbol {
	return Symbol{Name: text, Terminal: true}
}

// NT returns the non-terminal symbol with the given identifier.
func NT(id string) Symbol {
	return Symbol{Name: id}
}

// String gives the symbol as it would be written in grammar text. Terminals
// that would be read back as non-terminals by the default classifier are
// quoted.
func (s Symbol) String() string {
	if s.Terminal && !DefaultClassifier(s.Name) {
		return "\"" + s.Name + "\""
	}
	return s.Name
}

// Classifier decides whether an unquoted symbol read from grammar text is a
// terminal.
type Classifier func(sym string) bool

// DefaultClassifier treats a symbol as a terminal if it has no upper-case
// letters in it.
func DefaultClassifier(sym string) bool {
	return strings.ToLower(sym) == sym
}

// TerminalsClassifier returns a Classifier that treats exactly the given
// symbols as terminals.
func TerminalsClassifier(terms []string) Classifier {
	termSet := map[string]bool{}
	for _, t := range terms {
		termSet[t] = true
	}
	return func(sym string) bool {
		return termSet[sym]
	}
}

// Production is the ordered body of a single alternative of a rule. An empty
// Production is the epsilon production.
type Production []Symbol

// IsUnit returns whether the production is a single non-terminal.
func (p Production) IsUnit() bool {
	return len(p) == 1 && !p[0].Terminal
}

// IsLexical returns whether the production is a single terminal.
func (p Production) IsLexical() bool {
	return len(p) == 1 && p[0].Terminal
}

// IsBinary returns whether the production is exactly two non-terminals.
func (p Production) IsBinary() bool {
	return len(p) == 2 && !p[0].Terminal && !p[1].Terminal
}

// Copy returns a duplicate of the production that shares no memory with it.
func (p Production) Copy() Production {
	if p == nil {
		return nil
	}
	cp := make(Production, len(p))
	copy(cp, p)
	return cp
}

// Equal returns whether o is a Production (or pointer to one) with exactly the
// same symbols in the same order.
func (p Production) Equal(o any) bool {
	other, ok := o.(Production)
	if !ok {
		otherPtr, ok := o.(*Production)
		if !ok || otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

func (p Production) String() string {
	if len(p) == 0 {
		return Epsilon
	}
	strs := make([]string, len(p))
	for i := range p {
		strs[i] = p[i].String()
	}
	return strings.Join(strs, " ")
}

// key returns a string that uniquely identifies the production, for use in
// deduplication.
func (p Production) key() string {
	var sb strings.Builder
	for i := range p {
		if p[i].Terminal {
			sb.WriteRune('t')
		} else {
			sb.WriteRune('n')
		}
		sb.WriteString(p[i].Name)
		sb.WriteRune(0)
	}
	return sb.String()
}

// Rule is every production of a single non-terminal, in priority order.
type Rule struct {
	NonTerminal string
	Productions []Production
}

// Copy returns a deep copy of the rule.
func (r Rule) Copy() Rule {
	cp := Rule{NonTerminal: r.NonTerminal}
	if r.Productions != nil {
		cp.Productions = make([]Production, len(r.Productions))
		for i := range r.Productions {
			cp.Productions[i] = r.Productions[i].Copy()
		}
	}
	return cp
}

// Equal returns whether o is a Rule (or pointer to one) for the same
// non-terminal with the same productions in the same order.
func (r Rule) Equal(o any) bool {
	other, ok := o.(Rule)
	if !ok {
		otherPtr, ok := o.(*Rule)
		if !ok || otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if r.NonTerminal != other.NonTerminal {
		return false
	}
	if len(r.Productions) != len(other.Productions) {
		return false
	}
	for i := range r.Productions {
		if !r.Productions[i].Equal(other.Productions[i]) {
			return false
		}
	}
	return true
}

func (r Rule) String() string {
	alts := make([]string, len(r.Productions))
	for i := range r.Productions {
		alts[i] = r.Productions[i].String()
	}
	return r.NonTerminal + " -> " + strings.Join(alts, " | ")
}
