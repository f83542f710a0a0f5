package grammar

import (
	"fmt"

	"github.com/dekarrin/rezi"
)

// MarshalBinary encodes the symbol with rezi.
func (s Symbol) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, rezi.EncString(s.Name)...)
	data = append(data, rezi.EncBool(s.Terminal)...)
	return data, nil
}

// UnmarshalBinary decodes a symbol encoded with MarshalBinary.
func (s *Symbol) UnmarshalBinary(data []byte) error {
	var n int
	var err error

	s.Name, n, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("name: %w", err)
	}
	data = data[n:]

	s.Terminal, _, err = rezi.DecBool(data)
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}

	return nil
}

// MarshalBinary encodes the production with rezi.
func (p Production) MarshalBinary() ([]byte, error) {
	data := rezi.EncInt(len(p))
	for i := range p {
		data = append(data, rezi.EncBinary(p[i])...)
	}
	return data, nil
}

// UnmarshalBinary decodes a production encoded with MarshalBinary.
func (p *Production) UnmarshalBinary(data []byte) error {
	count, n, err := decCount(data)
	if err != nil {
		return fmt.Errorf("symbol count: %w", err)
	}
	data = data[n:]

	prod := make(Production, count)
	for i := 0; i < count; i++ {
		n, err = rezi.DecBinary(data, &prod[i])
		if err != nil {
			return fmt.Errorf("symbol %d: %w", i, err)
		}
		data = data[n:]
	}

	*p = prod
	return nil
}

// MarshalBinary encodes the rule with rezi.
func (r Rule) MarshalBinary() ([]byte, error) {
	data := rezi.EncString(r.NonTerminal)
	data = append(data, rezi.EncInt(len(r.Productions))...)
	for i := range r.Productions {
		data = append(data, rezi.EncBinary(r.Productions[i])...)
	}
	return data, nil
}

// UnmarshalBinary decodes a rule encoded with MarshalBinary.
func (r *Rule) UnmarshalBinary(data []byte) error {
	var decoded Rule
	var n int
	var err error

	decoded.NonTerminal, n, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("non-terminal: %w", err)
	}
	data = data[n:]

	count, n, err := decCount(data)
	if err != nil {
		return fmt.Errorf("production count: %w", err)
	}
	data = data[n:]

	decoded.Productions = make([]Production, count)
	for i := 0; i < count; i++ {
		n, err = rezi.DecBinary(data, &decoded.Productions[i])
		if err != nil {
			return fmt.Errorf("production %d: %w", i, err)
		}
		data = data[n:]
	}

	*r = decoded
	return nil
}

// MarshalBinary encodes the grammar with rezi.
func (g Grammar) MarshalBinary() ([]byte, error) {
	data := rezi.EncString(g.Start)
	data = append(data, rezi.EncInt(len(g.rules))...)
	for i := range g.rules {
		data = append(data, rezi.EncBinary(g.rules[i])...)
	}
	return data, nil
}

// UnmarshalBinary decodes a grammar encoded with MarshalBinary.
func (g *Grammar) UnmarshalBinary(data []byte) error {
	var decoded Grammar
	var n int
	var err error

	decoded.Start, n, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	data = data[n:]

	count, n, err := decCount(data)
	if err != nil {
		return fmt.Errorf("rule count: %w", err)
	}
	data = data[n:]

	for i := 0; i < count; i++ {
		var r Rule
		n, err = rezi.DecBinary(data, &r)
		if err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
		data = data[n:]

		decoded.AddNonTerminal(r.NonTerminal)
		for _, p := range r.Productions {
			decoded.AddRule(r.NonTerminal, p)
		}
	}

	*g = decoded
	return nil
}

// MarshalBinary encodes the CNF grammar with rezi.
func (c CNF) MarshalBinary() ([]byte, error) {
	data := rezi.EncBinary(c.Grammar)
	data = append(data, rezi.EncString(c.Origin)...)
	data = append(data, rezi.EncInt(len(c.Nullable))...)
	for _, nt := range c.Nullable {
		data = append(data, rezi.EncString(nt)...)
	}
	return data, nil
}

// UnmarshalBinary decodes a CNF grammar encoded with MarshalBinary.
func (c *CNF) UnmarshalBinary(data []byte) error {
	var decoded CNF
	var n int
	var err error

	n, err = rezi.DecBinary(data, &decoded.Grammar)
	if err != nil {
		return fmt.Errorf("grammar: %w", err)
	}
	data = data[n:]

	decoded.Origin, n, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("origin: %w", err)
	}
	data = data[n:]

	count, n, err := decCount(data)
	if err != nil {
		return fmt.Errorf("nullable count: %w", err)
	}
	data = data[n:]

	for i := 0; i < count; i++ {
		var nt string
		nt, n, err = rezi.DecString(data)
		if err != nil {
			return fmt.Errorf("nullable %d: %w", i, err)
		}
		data = data[n:]
		decoded.Nullable = append(decoded.Nullable, nt)
	}

	*c = decoded
	return nil
}

// decCount decodes the element count that precedes a list. Every encoded
// element takes at least one byte, so a count that is negative or larger than
// what remains of data can only come from corrupt data.
func decCount(data []byte) (int, int, error) {
	count, n, err := rezi.DecInt(data)
	if err != nil {
		return 0, 0, err
	}
	if count < 0 {
		return 0, 0, fmt.Errorf("count is negative: %d", count)
	}
	if count > len(data)-n {
		return 0, 0, fmt.Errorf("count of %d is more than the %d bytes left", count, len(data)-n)
	}
	return count, n, nil
}
