package grammar

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedGrammar is matched by errors.Is for every
	// *MalformedGrammarError.
	ErrMalformedGrammar = errors.New("malformed grammar")

	// ErrInvalidCNFGrammar is matched by errors.Is for every
	// *InvalidCNFGrammarError.
	ErrInvalidCNFGrammar = errors.New("invalid CNF grammar")
)

// MalformedGrammarError is returned when a grammar refers to a non-terminal
// that has no rule, including the case where the start symbol itself has
// none. A grammar that gives this error cannot be normalized.
type MalformedGrammarError struct {
	// NonTerminal is the identifier that has no rule.
	NonTerminal string

	// Referrer is the rule that the undefined non-terminal was found in. It is
	// empty if NonTerminal is the start symbol.
	Referrer string
}

func (e *MalformedGrammarError) Error() string {
	if e.Referrer == "" {
		return fmt.Sprintf("%s: start symbol %q has no rule", ErrMalformedGrammar, e.NonTerminal)
	}
	return fmt.Sprintf("%s: %q refers to non-terminal %q which has no rule", ErrMalformedGrammar, e.Referrer, e.NonTerminal)
}

func (e *MalformedGrammarError) Is(target error) bool {
	return target == ErrMalformedGrammar
}

// InvalidCNFGrammarError is returned when a grammar that is supposed to be in
// Chomsky Normal Form is not. Grammars produced by Normalize never give this
// error; if one does, the normalizer has a defect.
type InvalidCNFGrammarError struct {
	NonTerminal string
	Production  Production
	Reason      string
}

func (e *InvalidCNFGrammarError) Error() string {
	return fmt.Sprintf("%s: %s -> %s: %s", ErrInvalidCNFGrammar, e.NonTerminal, e.Production.String(), e.Reason)
}

func (e *InvalidCNFGrammarError) Is(target error) bool {
	return target == ErrInvalidCNFGrammar
}
