package grammar

import (
	"fmt"
	"strings"
	"unicode"
)

// MustParse is like Parse but panics if the text cannot be parsed. It is
// intended for grammars that are known to be valid at compile time.
func MustParse(text string) Grammar {
	g, err := Parse(text)
	if err != nil {
		panic(err.Error())
	}
	return g
}

// Parse reads a Grammar from text using DefaultClassifier to tell terminals
// apart from non-terminals. See ParseWith for the format.
func Parse(text string) (Grammar, error) {
	return ParseWith(text, DefaultClassifier)
}

// ParseWith reads a Grammar from text. Rules are separated by newlines or
// semicolons and are of the form "A -> alt1 | alt2 | ...". Each alternative is
// a whitespace-separated list of symbols; a symbol in double quotes is always a
// terminal and ε alone stands for the empty production. Any other symbol is a
// terminal if classify says it is. Blank rules are skipped. Repeated rules
// for the same non-terminal add to the productions already read.
//
// The non-terminal of the first rule becomes the start symbol.
//
// The returned grammar is not checked for closure; call Validate for that.
func ParseWith(text string, classify Classifier) (Grammar, error) {
	if classify == nil {
		classify = DefaultClassifier
	}

	var g Grammar

	lines := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == ';'
	})

	lineNum := 0
	for _, line := range lines {
		lineNum++
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r, err := parseRule(line, classify)
		if err != nil {
			return Grammar{}, fmt.Errorf("rule %d: %w", lineNum, err)
		}

		if g.Start == "" {
			g.Start = r.NonTerminal
		}
		g.AddNonTerminal(r.NonTerminal)
		for _, p := range r.Productions {
			g.AddRule(r.NonTerminal, p)
		}
	}

	return g, nil
}

// MustParseRule is like ParseRule but panics if the text cannot be parsed.
func MustParseRule(text string) Rule {
	r, err := ParseRule(text)
	if err != nil {
		panic(err.Error())
	}
	return r
}

// ParseRule reads a single rule of the form "A -> alt1 | alt2" using
// DefaultClassifier.
func ParseRule(text string) (Rule, error) {
	return parseRule(strings.TrimSpace(text), DefaultClassifier)
}

func parseRule(text string, classify Classifier) (Rule, error) {
	sides := strings.SplitN(text, "->", 2)
	if len(sides) != 2 {
		return Rule{}, fmt.Errorf("not a rule of the form 'A -> B C': %q", text)
	}

	nt := strings.TrimSpace(sides[0])
	if nt == "" {
		return Rule{}, fmt.Errorf("rule has no non-terminal: %q", text)
	}
	if strings.IndexFunc(nt, unicode.IsSpace) >= 0 || strings.Contains(nt, "\"") {
		return Rule{}, fmt.Errorf("invalid non-terminal %q", nt)
	}

	r := Rule{NonTerminal: nt}

	alts := strings.Split(sides[1], "|")
	for _, alt := range alts {
		prod, err := parseProduction(alt, classify)
		if err != nil {
			return Rule{}, fmt.Errorf("%s: %w", nt, err)
		}
		r.Productions = append(r.Productions, prod)
	}

	return r, nil
}

// ParseProduction reads a single alternative using DefaultClassifier.
func ParseProduction(text string) (Production, error) {
	return parseProduction(text, DefaultClassifier)
}

// ParseProductionWith reads a single alternative, using classify to decide
// which unquoted symbols are terminals.
func ParseProductionWith(text string, classify Classifier) (Production, error) {
	if classify == nil {
		classify = DefaultClassifier
	}
	return parseProduction(text, classify)
}

func parseProduction(text string, classify Classifier) (Production, error) {
	words, err := splitSymbols(text)
	if err != nil {
		return nil, err
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("empty alternative; use %s for the empty production", Epsilon)
	}
	if len(words) == 1 && !words[0].quoted && words[0].text == Epsilon {
		return Production{}, nil
	}

	prod := make(Production, len(words))
	for i, w := range words {
		if w.quoted {
			prod[i] = T(w.text)
			continue
		}
		if w.text == Epsilon {
			return nil, fmt.Errorf("%s must be the only symbol in its alternative", Epsilon)
		}
		if classify(w.text) {
			prod[i] = T(w.text)
		} else {
			prod[i] = NT(w.text)
		}
	}

	return prod, nil
}

type symbolWord struct {
	text   string
	quoted bool
}

// splitSymbols splits text on whitespace, keeping double-quoted runs together
// as a single word.
func splitSymbols(text string) ([]symbolWord, error) {
	var words []symbolWord
	var cur strings.Builder
	inQuote := false
	inWord := false

	for _, ch := range text {
		if inQuote {
			if ch == '"' {
				words = append(words, symbolWord{text: cur.String(), quoted: true})
				cur.Reset()
				inQuote = false
			} else {
				cur.WriteRune(ch)
			}
			continue
		}

		switch {
		case ch == '"':
			if inWord {
				return nil, fmt.Errorf("unexpected quote in symbol %q", cur.String())
			}
			inQuote = true
		case unicode.IsSpace(ch):
			if inWord {
				words = append(words, symbolWord{text: cur.String()})
				cur.Reset()
				inWord = false
			}
		default:
			inWord = true
			cur.WriteRune(ch)
		}
	}

	if inQuote {
		return nil, fmt.Errorf("unterminated quote")
	}
	if inWord {
		words = append(words, symbolWord{text: cur.String()})
	}

	for _, w := range words {
		if w.quoted && w.text == "" {
			return nil, fmt.Errorf("empty quoted terminal")
		}
	}

	return words, nil
}
