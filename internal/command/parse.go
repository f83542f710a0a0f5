package command

import (
	"strings"

	"github.com/dekarrin/chomsky/internal/clierr"
)

var (
	// Verbs is every canonical verb, in the order they are listed in help
	// output.
	Verbs = []string{
		"PARSE",
		"TABLE",
		"EXAMPLES",
		"VOCAB",
		"INTERACTIVE",
		"CNF",
		"HELP",
		"QUIT",
	}

	// VerbAliases maps shorthand verbs (which must be the first words in a
	// command) to their canonical forms. They are all uppercase. The digits are
	// the options of the numbered menu.
	VerbAliases map[string]string = map[string]string{
		"1":          "EXAMPLES",
		"2":          "VOCAB",
		"3":          "PARSE",
		"4":          "INTERACTIVE",
		"5":          "CNF",
		"0":          "QUIT",
		"EX":         "EXAMPLES",
		"EXAMPLE":    "EXAMPLES",
		"VOCABULARY": "VOCAB",
		"WORDS":      "VOCAB",
		"P":          "PARSE",
		"CHECK":      "PARSE",
		"T":          "TABLE",
		"BATCH":      "INTERACTIVE",
		"GRAMMAR":    "CNF",
		"?":          "HELP",
		"/?":         "HELP",
		"/H":         "HELP",
		"-H":         "HELP",
		"H":          "HELP",
		"BYE":        "QUIT",
		"EXIT":       "QUIT",
	}
)

// IsVerb returns whether word, in any case, is a canonical verb or one of its
// aliases.
func IsVerb(word string) bool {
	upper := strings.ToUpper(word)
	if _, ok := VerbAliases[upper]; ok {
		return true
	}
	for _, v := range Verbs {
		if v == upper {
			return true
		}
	}
	return false
}

// ParseCommand parses a command from the given text. If it cannot, a non-nil
// error is returned. Input whose first word is not a verb is taken to be a
// sentence to parse, so "she eats a cake" is the same as "PARSE she eats a
// cake".
//
// If an empty string or a string composed only of whitespace is passed in, nil
// error is returned and a zero value for Command will be returned.
func ParseCommand(toParse string) (Command, error) {
	var parsedCmd Command

	casedTokens := strings.Fields(toParse)
	if len(casedTokens) < 1 {
		return parsedCmd, nil
	}

	if !IsVerb(casedTokens[0]) {
		parsedCmd.Verb = "PARSE"
		parsedCmd.Sentence = strings.Join(casedTokens, " ")
		return parsedCmd, nil
	}

	// make the verb upper case to make matching easy
	verbTokens := strings.Fields(strings.ToUpper(casedTokens[0]))
	verbTokens = ExpandAliases(verbTokens, 1)

	parsedCmd.Verb = verbTokens[0]
	args := strings.Join(casedTokens[1:], " ")

	switch parsedCmd.Verb {
	case "HELP":
		// help takes an optional topic
		if args != "" {
			parsedCmd.Sentence = strings.ToUpper(args)
		}
	case "PARSE", "TABLE":
		// the sentence is optional; without one the user is asked for it.
		parsedCmd.Sentence = args
	case "EXAMPLES", "VOCAB", "INTERACTIVE", "CNF", "QUIT":
		if args != "" {
			errMsg := "You can't %s *something*; type %s by itself"
			return parsedCmd, clierr.Newf(errMsg, casedTokens[0], casedTokens[0])
		}
	default:
		return parsedCmd, clierr.Newf("I don't know what you mean by %q", casedTokens[0])
	}

	return parsedCmd, nil
}

// ExpandAliases takes a slice of tokens of user input and runs alias expansion
// on it. It expects all strings in the given slice to be upper case; failure to
// ensure this may cause the expansion to not work properly. The returned slice
// contains the same tokens but with aliases expanded.
//
// The unexpanded tokens slice is not modified during this operation.
//
// Aliases up to aliasLimit words long are supported. If it is less than 1, the
// given tokens will be returned unchanged.
//
// Aliases will not be multi-expanded; that is, expansion is not applied to the
// results of an expansion.
func ExpandAliases(tokens []string, aliasLimit int) []string {
	expandedTokens := append([]string{}, tokens...)
	if aliasLimit < 1 {
		return expandedTokens
	}

	if aliasLimit > len(tokens) {
		aliasLimit = len(tokens)
	}

	for curLimit := 1; curLimit <= aliasLimit; curLimit++ {
		checkStr := strings.Join(tokens[:curLimit], " ")
		expansion, ok := VerbAliases[checkStr]
		if ok {
			replacementTokens := strings.Fields(expansion)
			expandedTokens = append(replacementTokens, tokens[curLimit:]...)
			return expandedTokens
		}
	}

	return expandedTokens
}
