// Package tokens turns sentences into the words that are given to the CYK
// parser, and folds grammar terminals so they compare equal to those words.
package tokens

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fold gives the form of word that sentences and terminals are compared in.
// Letters are lower-cased using Unicode case rules.
func Fold(word string) string {
	// a Caser holds state, so one is made per call.
	return cases.Lower(language.Und).String(word)
}

// Split folds sentence and splits it on runs of whitespace.
func Split(sentence string) []string {
	return strings.Fields(Fold(sentence))
}
