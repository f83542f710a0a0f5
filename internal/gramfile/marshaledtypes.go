package gramfile

import (
	"github.com/dekarrin/chomsky/internal/grammar"
	"github.com/dekarrin/chomsky/internal/tokens"
)

type topLevelManifest struct {
	Format string   `toml:"format"`
	Type   string   `toml:"type"`
	Files  []string `toml:"files"`
}

// topLevelGrammarData is the top-level structure containing all keys in a
// complete 'GRAMMAR' type file.
type topLevelGrammarData struct {
	Format   string    `toml:"format"`
	Type     string    `toml:"type"`
	Grammar  info      `toml:"grammar"`
	Rules    []rule    `toml:"rule"`
	Vocab    []vocab   `toml:"vocab"`
	Examples []example `toml:"example"`
}

type info struct {
	Name      string   `toml:"name"`
	Start     string   `toml:"start"`
	Terminals []string `toml:"terminals"`
	Notes     []string `toml:"notes"`
}

type rule struct {
	NonTerminal string   `toml:"nonterminal"`
	Productions []string `toml:"productions"`

	// terminals is the 'terminals' list of the file the rule was read from.
	// Symbols in the rule are classified by it, or by the default classifier
	// if it is empty, no matter what other files are combined with it.
	terminals []string
}

func (r rule) classifier() grammar.Classifier {
	if len(r.terminals) > 0 {
		return grammar.TerminalsClassifier(r.terminals)
	}
	return grammar.DefaultClassifier
}

type vocab struct {
	Category string   `toml:"category"`
	Words    []string `toml:"words"`
}

func (v vocab) toVocabCategory() VocabCategory {
	vc := VocabCategory{
		Category: v.Category,
		Words:    make([]string, len(v.Words)),
	}
	for i := range v.Words {
		vc.Words[i] = tokens.Fold(v.Words[i])
	}
	return vc
}

type example struct {
	Sentence    string `toml:"sentence"`
	Accept      bool   `toml:"accept"`
	Description string `toml:"description"`
}

func (e example) toExample() Example {
	return Example{
		Sentence:    e.Sentence,
		Accept:      e.Accept,
		Description: e.Description,
	}
}
