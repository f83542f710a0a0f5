package gramfile

import (
	"fmt"
	"strings"

	"github.com/dekarrin/chomsky/internal/grammar"
	"github.com/dekarrin/chomsky/internal/tokens"
	"github.com/dekarrin/chomsky/internal/util"
)

func parseManifest(gf topLevelManifest) Manifest {
	return Manifest{
		Files: gf.Files,
	}
}

func parseDefinition(gf topLevelGrammarData) (Definition, error) {
	def := Definition{
		Name: gf.Grammar.Name,
	}

	if len(gf.Rules) < 1 {
		return def, fmt.Errorf("grammar: no rules are defined")
	}

	var g grammar.Grammar
	g.Start = strings.TrimSpace(gf.Grammar.Start)

	for i, r := range gf.Rules {
		classify := r.classifier()
		nt := strings.TrimSpace(r.NonTerminal)
		if nt == "" {
			return def, fmt.Errorf("rule[%d]: 'nonterminal' must be set", i)
		}
		if classify(nt) {
			return def, fmt.Errorf("rule[%d]: %q would be read as a terminal", i, nt)
		}
		if len(r.Productions) < 1 {
			return def, fmt.Errorf("rule[%d]: %q: 'productions' must list at least one production", i, nt)
		}

		g.AddNonTerminal(nt)
		for j, prodText := range r.Productions {
			prod, err := grammar.ParseProductionWith(prodText, classify)
			if err != nil {
				return def, fmt.Errorf("rule[%d]: %q: productions[%d]: %w", i, nt, j, err)
			}
			g.AddRule(nt, foldTerminals(prod))
		}
	}

	if err := g.Validate(); err != nil {
		return def, fmt.Errorf("grammar: %w", err)
	}
	def.Grammar = g

	def.Notes = append(def.Notes, gf.Grammar.Notes...)

	terms := util.KeySetOf(g.Terminals())
	seenCategories := util.NewKeySet[string]()
	for i, v := range gf.Vocab {
		if v.Category == "" {
			return def, fmt.Errorf("vocab[%d]: 'category' must be set", i)
		}
		if seenCategories.Has(v.Category) {
			return def, fmt.Errorf("vocab[%d]: duplicate category %q", i, v.Category)
		}
		seenCategories.Add(v.Category)

		for _, w := range v.Words {
			if !terms.Has(tokens.Fold(w)) {
				return def, fmt.Errorf("vocab[%d]: %q: word %q is not a terminal of the grammar", i, v.Category, w)
			}
		}
		def.Vocabulary = append(def.Vocabulary, v.toVocabCategory())
	}

	for i, ex := range gf.Examples {
		if strings.TrimSpace(ex.Sentence) == "" {
			return def, fmt.Errorf("example[%d]: 'sentence' must be set", i)
		}
		def.Examples = append(def.Examples, ex.toExample())
	}

	return def, nil
}

// foldTerminals gives a copy of prod with the text of every terminal folded the
// way sentence words are, so that a terminal declared as "Paris" is matched by
// the word "paris" or "PARIS".
func foldTerminals(prod grammar.Production) grammar.Production {
	folded := prod.Copy()
	for i := range folded {
		if folded[i].Terminal {
			folded[i].Name = tokens.Fold(folded[i].Name)
		}
	}
	return folded
}
