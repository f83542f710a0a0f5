package cyk

import (
	"strings"
	"testing"

	"github.com/dekarrin/chomsky/internal/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEnglishGrammar = `
	S -> NP VP
	VP -> VP PP | V NP | cooks | drinks | eats | cuts
	PP -> P NP
	NP -> Det N | he | she
	V -> cooks | drinks | eats | cuts
	P -> in | with
	N -> cat | dog | beer | cake | juice | meat | soup | fork | knife | oven | spoon
	Det -> a | the
`

func testEnglishParser(t *testing.T) *Parser {
	cnf, err := grammar.Normalize(grammar.MustParse(testEnglishGrammar))
	require.NoError(t, err)
	p, err := New(cnf)
	require.NoError(t, err)
	return p
}

func Test_Parser_Parse(t *testing.T) {
	testCases := []struct {
		name     string
		sentence string
		expect   bool
	}{
		{
			name:     "semantically correct",
			sentence: "she eats a cake",
			expect:   true,
		},
		{
			name:     "semantically correct with determiner",
			sentence: "he drinks the beer",
			expect:   true,
		},
		{
			name:     "prepositional phrase",
			sentence: "the cat cooks the soup with a dog",
			expect:   true,
		},
		{
			name:     "nonsense but grammatical",
			sentence: "she eats the fork",
			expect:   true,
		},
		{
			name:     "intransitive verb phrase",
			sentence: "she eats",
			expect:   true,
		},
		{
			name:     "no subject",
			sentence: "eats a cake",
			expect:   false,
		},
		{
			name:     "word not in grammar",
			sentence: "the cat quickly drinks beer",
			expect:   false,
		},
		{
			name:     "no tokens",
			sentence: "",
			expect:   false,
		},
	}

	p := testEnglishParser(t)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			// setup
			tokens := strings.Fields(tc.sentence)

			// execute
			actual := p.Parse(tokens)

			// assert
			assert.Equal(tc.expect, actual.Accepted)
			assert.Equal(len(tokens), actual.Table.Len())
			assert.Equal("S0", actual.Start)
			assert.Equal("S", actual.Origin)

			tree := BuildTree(actual)
			if tc.expect {
				if assert.NotNil(tree) {
					assert.Equal("S", tree.Symbol)
					assert.Equal(tokens, tree.Leaves())
				}
			} else {
				assert.Nil(tree)
			}
		})
	}
}

func Test_Parser_Parse_Table(t *testing.T) {
	assert := assert.New(t)

	p := testEnglishParser(t)

	res := p.Parse([]string{"she", "eats", "a", "cake"})

	assert.Equal([]string{"NP"}, res.Table.Cell(0, 0).Symbols())
	assert.Equal([]string{"VP", "V"}, res.Table.Cell(1, 0).Symbols())
	assert.Equal([]string{"S0", "S"}, res.Table.Cell(0, 1).Symbols())
	assert.Empty(res.Table.Cell(1, 1).Symbols())
	assert.Equal([]string{"NP"}, res.Table.Cell(2, 1).Symbols())
	assert.Equal([]string{"VP"}, res.Table.Cell(1, 2).Symbols())
	assert.Equal([]string{"S0", "S"}, res.Table.Cell(0, 3).Symbols())
	assert.Nil(res.Table.Cell(1, 3))

	assert.Equal([]Backpointer{{Leaf: true, Terminal: "eats"}}, res.Table.Cell(1, 0).Backpointers("V"))
	assert.Equal([]Backpointer{
		{Left: "NP", Right: "VP", Split: 0, LeftStart: 0, RightStart: 1},
	}, res.Table.Cell(0, 3).Backpointers("S0"))
	assert.Equal([]Backpointer{
		{Left: "V", Right: "NP", Split: 0, LeftStart: 1, RightStart: 2},
	}, res.Table.Cell(1, 2).Backpointers("VP"))
}

func Test_Parser_ParseParallel_MatchesParse(t *testing.T) {
	sentences := []string{
		"she eats a cake",
		"the cat cooks the soup with a dog",
		"the dog eats the meat with a fork in the oven",
		"the cat quickly drinks beer",
		"he",
	}

	p := testEnglishParser(t)

	for _, s := range sentences {
		t.Run(s, func(t *testing.T) {
			assert := assert.New(t)

			tokens := strings.Fields(s)

			seq := p.Parse(tokens)
			par := p.ParseParallel(tokens)

			assert.Equal(seq.Accepted, par.Accepted)
			for i := 0; i < len(tokens); i++ {
				for l := 0; l < len(tokens)-i; l++ {
					seqCell := seq.Table.Cell(i, l)
					parCell := par.Table.Cell(i, l)
					assert.Equal(seqCell.Symbols(), parCell.Symbols(), "cell (%d, %d)", i, l)
					for _, nt := range seqCell.Symbols() {
						assert.Equal(seqCell.Backpointers(nt), parCell.Backpointers(nt), "cell (%d, %d) %s", i, l, nt)
					}
				}
			}
			assert.True(BuildTree(seq).Equal(BuildTree(par)))
		})
	}
}

func Test_Parser_Parse_OrderIndependent(t *testing.T) {
	sentences := []string{
		"she eats a cake",
		"he drinks the beer",
		"the cat cooks the soup with a dog",
		"she eats",
		"eats a cake",
		"the cat quickly drinks beer",
		"a dog cuts the meat with the knife in the oven",
	}

	original := grammar.MustParse(testEnglishGrammar)

	var reordered grammar.Grammar
	reordered.Start = original.StartSymbol()
	rules := original.Rules()
	for i := len(rules) - 1; i >= 0; i-- {
		r := rules[i]
		reordered.AddNonTerminal(r.NonTerminal)
		for j := len(r.Productions) - 1; j >= 0; j-- {
			reordered.AddRule(r.NonTerminal, r.Productions[j])
		}
	}

	p1 := MustNew(grammar.MustNormalize(original))
	p2 := MustNew(grammar.MustNormalize(reordered))

	for _, s := range sentences {
		t.Run(s, func(t *testing.T) {
			assert := assert.New(t)

			tokens := strings.Fields(s)

			assert.Equal(p1.Parse(tokens).Accepted, p2.Parse(tokens).Accepted)
		})
	}
}

func Test_Parser_SingleToken(t *testing.T) {
	testCases := []struct {
		name    string
		grammar string
	}{
		{name: "lexical start only", grammar: "S -> a"},
		{name: "start also has a binary production", grammar: "S -> a S | a"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			p := MustNew(grammar.MustNormalize(grammar.MustParse(tc.grammar)))

			res := p.Parse([]string{"a"})
			assert.True(res.Accepted)

			tree := BuildTree(res)
			if assert.NotNil(tree) {
				assert.Equal("S", tree.Symbol)
				assert.Equal("a", tree.Terminal)
				assert.True(tree.IsLeaf())
			}

			assert.False(p.Parse([]string{"b"}).Accepted)
		})
	}
}

func Test_Parser_RightRecursion(t *testing.T) {
	testCases := []struct {
		name     string
		sentence string
		expect   bool
	}{
		{name: "one", sentence: "a", expect: true},
		{name: "two", sentence: "a a", expect: true},
		{name: "three", sentence: "a a a", expect: true},
		{name: "foreign token", sentence: "a b a", expect: false},
		{name: "empty", sentence: "", expect: false},
	}

	p := MustNew(grammar.MustNormalize(grammar.MustParse("S -> a S | a")))

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			tokens := strings.Fields(tc.sentence)

			res := p.Parse(tokens)

			assert.Equal(tc.expect, res.Accepted)
			if !tc.expect {
				assert.Nil(BuildTree(res))
				return
			}

			tree := BuildTree(res)
			if assert.NotNil(tree) {
				assert.Equal("S", tree.Symbol)
				assert.Equal(tokens, tree.Leaves())
			}
		})
	}
}

func Test_Parser_Knows(t *testing.T) {
	assert := assert.New(t)

	p := testEnglishParser(t)

	assert.True(p.Knows("cake"))
	assert.False(p.Knows("quickly"))
}

func Test_New_InvalidCNF(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "terminal in binary production", input: "S -> A b; A -> a"},
		{name: "unit production", input: "S -> A; A -> a"},
		{name: "undefined non-terminal", input: "S -> A B; A -> a"},
		{name: "long production", input: "S -> A A A; A -> a"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			cnf := grammar.CNF{Grammar: grammar.MustParse(tc.input)}

			_, err := New(cnf)
			assert.ErrorIs(err, grammar.ErrInvalidCNFGrammar)

			_, err = Parse(cnf, []string{"a"})
			assert.ErrorIs(err, grammar.ErrInvalidCNFGrammar)
		})
	}
}

func Test_Result_TableString(t *testing.T) {
	assert := assert.New(t)

	p := testEnglishParser(t)

	out := p.Parse([]string{"she", "eats"}).TableString(80)

	assert.Contains(out, "0: she")
	assert.Contains(out, "1: eats")
	assert.Contains(out, "S0, S")
	assert.Contains(out, "VP, V")

	assert.Equal("(empty table)", p.Parse(nil).TableString(80))
}
