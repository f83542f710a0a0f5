package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Normalize(t *testing.T) {
	testCases := []struct {
		name           string
		input          string
		expectStart    string
		expect         []string
		expectNullable []string
	}{
		{
			name:        "single terminal",
			input:       "S -> a",
			expectStart: "S0",
			expect: []string{
				"S0 -> a",
				"S -> a",
			},
		},
		{
			name:        "long production is binarized to the right",
			input:       "S -> A B C; A -> a; B -> b; C -> c",
			expectStart: "S0",
			expect: []string{
				"S0 -> A X1",
				"S -> A X2",
				"A -> a",
				"B -> b",
				"C -> c",
				"X1 -> B C",
				"X2 -> B C",
			},
		},
		{
			name:        "terminals are isolated once per distinct terminal",
			input:       "S -> a S b | a b",
			expectStart: "S0",
			expect: []string{
				"S0 -> X1 X3 | X1 X2",
				"S -> X1 X4 | X1 X2",
				"X1 -> a",
				"X2 -> b",
				"X3 -> S X2",
				"X4 -> S X2",
			},
		},
		{
			name:        "unit chains are collapsed",
			input:       "S -> A; A -> B | a; B -> b",
			expectStart: "S0",
			expect: []string{
				"S0 -> a | b",
				"S -> a | b",
				"A -> a | b",
				"B -> b",
			},
		},
		{
			name:        "fresh variables skip names already in use",
			input:       "S -> a B c; B -> X1; X1 -> b",
			expectStart: "S0",
			expect: []string{
				"S0 -> X2 X4",
				"S -> X2 X5",
				"B -> b",
				"X1 -> b",
				"X2 -> a",
				"X3 -> c",
				"X4 -> B X3",
				"X5 -> B X3",
			},
		},
		{
			name:        "S0 already in use",
			input:       "S0 -> a S0 | b",
			expectStart: "X1",
			expect: []string{
				"X1 -> X2 S0 | b",
				"S0 -> X2 S0 | b",
				"X2 -> a",
			},
		},
		{
			name:        "empty productions are dropped and reported as nullable",
			input:       "S -> A b; A -> a | ε",
			expectStart: "S0",
			expect: []string{
				"S0 -> A X1",
				"S -> A X1",
				"A -> a",
				"X1 -> b",
			},
			expectNullable: []string{"A"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			// setup
			g := MustParse(tc.input)
			before := g.String()

			// execute
			actual, err := Normalize(g)

			// assert
			if !assert.NoError(err) {
				return
			}

			var actualRules []string
			for _, r := range actual.Rules() {
				actualRules = append(actualRules, r.String())
			}

			assert.Equal(tc.expectStart, actual.StartSymbol())
			assert.Equal(tc.expect, actualRules)
			assert.Equal(tc.expectNullable, actual.Nullable)
			assert.Equal(g.StartSymbol(), actual.Origin)
			assert.NoError(actual.Check())
			assert.Equal(before, g.String(), "input grammar was modified")
		})
	}
}

func Test_Normalize_KeepsEmptiedNonTerminals(t *testing.T) {
	assert := assert.New(t)

	actual, err := Normalize(MustParse("S -> A | a; A -> ε"))
	if !assert.NoError(err) {
		return
	}

	assert.Equal([]string{"S0", "S", "A"}, actual.Nullable)
	assert.Equal("S0 -> a", actual.Rule("S0").String())
	assert.True(actual.HasRule("A"))
	assert.Empty(actual.Rule("A").Productions)
	assert.NoError(actual.Check())
}

func Test_Normalize_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		input Grammar
	}{
		{
			name: "empty grammar",
		},
		{
			name:  "undefined non-terminal",
			input: MustParse("S -> NP VP; NP -> he"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			_, err := Normalize(tc.input)

			assert.ErrorIs(err, ErrMalformedGrammar)
		})
	}
}

func Test_Normalize_ResultIsCNF(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "english", input: testEnglishGrammar},
		{name: "long mixed bodies", input: "S -> a B c D e | B; B -> b | D D D D; D -> d | ε"},
		{name: "unit cycle", input: "S -> A | s; A -> B | a; B -> S | b c"},
		{name: "self unit", input: "S -> S | x y z"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := Normalize(MustParse(tc.input))
			if !assert.NoError(err) {
				return
			}

			assert.NoError(actual.Check())
			for _, r := range actual.Rules() {
				for _, p := range r.Productions {
					assert.True(p.IsLexical() || p.IsBinary(), "%s -> %s is not in CNF", r.NonTerminal, p)
					for _, sym := range p {
						assert.NotEqual(actual.StartSymbol(), sym.Name, "start symbol appears in %s -> %s", r.NonTerminal, p)
					}
				}
			}
		})
	}
}

func Test_Normalize_IsRepeatable(t *testing.T) {
	assert := assert.New(t)

	g := MustParse(testEnglishGrammar)

	first := MustNormalize(g)
	second := MustNormalize(g)

	assert.True(first.Equal(second))
}

func Test_CNF_Check(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "terminal in binary production", input: "S -> A b; A -> a"},
		{name: "unit production", input: "S -> A; A -> a"},
		{name: "empty production", input: "S -> ε | a"},
		{name: "long production", input: "S -> A A A; A -> a"},
		{name: "binary production with undefined non-terminal", input: "S -> A B; A -> a"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			cnf := CNF{Grammar: MustParse(tc.input)}

			err := cnf.Check()

			assert.ErrorIs(err, ErrInvalidCNFGrammar)
		})
	}
}
