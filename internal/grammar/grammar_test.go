package grammar

import (
	"errors"
	"testing"

	"github.com/dekarrin/rezi"
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

func Test_ParseRule(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    Rule
		expectErr bool
	}{
		{
			name:  "non-terminals and a terminal",
			input: "S -> NP VP | he",
			expect: Rule{
				NonTerminal: "S",
				Productions: []Production{
					{NT("NP"), NT("VP")},
					{T("he")},
				},
			},
		},
		{
			name:  "quoted terminal keeps its case",
			input: `A -> "Foo" b`,
			expect: Rule{
				NonTerminal: "A",
				Productions: []Production{
					{T("Foo"), T("b")},
				},
			},
		},
		{
			name:  "epsilon alternative",
			input: "A -> ε | a",
			expect: Rule{
				NonTerminal: "A",
				Productions: []Production{
					{},
					{T("a")},
				},
			},
		},
		{
			name:      "no arrow",
			input:     "S NP VP",
			expectErr: true,
		},
		{
			name:      "no non-terminal",
			input:     "-> a",
			expectErr: true,
		},
		{
			name:      "empty alternative",
			input:     "S -> a |",
			expectErr: true,
		},
		{
			name:      "unterminated quote",
			input:     `S -> "a`,
			expectErr: true,
		},
		{
			name:      "epsilon with other symbols",
			input:     "S -> a ε",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := ParseRule(tc.input)

			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.True(tc.expect.Equal(actual), "expected %q, got %q", tc.expect.String(), actual.String())
		})
	}
}

func Test_Parse(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse("S -> A; A -> a\nA -> b | a")
	if !assert.NoError(err) {
		return
	}

	assert.Equal("S", g.StartSymbol())
	assert.Equal([]string{"S", "A"}, g.NonTerminals())
	assert.Equal([]string{"a", "b"}, g.Terminals())
	assert.Equal("A -> a | b", g.Rule("A").String())
	assert.Equal(3, g.Len())
}

func Test_ParseWith_TerminalsClassifier(t *testing.T) {
	assert := assert.New(t)

	g, err := ParseWith("S -> NP Verb; NP -> Pat; Verb -> Runs", TerminalsClassifier([]string{"Pat", "Runs"}))
	if !assert.NoError(err) {
		return
	}

	assert.Equal([]string{"Pat", "Runs"}, g.Terminals())
	assert.NoError(g.Validate())
}

func Test_Grammar_String(t *testing.T) {
	assert := assert.New(t)

	g := MustParse(`S -> A "B" | ε; A -> a`)

	assert.Equal("S -> A \"B\" | ε\nA -> a", g.String())

	reparsed := MustParse(g.String())
	assert.True(g.Equal(reparsed))
}

func Test_Grammar_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		g         Grammar
		expectErr bool
	}{
		{
			name:      "empty grammar",
			expectErr: true,
		},
		{
			name: "start symbol with no rule",
			g: func() Grammar {
				g := MustParse("A -> a")
				g.Start = "S"
				return g
			}(),
			expectErr: true,
		},
		{
			name:      "undefined non-terminal in body",
			g:         MustParse("S -> A b"),
			expectErr: true,
		},
		{
			name: "closed grammar",
			g:    MustParse(testEnglishGrammar),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			err := tc.g.Validate()

			if tc.expectErr {
				assert.ErrorIs(err, ErrMalformedGrammar)
				var malformed *MalformedGrammarError
				assert.True(errors.As(err, &malformed))
			} else {
				assert.NoError(err)
			}
		})
	}
}

func Test_Grammar_Nullables(t *testing.T) {
	testCases := []struct {
		name   string
		g      string
		expect []string
	}{
		{
			name: "no nullables",
			g:    "S -> a",
		},
		{
			name:   "direct epsilon",
			g:      "S -> A b; A -> a | ε",
			expect: []string{"A"},
		},
		{
			name:   "nullable through other non-terminals",
			g:      "S -> A B | c; A -> ε; B -> A A | b",
			expect: []string{"S", "A", "B"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := MustParse(tc.g).Nullables()

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Grammar_AddRule(t *testing.T) {
	assert := assert.New(t)

	var g Grammar
	g.AddRule("S", Production{NT("A"), T("b")})
	g.AddRule("A", Production{T("a")})
	g.AddRule("S", Production{NT("A"), T("b")})

	assert.Equal("S", g.StartSymbol())
	assert.Equal(2, g.Len())
	assert.True(g.HasRule("A"))
	assert.False(g.HasRule("B"))
	assert.Equal("", g.Rule("B").NonTerminal)
}

func Test_Grammar_Copy(t *testing.T) {
	assert := assert.New(t)

	g := MustParse("S -> A b; A -> a")
	cp := g.Copy()
	cp.AddRule("A", Production{T("c")})

	assert.Equal("A -> a", g.Rule("A").String())
	assert.Equal("A -> a | c", cp.Rule("A").String())
}

func Test_Symbol_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("a", T("a").String())
	assert.Equal(`"Foo"`, T("Foo").String())
	assert.Equal("Foo", NT("Foo").String())
	assert.Equal(Epsilon, Production{}.String())
}

func Test_Production_Kinds(t *testing.T) {
	assert := assert.New(t)

	assert.True(Production{NT("A")}.IsUnit())
	assert.False(Production{T("a")}.IsUnit())
	assert.True(Production{T("a")}.IsLexical())
	assert.True(Production{NT("A"), NT("B")}.IsBinary())
	assert.False(Production{NT("A"), T("b")}.IsBinary())
}

func Test_CNF_Binary(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	cnf := MustNormalize(MustParse("S -> A b c | ε; A -> a"))

	data, err := cnf.MarshalBinary()
	require.NoError(err)

	var decoded CNF
	err = decoded.UnmarshalBinary(data)
	require.NoError(err)

	assert.True(cnf.Equal(decoded), "expected:\n%s\n\nactual:\n%s", cnf.String(), decoded.String())
	assert.Equal(cnf.StartSymbol(), decoded.StartSymbol())
	assert.NoError(decoded.Check())
}

func Test_UnmarshalBinary_CorruptCounts(t *testing.T) {
	g := MustParse("S -> a")

	join := func(parts ...[]byte) []byte {
		var data []byte
		for _, p := range parts {
			data = append(data, p...)
		}
		return data
	}

	testCases := []struct {
		name   string
		data   []byte
		target interface{ UnmarshalBinary([]byte) error }
	}{
		{
			name:   "production with negative symbol count",
			data:   rezi.EncInt(-1),
			target: &Production{},
		},
		{
			name:   "production with more symbols than bytes",
			data:   rezi.EncInt(1 << 20),
			target: &Production{},
		},
		{
			name:   "rule with negative production count",
			data:   join(rezi.EncString("S"), rezi.EncInt(-3)),
			target: &Rule{},
		},
		{
			name:   "grammar with negative rule count",
			data:   join(rezi.EncString("S"), rezi.EncInt(-2)),
			target: &Grammar{},
		},
		{
			name:   "cnf with negative nullable count",
			data:   join(rezi.EncBinary(g), rezi.EncString("S"), rezi.EncInt(-5)),
			target: &CNF{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			var err error
			assert.NotPanics(func() {
				err = tc.target.UnmarshalBinary(tc.data)
			})
			assert.Error(err)
		})
	}
}
