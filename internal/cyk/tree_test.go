package cyk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_BuildTree(t *testing.T) {
	testCases := []struct {
		name     string
		sentence string
		expect   []string
	}{
		{
			name:     "transitive verb",
			sentence: "she eats a cake",
			expect: []string{
				`( S )`,
				`  |---: ( NP )`,
				`  |       \---: (TERM "she")`,
				`  \---: ( VP )`,
				`          |---: ( V )`,
				`          |       \---: (TERM "eats")`,
				`          \---: ( NP )`,
				`                  |---: ( Det )`,
				`                  |       \---: (TERM "a")`,
				`                  \---: ( N )`,
				`                          \---: (TERM "cake")`,
			},
		},
		{
			name:     "intransitive verb",
			sentence: "she eats",
			expect: []string{
				`( S )`,
				`  |---: ( NP )`,
				`  |       \---: (TERM "she")`,
				`  \---: ( VP )`,
				`          \---: (TERM "eats")`,
			},
		},
	}

	p := testEnglishParser(t)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			// setup
			res := p.Parse(strings.Fields(tc.sentence))

			// execute
			actual := BuildTree(res)

			// assert
			if !assert.NotNil(actual) {
				return
			}
			assert.Equal(strings.Join(tc.expect, "\n"), actual.String())
		})
	}
}

func Test_BuildTree_IsDeterministic(t *testing.T) {
	assert := assert.New(t)

	p := testEnglishParser(t)
	tokens := strings.Fields("the dog eats the meat with a fork in the oven")

	first := BuildTree(p.Parse(tokens))
	second := BuildTree(p.Parse(tokens))

	if assert.NotNil(first) {
		assert.True(first.Equal(second))
		assert.Equal(first.String(), second.String())
		assert.Equal(tokens, first.Leaves())
	}
}

func Test_Tree_Indented(t *testing.T) {
	assert := assert.New(t)

	p := testEnglishParser(t)

	tree := BuildTree(p.Parse(strings.Fields("she eats a cake")))
	if !assert.NotNil(tree) {
		return
	}

	expect := strings.Join([]string{
		"S",
		"  NP -> she",
		"  VP",
		"    V -> eats",
		"    NP",
		"      Det -> a",
		"      N -> cake",
	}, "\n")

	assert.Equal(expect, tree.Indented())
}

func Test_Tree_Equal(t *testing.T) {
	assert := assert.New(t)

	leaf := &Tree{Symbol: "NP", Terminal: "she"}
	tree := &Tree{Symbol: "S", Left: leaf, Right: &Tree{Symbol: "VP", Terminal: "eats"}}
	same := &Tree{Symbol: "S", Left: &Tree{Symbol: "NP", Terminal: "she"}, Right: &Tree{Symbol: "VP", Terminal: "eats"}}
	different := &Tree{Symbol: "S", Left: &Tree{Symbol: "NP", Terminal: "he"}, Right: &Tree{Symbol: "VP", Terminal: "eats"}}

	assert.True(tree.Equal(same))
	assert.True(tree.Equal(*same))
	assert.False(tree.Equal(different))
	assert.False(tree.Equal(leaf))
	assert.False(tree.Equal("S"))
}
