package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Split(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []string
	}{
		{name: "empty", input: "", expect: []string{}},
		{name: "mixed case", input: "She EATS a Cake", expect: []string{"she", "eats", "a", "cake"}},
		{name: "extra whitespace", input: "\the\t drinks\n the  beer ", expect: []string{"he", "drinks", "the", "beer"}},
		{name: "non-ascii", input: "ÉL COME", expect: []string{"él", "come"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := Split(tc.input)

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Fold(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "already folded", input: "paris", expect: "paris"},
		{name: "capitalized", input: "Paris", expect: "paris"},
		{name: "matches a split word", input: "ÉCOLE", expect: Split("école")[0]},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(tc.expect, Fold(tc.input))
		})
	}
}
