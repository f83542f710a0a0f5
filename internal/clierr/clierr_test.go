package clierr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ConsoleMessage(t *testing.T) {
	cause := errors.New("disk on fire")

	testCases := []struct {
		name   string
		err    error
		expect string
	}{
		{
			name:   "plain error",
			err:    errors.New("plain"),
			expect: "plain",
		},
		{
			name:   "console error",
			err:    Newf("I don't know how to %q", "DANCE"),
			expect: `I don't know how to "DANCE"`,
		},
		{
			name:   "wrapped by fmt",
			err:    fmt.Errorf("handling input: %w", New("Try again", "bad input")),
			expect: "Try again",
		},
		{
			name:   "wraps a cause",
			err:    Wrapf(cause, "Could not load %s", "grammar.toml"),
			expect: "Could not load grammar.toml",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := ConsoleMessage(tc.err)

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Wrap_Unwraps(t *testing.T) {
	assert := assert.New(t)

	cause := errors.New("disk on fire")
	err := Wrap(cause, "Could not load the grammar", "")

	assert.ErrorIs(err, cause)
	assert.Equal("Could not load the grammar: disk on fire", err.Error())
}
