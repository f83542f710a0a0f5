package input

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DirectReader_ReadCommand(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		allowBlank  bool
		expectLines []string
	}{
		{
			name:        "skips blank lines",
			input:       "parse\n\n   \nquit\n",
			expectLines: []string{"parse", "quit"},
		},
		{
			name:        "returns blank lines when allowed",
			input:       "she eats\n\nquit",
			allowBlank:  true,
			expectLines: []string{"she eats", "", "quit"},
		},
		{
			name:        "last line without newline",
			input:       "  he drinks the beer  ",
			expectLines: []string{"he drinks the beer"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			r := NewDirectReader(strings.NewReader(tc.input))
			r.AllowBlank(tc.allowBlank)
			defer r.Close()

			var actual []string
			for {
				line, err := r.ReadCommand()
				if err == io.EOF {
					break
				}
				if !assert.NoError(err) {
					return
				}
				actual = append(actual, line)
			}

			assert.Equal(tc.expectLines, actual)
		})
	}
}
