// Package input reads lines of console input for the chomsky CLI, either from
// a plain stream or from an interactive terminal with line editing.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// DefaultPrompt is the prompt shown by an InteractiveReader until it is
// changed with SetPrompt.
const DefaultPrompt = "> "

// DirectReader implements command.Reader and reads lines from any generic
// input stream directly. It does not sanitize the input of control and escape
// sequences, which makes it the right choice for piped input and tests.
//
// DirectReader should not be used directly; instead, create one with
// [NewDirectReader].
type DirectReader struct {
	r             *bufio.Reader
	blanksAllowed bool
}

// InteractiveReader implements command.Reader and reads lines from stdin using
// a go implementation of the GNU Readline library. This keeps input clear of
// all typing and editing escape sequences and enables the use of history. It
// should only be used when directly connected to a TTY.
//
// InteractiveReader should not be used directly; instead, create one with
// [NewInteractiveReader].
type InteractiveReader struct {
	rl            *readline.Instance
	blanksAllowed bool
	prompt        string
}

// NewDirectReader creates a DirectReader that buffers reads from r.
func NewDirectReader(r io.Reader) *DirectReader {
	return &DirectReader{
		r: bufio.NewReader(r),
	}
}

// NewInteractiveReader creates a new InteractiveReader and initializes
// readline. The returned InteractiveReader must have Close() called on it
// before disposal to properly teardown readline resources.
func NewInteractiveReader() (*InteractiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: DefaultPrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveReader{
		rl:     rl,
		prompt: DefaultPrompt,
	}, nil
}

// Close does nothing for a DirectReader; it exists so that DirectReader
// satisfies command.Reader.
func (dr *DirectReader) Close() error {
	return nil
}

// Close cleans up readline resources associated with the InteractiveReader.
func (ir *InteractiveReader) Close() error {
	return ir.rl.Close()
}

// ReadCommand reads the next line from the stream with surrounding whitespace
// removed. Unless blank lines are allowed, this function blocks until a line
// containing non-space characters is read.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error.
func (dr *DirectReader) ReadCommand() (string, error) {
	return readNonBlank(func() (string, error) {
		return dr.r.ReadString('\n')
	}, dr.blanksAllowed)
}

// ReadCommand reads the next line from the terminal with surrounding
// whitespace removed. Unless blank lines are allowed, this function blocks
// until a line containing non-space characters is read.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error.
func (ir *InteractiveReader) ReadCommand() (string, error) {
	return readNonBlank(ir.rl.Readline, ir.blanksAllowed)
}

func readNonBlank(readLine func() (string, error), blanksAllowed bool) (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = readLine()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)

		if line == "" && blanksAllowed {
			return line, nil
		}
	}

	return line, nil
}

// AllowBlank sets whether blank lines are returned. By default they are not.
func (dr *DirectReader) AllowBlank(allow bool) {
	dr.blanksAllowed = allow
}

// AllowBlank sets whether blank lines are returned. By default they are not.
func (ir *InteractiveReader) AllowBlank(allow bool) {
	ir.blanksAllowed = allow
}

// SetPrompt updates the prompt to the given text.
func (ir *InteractiveReader) SetPrompt(p string) {
	ir.prompt = p
	ir.rl.SetPrompt(p)
}

// GetPrompt gets the current prompt.
func (ir *InteractiveReader) GetPrompt() string {
	return ir.prompt
}
