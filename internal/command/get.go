package command

import (
	"bufio"
	"fmt"

	"github.com/dekarrin/chomsky/internal/clierr"
)

// Reader gives lines of console input, one per call.
type Reader interface {
	// ReadCommand blocks until a line is ready. It returns "", io.EOF once
	// input is exhausted; a final line without a newline is returned with a
	// nil error first. Blank lines are skipped unless AllowBlank(true) was
	// called.
	ReadCommand() (string, error)

	AllowBlank(allow bool)
	Close() error
}

// Get reads lines from r until one parses as a Command with a verb. Lines that
// do not parse are reported on out with a pointer to HELP. Whether the command
// can run against the loaded grammar is not checked.
func Get(r Reader, out *bufio.Writer) (Command, error) {
	for {
		line, err := r.ReadCommand()
		if err != nil {
			return Command{}, fmt.Errorf("could not get input: %w", err)
		}

		cmd, err := ParseCommand(line)
		if err == nil {
			if cmd.Verb == "" {
				continue
			}
			return cmd, nil
		}

		fmt.Fprintf(out, "%v\nTry HELP for valid commands\n", clierr.ConsoleMessage(err))
		if err := out.Flush(); err != nil {
			return Command{}, fmt.Errorf("could not write output: %w", err)
		}
	}
}
