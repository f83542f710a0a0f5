/*
Chomsky starts an interactive grammar-checking session.

It reads in a grammar file, converts the grammar to Chomsky Normal Form, and
then reads sentences and commands from stdin, checking each sentence with the
CYK algorithm and printing the result to stdout, until the "QUIT" command is
input.

Usage:

	chomsky [flags]

The flags are:

	--version
		Give the current version of chomsky and then exit.

	-g, --grammar FILE
		Use the provided grammar or manifest file. If not given, the built-in
		English grammar is used.

	-d, --direct
		Force reading directly from the console as opposed to using GNU readline
		based routines for reading command input even if launched in a tty with
		stdin and stdout.

	-p, --parallel
		Fill each span length of the CYK table concurrently.

	-w, --width COLUMNS
		Wrap output at the given column. Defaults to 80.

	-v, --verbose
		Print DEBUG log lines to stderr.

Once a session has started, the user input will be parsed for commands. Any
input that does not start with a command is checked as a sentence. For an
explanation of the commands, type "HELP" once in a session. To exit, type
"QUIT".
*/
package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/chomsky"
	"github.com/dekarrin/chomsky/internal/clierr"
	"github.com/dekarrin/chomsky/internal/version"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitSessionError indicates an unsuccessful program execution due to a
	// problem during the session.
	ExitSessionError

	// ExitInitError indicates an unsuccessful program execution due to an issue
	// initializing the engine.
	ExitInitError
)

var (
	returnCode   int = ExitSuccess
	flagVersion      = pflag.Bool("version", false, "Give the current version of chomsky and then exit.")
	flagGrammar      = pflag.StringP("grammar", "g", "", "The grammar or manifest file to load. Defaults to the built-in English grammar.")
	flagDirect       = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible.")
	flagParallel     = pflag.BoolP("parallel", "p", false, "Fill each span length of the CYK table concurrently.")
	flagWidth        = pflag.IntP("width", "w", chomsky.DefaultWidth, "Wrap output at the given column.")
	flagVerbose      = pflag.BoolP("verbose", "v", false, "Print DEBUG log lines to stderr.")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic(panicErr)
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		returnCode = ExitInitError
		return
	}

	opts := chomsky.Options{
		GrammarFile: *flagGrammar,
		ForceDirect: *flagDirect,
		Parallel:    *flagParallel,
		Width:       *flagWidth,
		Verbose:     *flagVerbose,
	}

	eng, initErr := chomsky.New(os.Stdin, os.Stdout, opts)
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", clierr.ConsoleMessage(initErr))
		returnCode = ExitInitError
		return
	}
	defer eng.Close()

	err := eng.RunUntilQuit()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitSessionError
		return
	}
}
