// Package chomsky contains a CLI-driven engine that loads a context-free
// grammar, converts it to Chomsky Normal Form, and then reads sentences and
// commands continuously, parsing each sentence with CYK, until the user quits.
package chomsky

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/dekarrin/chomsky/internal/clierr"
	"github.com/dekarrin/chomsky/internal/command"
	"github.com/dekarrin/chomsky/internal/cyk"
	"github.com/dekarrin/chomsky/internal/gramfile"
	"github.com/dekarrin/chomsky/internal/grammar"
	"github.com/dekarrin/chomsky/internal/input"
	"github.com/dekarrin/chomsky/internal/tokens"
	"github.com/dekarrin/chomsky/internal/util"
	"github.com/dekarrin/rosed"
)

// DefaultWidth is the width output is wrapped to if no width is given.
const DefaultWidth = 80

const separatorChar = "="

var commandHelp = [][2]string{
	{"PARSE [SENTENCE]", "check whether a sentence is in the grammar and show its parse tree; typing a sentence by itself does the same"},
	{"TABLE [SENTENCE]", "show the CYK table built for a sentence"},
	{"EXAMPLES", "run the example sentences that come with the grammar"},
	{"VOCAB", "show the words the grammar knows"},
	{"INTERACTIVE", "test several sentences in a row; a blank line ends the session"},
	{"CNF", "show the grammar after conversion to Chomsky Normal Form"},
	{"HELP", "show this help"},
	{"QUIT", "exit the program"},
}

// Options is the configuration of an Engine.
type Options struct {
	// GrammarFile is the grammar or manifest file to load. If empty, the
	// built-in English grammar is used.
	GrammarFile string

	// ForceDirect disables readline even when attached to a terminal.
	ForceDirect bool

	// Parallel fills each span length of the CYK table concurrently.
	Parallel bool

	// Width is the column that output is wrapped at. DefaultWidth is used if
	// it is less than 1.
	Width int

	// Verbose enables DEBUG log output.
	Verbose bool
}

// Engine contains the things needed to run grammar checks from an interactive
// shell attached to an input stream and an output stream.
type Engine struct {
	def         gramfile.Definition
	cnf         grammar.CNF
	parser      *cyk.Parser
	in          command.Reader
	out         *bufio.Writer
	useReadline bool
	opts        Options
	running     bool
}

// New creates a new engine ready to operate on the given input and output
// streams. It will immediately open a buffered reader on the input stream and a
// buffered writer on the output stream.
//
// If nil is given for the input stream, a bufio.Reader is opened on stdin. If
// nil is given for the output stream, a bufio.Writer is opened on stdout.
func New(inputStream io.Reader, outputStream io.Writer, opts Options) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}
	if opts.Width < 1 {
		opts.Width = DefaultWidth
	}

	var def gramfile.Definition
	var err error
	if opts.GrammarFile == "" {
		def = gramfile.Builtin()
	} else {
		def, err = gramfile.LoadBundle(opts.GrammarFile)
		if err != nil {
			return nil, clierr.Wrapf(err, "Could not load the grammar in %q: %v", opts.GrammarFile, err)
		}
	}

	cnf, err := grammar.Normalize(def.Grammar)
	if err != nil {
		return nil, clierr.Wrap(err, "The grammar cannot be converted to Chomsky Normal Form: "+err.Error(), "normalizing grammar: "+err.Error())
	}
	parser, err := cyk.New(cnf)
	if err != nil {
		return nil, fmt.Errorf("creating parser: %w", err)
	}

	if opts.Verbose {
		log.Printf("DEBUG loaded grammar %q: %d rules, %d productions", def.Name, len(def.Grammar.NonTerminals()), def.Grammar.Len())
		log.Printf("DEBUG normalized grammar: %d rules, %d productions, start %s", len(cnf.NonTerminals()), cnf.Len(), cnf.StartSymbol())
	}
	if len(cnf.Nullable) > 0 {
		log.Printf("WARN  grammar has nullable non-terminals %s; sentences that need them to derive nothing will be rejected", util.MakeTextList(cnf.Nullable, false))
	}

	eng := &Engine{
		def:         def,
		cnf:         cnf,
		parser:      parser,
		out:         bufio.NewWriter(outputStream),
		opts:        opts,
		useReadline: !opts.ForceDirect && inputStream == os.Stdin && outputStream == os.Stdout,
	}

	if eng.useReadline {
		eng.in, err = input.NewInteractiveReader()
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		eng.in = input.NewDirectReader(inputStream)
	}

	return eng, nil
}

// Close closes all resources associated with the Engine, including any
// readline-related resources created for interactive mode.
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running engine")
	}

	err := eng.in.Close()
	if err != nil {
		return fmt.Errorf("close command reader: %w", err)
	}

	return nil
}

// RunUntilQuit begins reading commands from the streams and executing them
// until the QUIT command is received or input ends.
func (eng *Engine) RunUntilQuit() error {
	name := eng.def.Name
	if name == "" {
		name = "(unnamed)"
	}

	introMsg := eng.banner("CYK PARSER")
	if eng.opts.ForceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += fmt.Sprintf("Grammar: %s, converted to Chomsky Normal Form\n", name)
	introMsg += "Type a sentence to check it, or HELP for the list of commands.\n"

	if err := eng.write(introMsg); err != nil {
		return err
	}

	eng.running = true
	defer func() {
		eng.running = false
	}()

	for eng.running {
		cmd, err := command.Get(eng.in, eng.out)
		if err != nil {
			if isEOF(err) {
				break
			}
			return fmt.Errorf("get user command: %w", err)
		}

		if cmd.Verb == "QUIT" {
			eng.running = false
			break
		}

		err = eng.Execute(cmd)
		if err != nil {
			if isEOF(err) {
				break
			}
			consoleMessage := clierr.ConsoleMessage(err)
			consoleMessage = rosed.Edit(consoleMessage).Wrap(eng.opts.Width).String()
			if err := eng.write(consoleMessage + "\n"); err != nil {
				return err
			}
		}
	}

	return eng.write("Goodbye\n")
}

// Execute runs a single command. QUIT is not handled here; it is up to the
// caller to stop when it is received.
func (eng *Engine) Execute(cmd command.Command) error {
	switch cmd.Verb {
	case "PARSE":
		return eng.parseSentence(cmd.Sentence)
	case "TABLE":
		return eng.showTable(cmd.Sentence)
	case "EXAMPLES":
		return eng.runExamples()
	case "VOCAB":
		return eng.showVocabulary()
	case "INTERACTIVE":
		return eng.runInteractive()
	case "CNF":
		return eng.showCNF()
	case "HELP":
		return eng.showHelp(cmd.Sentence)
	default:
		return clierr.Newf("I don't know how to %q", cmd.Verb)
	}
}

func (eng *Engine) parse(sentence string) cyk.Result {
	words := tokens.Split(sentence)

	var res cyk.Result
	if eng.opts.Parallel {
		res = eng.parser.ParseParallel(words)
	} else {
		res = eng.parser.Parse(words)
	}

	if eng.opts.Verbose {
		log.Printf("DEBUG parsed %d tokens in %s (accepted=%t)", len(words), res.Elapsed, res.Accepted)
	}
	return res
}

func (eng *Engine) promptSentence(sentence string) (string, error) {
	if strings.TrimSpace(sentence) != "" {
		return sentence, nil
	}

	msg := "Enter a sentence (or a blank line to go back)"
	if len(eng.def.Examples) > 0 {
		msg += fmt.Sprintf("\nExample: %s", eng.def.Examples[0].Sentence)
	}
	if err := eng.write(msg + "\n"); err != nil {
		return "", err
	}
	return eng.readLine("> ")
}

func (eng *Engine) parseSentence(sentence string) error {
	sentence, err := eng.promptSentence(sentence)
	if err != nil || sentence == "" {
		return err
	}

	res := eng.parse(sentence)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Analyzing: '%s'\n", sentence))
	sb.WriteString(eng.separator("-"))
	sb.WriteString(resultLine(res) + "\n")

	if res.Accepted {
		sb.WriteString("\nThe sentence is syntactically valid.\n\nParse tree:\n")
		sb.WriteString(cyk.BuildTree(res).String() + "\n")
	} else {
		sb.WriteString("\nThe sentence is not valid in this grammar.\n\nPossible reasons:\n")
		unknown := eng.unknownWords(res.Tokens)
		if len(unknown) > 0 {
			sb.WriteString(fmt.Sprintf("  * Words not in the vocabulary: %s\n", util.MakeTextList(unknown, true)))
		}
		if len(res.Tokens) == 0 {
			sb.WriteString("  * The sentence has no words\n")
		}
		sb.WriteString("  * Incorrect grammatical structure\n")
		sb.WriteString("  * Missing subject or predicate\n")
		sb.WriteString("\nTip: use VOCAB to see the words the grammar knows.\n")
	}

	return eng.write(sb.String())
}

func (eng *Engine) showTable(sentence string) error {
	sentence, err := eng.promptSentence(sentence)
	if err != nil || sentence == "" {
		return err
	}

	res := eng.parse(sentence)

	out := res.TableString(eng.opts.Width) + "\n"
	out += resultLine(res) + "\n"
	return eng.write(out)
}

func (eng *Engine) runExamples() error {
	if len(eng.def.Examples) < 1 {
		return clierr.Newf("The grammar %q does not come with any examples", eng.def.Name)
	}

	var sb strings.Builder
	sb.WriteString(eng.banner("EXAMPLES"))

	for i, ex := range eng.def.Examples {
		res := eng.parse(ex.Sentence)

		expected := "REJECT"
		if ex.Accept {
			expected = "ACCEPT"
		}

		sb.WriteString(fmt.Sprintf("[Example %d]\n", i+1))
		sb.WriteString(fmt.Sprintf("Sentence: '%s'\n", ex.Sentence))
		if ex.Description != "" {
			sb.WriteString(fmt.Sprintf("Description: %s\n", ex.Description))
		}
		sb.WriteString(fmt.Sprintf("Expected: %s\n", expected))
		sb.WriteString(resultLine(res) + "\n")
		if res.Accepted != ex.Accept {
			sb.WriteString("(result does not match the expectation)\n")
		}

		if res.Accepted {
			sb.WriteString("\nParse tree:\n")
			sb.WriteString(cyk.BuildTree(res).Indented() + "\n")
		}
		sb.WriteString(eng.separator("-"))
		sb.WriteRune('\n')
	}

	return eng.write(sb.String())
}

func (eng *Engine) showVocabulary() error {
	var defs [][2]string
	for _, vc := range eng.def.Vocabulary {
		defs = append(defs, [2]string{vc.Category, strings.Join(vc.Words, ", ")})
	}
	if len(defs) == 0 {
		defs = append(defs, [2]string{"Terminals", strings.Join(eng.def.Grammar.Terminals(), ", ")})
	}

	ed := rosed.
		Edit("").
		WithOptions(rosed.Options{ParagraphSeparator: "\n"}).
		InsertDefinitionsTable(0, defs, eng.opts.Width)

	out := eng.banner("VOCABULARY") + ed.String() + "\n"

	if len(eng.def.Notes) > 0 {
		out += "\n" + eng.banner("SENTENCE STRUCTURE")
		for _, n := range eng.def.Notes {
			out += "  " + n + "\n"
		}
	}

	return eng.write(out)
}

func (eng *Engine) runInteractive() error {
	intro := eng.banner("INTERACTIVE MODE")
	intro += "Test as many sentences as you like.\n"
	intro += "Type QUIT or enter a blank line to finish.\n"
	if err := eng.write(intro); err != nil {
		return err
	}

	count := 0
	for {
		sentence, err := eng.readLine(fmt.Sprintf("\nSentence #%d: ", count+1))
		if err != nil && !isEOF(err) {
			return err
		}

		if sentence == "" || strings.EqualFold(sentence, "quit") || strings.EqualFold(sentence, "exit") {
			return eng.write(fmt.Sprintf("\nTotal sentences tested: %d\n", count))
		}

		count++
		res := eng.parse(sentence)

		out := fmt.Sprintf("Analyzing: '%s'\n", sentence)
		out += resultLine(res) + "\n"
		if err := eng.write(out); err != nil {
			return err
		}

		if res.Accepted {
			answer, err := eng.readLine("Show the parse tree? (y/n): ")
			if err != nil && !isEOF(err) {
				return err
			}
			if strings.HasPrefix(strings.ToLower(answer), "y") {
				if err := eng.write("\nParse tree:\n" + cyk.BuildTree(res).Indented() + "\n"); err != nil {
					return err
				}
			}
		}
	}
}

func (eng *Engine) showCNF() error {
	rules := eng.cnf.Rules()
	start := eng.cnf.StartSymbol()

	sorted := util.SortBy(rules, func(l, r grammar.Rule) bool {
		if l.NonTerminal == start {
			return r.NonTerminal != start
		}
		if r.NonTerminal == start {
			return false
		}
		return l.NonTerminal < r.NonTerminal
	})

	var sb strings.Builder
	sb.WriteString(eng.banner("GRAMMAR IN CHOMSKY NORMAL FORM"))
	sb.WriteString(fmt.Sprintf("Start symbol: %s (from %s)\n\n", start, eng.cnf.Origin))
	for _, r := range sorted {
		sb.WriteString("  " + r.String() + "\n")
	}
	sb.WriteString(fmt.Sprintf("\n%d non-terminals, %d productions\n", len(rules), eng.cnf.Len()))
	if len(eng.cnf.Nullable) > 0 {
		sb.WriteString(fmt.Sprintf("Nullable (empty productions dropped): %s\n", util.MakeTextList(eng.cnf.Nullable, false)))
	}

	return eng.write(sb.String())
}

func (eng *Engine) showHelp(topic string) error {
	if topic != "" {
		for _, h := range commandHelp {
			verb := strings.Fields(h[0])[0]
			if verb == topic || command.ExpandAliases([]string{topic}, 1)[0] == verb {
				return eng.write(rosed.Edit(h[0]+": "+h[1]).Wrap(eng.opts.Width).String() + "\n")
			}
		}
		return clierr.Newf("There is no help for %q", topic)
	}

	ed := rosed.
		Edit("").
		WithOptions(rosed.Options{ParagraphSeparator: "\n"}).
		InsertDefinitionsTable(0, commandHelp, eng.opts.Width)
	output := ed.
		Insert(0, "Here are the commands you can use:\n").
		String()

	return eng.write(output + "\n")
}

func (eng *Engine) unknownWords(words []string) []string {
	var unknown []string
	seen := util.NewKeySet[string]()
	for _, tok := range words {
		if !eng.parser.Knows(tok) && !seen.Has(tok) {
			seen.Add(tok)
			unknown = append(unknown, tok)
		}
	}
	return unknown
}

// readLine reads a single line that may be blank, showing the given prompt.
func (eng *Engine) readLine(prompt string) (string, error) {
	var oldPrompt string
	if eng.useReadline {
		ir := eng.in.(*input.InteractiveReader)
		oldPrompt = ir.GetPrompt()
		ir.SetPrompt(prompt)
		defer ir.SetPrompt(oldPrompt)
	} else if prompt != "" {
		if err := eng.write(prompt); err != nil {
			return "", err
		}
	}

	eng.in.AllowBlank(true)
	line, err := eng.in.ReadCommand()
	eng.in.AllowBlank(false)
	return line, err
}

func (eng *Engine) write(s string) error {
	if _, err := eng.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := eng.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}

func (eng *Engine) separator(ch string) string {
	return strings.Repeat(ch, eng.opts.Width) + "\n"
}

func (eng *Engine) banner(title string) string {
	return eng.separator(separatorChar) + title + "\n" + eng.separator(separatorChar)
}

func resultLine(res cyk.Result) string {
	verdict := "NO, the sentence is rejected"
	if res.Accepted {
		verdict = "YES, the sentence is accepted"
	}
	return fmt.Sprintf("Result: %s | Time: %.6f seconds", verdict, res.Elapsed.Seconds())
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF)
}
