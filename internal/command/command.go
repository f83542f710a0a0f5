// Package command defines console command data types and handles parsing of
// commands and sentences from input sources.
package command

// Command is a valid command received from a console input source.
type Command struct {

	// Verb is the canonical name of the command being invoked, such as "PARSE",
	// "VOCAB", or "QUIT". Some verbs have shorthand forms which are typed
	// differently, for instance "P" could be typed instead of "PARSE", or "0"
	// instead of "QUIT", and for all those cases they would result in a Command
	// with the canonical verb.
	Verb string

	// Sentence is the text given after the verb, with its original case and
	// with whitespace collapsed. It is only set for verbs that take a sentence
	// or a topic, such as "PARSE" and "HELP".
	Sentence string
}
