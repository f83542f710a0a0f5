package gramfile

import (
	_ "embed"
	"fmt"
)

//go:embed builtin/english.toml
var builtinEnglish []byte

// Builtin returns the definition that is used when no grammar file is given: a
// small fragment of English with pronouns, determiners, transitive and
// intransitive verbs, and prepositional phrases.
func Builtin() Definition {
	def, err := Parse(builtinEnglish)
	if err != nil {
		panic(fmt.Sprintf("built-in grammar is invalid: %v", err))
	}
	return def
}

// BuiltinSource returns the grammar file that Builtin is loaded from.
func BuiltinSource() []byte {
	src := make([]byte, len(builtinEnglish))
	copy(src, builtinEnglish)
	return src
}
