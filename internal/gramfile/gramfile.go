// Package gramfile has functions for loading grammars using the CHOMSKY
// grammar file format, a TOML-based format that defines a context-free
// grammar along with the vocabulary and example sentences that go with it.
package gramfile

import (
	"errors"
	"os"
	"unicode"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/chomsky/internal/grammar"
)

const MaxManifestRecursionDepth = 32

const (
	FormatName   = "CHOMSKY"
	TypeGrammar  = "GRAMMAR"
	TypeManifest = "MANIFEST"
)

var (
	// ErrManifestEmpty is the error returned when a manifest file is read
	// successfully but specifies no additional files to load.
	ErrManifestEmpty = errors.New("does not list any valid files to include")

	// ErrManifestStackOverflow is the error returned when the recusion level of
	// MaxManifestRecursionDepth is reached and an additional Manifest is then
	// specified, which would cause recursion to go deeper.
	ErrManifestStackOverflow = errors.New("too many manifests deep")

	// ErrManifestCircularRef is the error returned when a manifest specifies any
	// series of files that with their own manifests refer back to the original
	// manifest, and therefore cannot be followed.
	ErrManifestCircularRef = errors.New("manifest inclusion chain refers back to itself")
)

// Manifest contains data loaded from a manifest file.
type Manifest struct {
	Files []string
}

// VocabCategory is a named group of words that the grammar accepts.
type VocabCategory struct {
	Category string
	Words    []string
}

// Example is a sentence shipped with a grammar along with whether the grammar
// is expected to accept it.
type Example struct {
	Sentence    string
	Accept      bool
	Description string
}

// Definition is a complete grammar loaded from one or more grammar files.
type Definition struct {
	// Name is the name given to the grammar.
	Name string

	// Grammar is the grammar itself. It is always closed; every non-terminal
	// it refers to has a rule.
	Grammar grammar.Grammar

	// Notes are free-form lines describing the structure of the grammar.
	Notes []string

	// Vocabulary is every word category listed for the grammar, in the order
	// they were defined.
	Vocabulary []VocabCategory

	// Examples are sentences to demonstrate the grammar with.
	Examples []Example
}

// FileInfo contains the essential information all CHOMSKY format files must
// contain. It can be obtained from a file by reading it into memory and calling
// ScanFileInfo on the bytes.
type FileInfo struct {
	Format string `toml:"format"`
	Type   string `toml:"type"`
}

// LoadBundle loads a grammar definition from the given file. The file's type
// is auto-detected and decoding is handled appropriately; the type can either
// be "GRAMMAR" or "MANIFEST"; if it's manifest type, the files listed in it
// relative to it will also be loaded. All files included will be combined into
// one single definition before being checked, and if a manifest is encountered,
// all files in it are recursively included.
func LoadBundle(path string) (Definition, error) {
	unmarshaled, err := recursiveUnmarshalResource(path, nil)
	if err != nil {
		return Definition{}, err
	}

	return parseDefinition(unmarshaled)
}

// LoadManifestFile loads manifest data from a manifest file.
func LoadManifestFile(path string) (manif Manifest, err error) {
	manifestData, loadErr := os.ReadFile(path)
	if loadErr != nil {
		return manif, loadErr
	}

	unmarshaled, err := unmarshalManifest(manifestData)
	if err != nil {
		return manif, err
	}
	return parseManifest(unmarshaled), nil
}

// LoadGrammarFile loads a definition from a single grammar file. Manifests are
// not followed.
func LoadGrammarFile(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, err
	}

	return Parse(data)
}

// Parse reads a definition from the bytes of a single grammar file.
func Parse(data []byte) (Definition, error) {
	unmarshaled, err := unmarshalGrammarData(data)
	if err != nil {
		return Definition{}, err
	}

	return parseDefinition(unmarshaled)
}

// ScanFileInfo takes the given data bytes and attempts to read the common
// header info from it. The bytes are read up to the first instance of a table
// definition header and those bytes are parsed for the info. If there is an
// error reading the info, returns a non-nil error.
func ScanFileInfo(data []byte) (FileInfo, error) {
	// only run the toml parser up to the end of the top-lev table
	var topLevelEnd int = -1
	onNewLine := true
	for b := range data {
		if onNewLine {
			if data[b] == '[' {
				topLevelEnd = b
				break
			}
		}

		if data[b] == '\n' {
			onNewLine = true
		} else if !unicode.IsSpace(rune(data[b])) {
			onNewLine = false
		}
	}

	scanData := data
	if topLevelEnd != -1 {
		scanData = data[:topLevelEnd]
	}

	var info FileInfo
	err := toml.Unmarshal(scanData, &info)
	return info, err
}
