package gramfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// manifStack is for two reasons ->
// * detect circular deps (not an error, but we need to know to avoid them)
// * avoid infinite recursion (allow up to MaxManifestRecursionDepth levels)
//
// Returns ErrManifestEmpty if and only if the first manifest in the stack is
// empty, otherwise it is not an error.
func recursiveUnmarshalResource(path string, manifStack []string) (data topLevelGrammarData, err error) {
	path = filepath.Clean(path)

	fileData, loadErr := os.ReadFile(path)
	if loadErr != nil {
		return topLevelGrammarData{}, fmt.Errorf("%q: reading from disk: %w", path, loadErr)
	}

	fileInfo, err := ScanFileInfo(fileData)
	if err != nil {
		return topLevelGrammarData{}, fmt.Errorf("%q: detecting file type: %w", path, err)
	}

	if strings.ToUpper(fileInfo.Format) != FormatName {
		return topLevelGrammarData{}, fmt.Errorf("%q: file does not have a 'format = \"%s\"' entry", path, FormatName)
	}

	fileType := strings.ToUpper(fileInfo.Type)
	switch fileType {
	case TypeGrammar:
		unmarshaled, err := unmarshalGrammarData(fileData)
		if err != nil {
			return unmarshaled, fmt.Errorf("grammar file %q: %w", path, err)
		}
		return unmarshaled, nil
	case TypeManifest:
		// check the stack to be sure we havent recursed too far and to be sure
		// we aren't about to re-scan a circular-ref'd manifest file we've
		// already brought in.
		if len(manifStack) >= MaxManifestRecursionDepth {
			return topLevelGrammarData{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestStackOverflow)
		}
		for i := range manifStack {
			if manifStack[i] == path {
				return topLevelGrammarData{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestCircularRef)
			}
		}

		unmarshaledManif, err := unmarshalManifest(fileData)
		if err != nil {
			return topLevelGrammarData{}, fmt.Errorf("manifest file %q: %w", path, err)
		}
		manif := parseManifest(unmarshaledManif)

		// an empty manifest is only a problem for the very first manifest.
		if len(manif.Files) < 1 && len(manifStack) == 0 {
			return topLevelGrammarData{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestEmpty)
		}

		unmarshaled := topLevelGrammarData{}

		manifSubStack := make([]string, len(manifStack)+1)
		copy(manifSubStack, manifStack)
		manifSubStack[len(manifSubStack)-1] = path

		manifDir := filepath.Dir(path)

		// count of non-skipped files so we can error on the specific case of
		// first file was manifest and referred only to skipped files
		processedFiles := 0

		for _, manifRelPath := range manif.Files {
			includedFilePath := filepath.Join(manifDir, manifRelPath)

			included, err := recursiveUnmarshalResource(includedFilePath, manifSubStack)
			if err != nil {
				// a circular reference is skipped rather than failing the load.
				if errors.Is(err, ErrManifestCircularRef) {
					continue
				}

				return topLevelGrammarData{}, fmt.Errorf("in file referred to by manifest file:\n    %q\n%w", path, err)
			}

			if err := combine(&unmarshaled, included); err != nil {
				return unmarshaled, fmt.Errorf("grammar file %q: %w", includedFilePath, err)
			}
			processedFiles++
		}

		if len(manifStack) == 0 && processedFiles == 0 {
			return unmarshaled, fmt.Errorf("manifest file %q: %w", path, ErrManifestEmpty)
		}
		return unmarshaled, nil

	default:
		return topLevelGrammarData{}, fmt.Errorf("%q: file does not have 'type = ' entry set to either %q or %q", path, TypeGrammar, TypeManifest)
	}
}

// combine merges src into dest. The name and start symbol may only be set by
// one of the files that are combined. Terminal lists are not merged; each rule
// already carries the list of the file it came from.
func combine(dest *topLevelGrammarData, src topLevelGrammarData) error {
	if src.Grammar.Name != "" {
		if dest.Grammar.Name != "" && dest.Grammar.Name != src.Grammar.Name {
			return fmt.Errorf("duplicate name; name has already been defined as %q", dest.Grammar.Name)
		}
		dest.Grammar.Name = src.Grammar.Name
	}
	if src.Grammar.Start != "" {
		if dest.Grammar.Start != "" && dest.Grammar.Start != src.Grammar.Start {
			return fmt.Errorf("duplicate start; start has already been defined as %q", dest.Grammar.Start)
		}
		dest.Grammar.Start = src.Grammar.Start
	}

	dest.Grammar.Notes = append(dest.Grammar.Notes, src.Grammar.Notes...)
	dest.Rules = append(dest.Rules, src.Rules...)
	dest.Vocab = append(dest.Vocab, src.Vocab...)
	dest.Examples = append(dest.Examples, src.Examples...)

	return nil
}

// unmarshalGrammarData unmarshals grammar data from the given bytes. It does
// not parse or check the grammar.
func unmarshalGrammarData(tomlData []byte) (topLevelGrammarData, error) {
	var gf topLevelGrammarData
	if tomlErr := toml.Unmarshal(tomlData, &gf); tomlErr != nil {
		return gf, tomlErr
	}

	if strings.ToUpper(gf.Format) != FormatName {
		return gf, fmt.Errorf("in header: 'format' key must exist and be set to %q", FormatName)
	}
	if strings.ToUpper(gf.Type) != TypeGrammar {
		return gf, fmt.Errorf("in header: 'type' must exist and be set to %q", TypeGrammar)
	}

	for i := range gf.Rules {
		gf.Rules[i].terminals = gf.Grammar.Terminals
	}

	return gf, nil
}

// unmarshalManifest unmarshals a manifest from the given bytes.
func unmarshalManifest(tomlData []byte) (topLevelManifest, error) {
	var gf topLevelManifest
	if tomlErr := toml.Unmarshal(tomlData, &gf); tomlErr != nil {
		return gf, tomlErr
	}

	if strings.ToUpper(gf.Format) != FormatName {
		return gf, fmt.Errorf("in header: 'format' key must exist and be set to %q", FormatName)
	}
	if strings.ToUpper(gf.Type) != TypeManifest {
		return gf, fmt.Errorf("in header: 'type' must exist and be set to %q", TypeManifest)
	}

	return gf, nil
}
