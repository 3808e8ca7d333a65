// Package vocab holds the fixed descriptor tables of the prompt platform.
//
// The tables are parsed once from an embedded YAML document and never
// mutated afterwards; accessors hand out copies.
package vocab

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

//go:embed vocab.yaml
var vocabYAML []byte

// Vocabulary is the parsed form of vocab.yaml.
type Vocabulary struct {
	SkinTones         []string `yaml:"skin_tones" json:"skin_tones"`
	Hair              []string `yaml:"hair" json:"hair"`
	FacialStructures  []string `yaml:"facial_structures" json:"facial_structures"`
	Eyes              []string `yaml:"eyes" json:"eyes"`
	Lighting          []string `yaml:"lighting" json:"lighting"`
	ForbiddenWords    []string `yaml:"forbidden_words" json:"forbidden_words"`
	GenericIdentities []string `yaml:"generic_identities" json:"generic_identities"`
}

type tables struct {
	vocab     Vocabulary
	generic   map[string]struct{}
	forbidden []forbiddenTerm
	// genericWords holds the generic identity entries of forbidden.
	genericWords []forbiddenTerm
}

type forbiddenTerm struct {
	term string
	re   *regexp.Regexp
}

var (
	loadOnce sync.Once
	loaded   *tables
	loadErr  error
)

func load() (*tables, error) {
	loadOnce.Do(func() {
		loaded, loadErr = parse(vocabYAML)
	})
	return loaded, loadErr
}

func parse(data []byte) (*tables, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	if len(v.GenericIdentities) == 0 {
		return nil, fmt.Errorf("parse vocabulary: generic_identities is empty")
	}
	t := &tables{vocab: v, generic: make(map[string]struct{}, len(v.GenericIdentities)*2)}
	for _, term := range v.GenericIdentities {
		folded := fold(term)
		t.generic[folded] = struct{}{}
		t.generic["a "+folded] = struct{}{}
	}
	for _, word := range append(append([]string(nil), v.ForbiddenWords...), v.GenericIdentities...) {
		re, err := regexp.Compile(`(?i)(^|[^\pL\pN])` + regexp.QuoteMeta(word) + `($|[^\pL\pN])`)
		if err != nil {
			return nil, fmt.Errorf("compile forbidden word %q: %w", word, err)
		}
		t.forbidden = append(t.forbidden, forbiddenTerm{term: word, re: re})
	}
	t.genericWords = t.forbidden[len(v.ForbiddenWords):]
	return t, nil
}

func mustLoad() *tables {
	t, err := load()
	if err != nil {
		panic(err)
	}
	return t
}

// fold builds a fresh Caser per call; Casers carry state and must not be
// shared between goroutines.
func fold(s string) string {
	return strings.Join(strings.Fields(cases.Fold().String(s)), " ")
}

// Default returns a copy of the embedded vocabulary.
func Default() Vocabulary {
	v := mustLoad().vocab
	return Vocabulary{
		SkinTones:         clone(v.SkinTones),
		Hair:              clone(v.Hair),
		FacialStructures:  clone(v.FacialStructures),
		Eyes:              clone(v.Eyes),
		Lighting:          clone(v.Lighting),
		ForbiddenWords:    clone(v.ForbiddenWords),
		GenericIdentities: clone(v.GenericIdentities),
	}
}

// IsGenericIdentity reports whether text is only a generic term such as
// "man" or "a woman" instead of a specific identity.
func IsGenericIdentity(text string) bool {
	_, ok := mustLoad().generic[fold(text)]
	return ok
}

// ContainsGenericIdentity reports whether a generic person term occurs
// anywhere in text as a whole word ("student" passes, "young woman" does
// not, "German" passes).
func ContainsGenericIdentity(text string) bool {
	for _, f := range mustLoad().genericWords {
		if f.re.MatchString(text) {
			return true
		}
	}
	return false
}

// ForbiddenWordsIn lists the forbidden words occurring in text as whole
// words, in table order.
func ForbiddenWordsIn(text string) []string {
	var found []string
	for _, f := range mustLoad().forbidden {
		if f.re.MatchString(text) {
			found = append(found, f.term)
		}
	}
	return found
}

func clone(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
