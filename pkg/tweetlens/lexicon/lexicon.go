package lexicon

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lexicon maps word variants to a canonical form before stemming.
// Tweets are full of spelling variants ("u", "ur", "gr8") that a stemmer
// cannot fold; the lexicon folds them so they count as the same token.
//
// Only single words are mapped. Phrases are discovered from the corpus,
// never declared, so multi-word variants are ignored on load.
type Lexicon struct {
	// canonical -> variants, canonical first
	groups map[string][]string
	// variant -> canonical
	reverse map[string]string
}

// New creates an empty lexicon.
func New() *Lexicon {
	return &Lexicon{
		groups:  make(map[string][]string),
		reverse: make(map[string]string),
	}
}

// LoadFromYAML loads variant groups from a YAML file.
//
// Expected format:
//
//	synonyms:
//	  - canonical: you
//	    variants: [u, ya, yu]
//	  - canonical: great
//	    variants: [gr8, grt]
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}

	var doc struct {
		Synonyms []struct {
			Canonical string   `yaml:"canonical"`
			Variants  []string `yaml:"variants"`
		} `yaml:"synonyms"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}

	lex := New()
	for _, entry := range doc.Synonyms {
		lex.AddGroup(entry.Canonical, entry.Variants)
	}
	return lex, nil
}

// AddGroup registers variants for a canonical word. Re-adding a canonical
// replaces its previous variants.
func (l *Lexicon) AddGroup(canonical string, variants []string) {
	canonical = normalizeWord(canonical)
	if canonical == "" || strings.Contains(canonical, " ") {
		return
	}

	if old, ok := l.groups[canonical]; ok {
		for _, v := range old {
			delete(l.reverse, v)
		}
	}

	group := []string{canonical}
	seen := map[string]bool{canonical: true}
	for _, v := range variants {
		v = normalizeWord(v)
		if v == "" || seen[v] || strings.Contains(v, " ") {
			continue
		}
		seen[v] = true
		group = append(group, v)
	}

	l.groups[canonical] = group
	for _, v := range group {
		l.reverse[v] = canonical
	}
}

// Normalize returns the canonical form of a word, or the lowercased word
// when it is unknown.
func (l *Lexicon) Normalize(word string) string {
	word = normalizeWord(word)
	if canonical, ok := l.reverse[word]; ok {
		return canonical
	}
	return word
}

// Variants returns the group a word belongs to, canonical first.
func (l *Lexicon) Variants(word string) []string {
	word = normalizeWord(word)
	if canonical, ok := l.reverse[word]; ok {
		out := make([]string, len(l.groups[canonical]))
		copy(out, l.groups[canonical])
		return out
	}
	return []string{word}
}

// Canonicals lists every canonical word in sorted order.
func (l *Lexicon) Canonicals() []string {
	out := make([]string, 0, len(l.groups))
	for c := range l.groups {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of variant groups.
func (l *Lexicon) Len() int {
	return len(l.groups)
}

func normalizeWord(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}
