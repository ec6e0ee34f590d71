// Package phrase generates candidate n-gram phrases from token sequences.
package phrase

import (
	"fmt"
	"strings"

	"github.com/cognicore/tweetlens/pkg/tweetlens/internalerr"
)

// Phrase is a contiguous run of normalized tokens. Two phrases are equal
// when their token sequences are equal; String gives the space-joined form
// used as a map key and as a chart label.
type Phrase []string

// Parse splits space-joined text back into a Phrase.
func Parse(text string) Phrase {
	return Phrase(strings.Fields(text))
}

// String returns the tokens joined by single spaces.
func (p Phrase) String() string {
	return strings.Join(p, " ")
}

// Len returns the number of tokens.
func (p Phrase) Len() int {
	return len(p)
}

// Equal reports whether both phrases hold the same token sequence.
func (p Phrase) Equal(other Phrase) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Contains reports whether sub occurs in p as a contiguous run of tokens.
// A phrase contains itself; the empty phrase is contained everywhere.
func (p Phrase) Contains(sub Phrase) bool {
	if len(sub) > len(p) {
		return false
	}
outer:
	for start := 0; start+len(sub) <= len(p); start++ {
		for i := range sub {
			if p[start+i] != sub[i] {
				continue outer
			}
		}
		return true
	}
	return false
}

// Window bounds phrase length in tokens, inclusive on both ends.
type Window struct {
	Min int `yaml:"minLength" json:"min_length"`
	Max int `yaml:"maxLength" json:"max_length"`
}

// Validate checks 1 <= Min <= Max.
func (w Window) Validate() error {
	if w.Min < 1 {
		return fmt.Errorf("%w: phrase min length %d must be at least 1", internalerr.ErrInvalidConfig, w.Min)
	}
	if w.Max < w.Min {
		return fmt.Errorf("%w: phrase max length %d is below min length %d", internalerr.ErrInvalidConfig, w.Max, w.Min)
	}
	return nil
}

// Includes reports whether a phrase of n tokens falls inside the window.
func (w Window) Includes(n int) bool {
	return n >= w.Min && n <= w.Max
}

// Within reports whether w lies entirely inside outer.
func (w Window) Within(outer Window) bool {
	return w.Min >= outer.Min && w.Max <= outer.Max
}

func (w Window) String() string {
	return fmt.Sprintf("%d..%d", w.Min, w.Max)
}

// Generator emits every contiguous n-gram whose length lies in a fixed
// window.
type Generator struct {
	window Window
}

// NewGenerator creates a generator for phrases of minLen..maxLen tokens.
func NewGenerator(minLen, maxLen int) (*Generator, error) {
	w := Window{Min: minLen, Max: maxLen}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Generator{window: w}, nil
}

// Window returns the generator's length bounds.
func (g *Generator) Window() Window {
	return g.window
}

// Generate returns the candidate phrases of tokens ordered by start offset,
// then by length. Fewer tokens than the window minimum yield nothing.
// Returned phrases share no memory with tokens.
func (g *Generator) Generate(tokens []string) []Phrase {
	if len(tokens) < g.window.Min {
		return nil
	}

	var out []Phrase
	for start := range tokens {
		for n := g.window.Min; n <= g.window.Max && start+n <= len(tokens); n++ {
			p := make(Phrase, n)
			copy(p, tokens[start:start+n])
			out = append(out, p)
		}
	}
	return out
}

// Generate is a one-shot helper around NewGenerator.
func Generate(tokens []string, minLen, maxLen int) ([]Phrase, error) {
	g, err := NewGenerator(minLen, maxLen)
	if err != nil {
		return nil, err
	}
	return g.Generate(tokens), nil
}
