// Package lang provides the language resource used to normalize tokens:
// a stopword set and a canonical-form function. A Model is opened once at
// startup, shared read-only by every tokenizer of the run and closed at
// shutdown.
package lang

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/kljensen/snowball/english"

	"github.com/cognicore/tweetlens/pkg/tweetlens/internalerr"
	"github.com/cognicore/tweetlens/pkg/tweetlens/lexicon"
	"github.com/cognicore/tweetlens/pkg/tweetlens/stoplist"
)

// English is the only supported language.
const English = "english"

// Options configures a Model.
type Options struct {
	// Name selects the language. Empty means English.
	Name string
	// Stem reduces words to their snowball stem ("services" -> "servic").
	// Stems are counting keys, not words, and they end up as phrase text,
	// so it is off by default and the lowercased surface form is used.
	Stem bool
	// BuiltinStopwords enables the snowball English stopword list and the
	// common English contractions ("didn't", "it's").
	BuiltinStopwords bool
	// Stoplist adds configured stopwords. May be nil.
	Stoplist *stoplist.Manager
	// Lexicon folds spelling variants before stemming. May be nil.
	Lexicon *lexicon.Lexicon
}

// DefaultOptions returns the options used by the CLI: surface forms and
// the built-in stopword list.
func DefaultOptions() Options {
	return Options{
		Name:             English,
		BuiltinStopwords: true,
	}
}

// contractions completes the snowball list, which only holds the split
// leftovers ("don", "t").
var contractions = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"i'm", "you're", "he's", "she's", "it's", "we're", "they're",
		"i've", "you've", "we've", "they've",
		"i'd", "you'd", "he'd", "she'd", "we'd", "they'd",
		"i'll", "you'll", "he'll", "she'll", "it'll", "we'll", "they'll",
		"isn't", "aren't", "wasn't", "weren't", "hasn't", "haven't", "hadn't",
		"doesn't", "don't", "didn't", "won't", "wouldn't", "shan't",
		"shouldn't", "can't", "cannot", "couldn't", "mustn't",
		"let's", "that's", "who's", "what's", "here's", "there's",
		"when's", "where's", "why's", "how's",
	} {
		contractions[w] = struct{}{}
	}
}

// Model is a loaded language resource. It is immutable after Open and safe
// for concurrent use. Tokenizers must not outlive it: IsStopword and
// Canonical panic after Close.
type Model struct {
	name    string
	stem    bool
	builtin bool
	stops   *stoplist.Manager
	lex     *lexicon.Lexicon
	closed  atomic.Bool
}

// Open loads a language model.
func Open(opts Options) (*Model, error) {
	name := strings.ToLower(strings.TrimSpace(opts.Name))
	if name == "" {
		name = English
	}
	if name != English && name != "en" {
		return nil, fmt.Errorf("%w: unsupported language %q", internalerr.ErrInvalidConfig, opts.Name)
	}
	return &Model{
		name:    English,
		stem:    opts.Stem,
		builtin: opts.BuiltinStopwords,
		stops:   opts.Stoplist,
		lex:     opts.Lexicon,
	}, nil
}

// Name returns the language name.
func (m *Model) Name() string {
	return m.name
}

// IsStopword reports whether a lowercased word carries no content.
// Variants are folded through the lexicon first so "u" is judged as "you".
func (m *Model) IsStopword(word string) bool {
	m.mustBeOpen()
	if m.lex != nil {
		word = m.lex.Normalize(word)
	}
	if m.builtin {
		if english.IsStopWord(word) {
			return true
		}
		if _, ok := contractions[word]; ok {
			return true
		}
	}
	return m.stops.IsStop(word)
}

// Canonical maps a lowercased word to the form used for counting.
func (m *Model) Canonical(word string) string {
	m.mustBeOpen()
	if m.lex != nil {
		word = m.lex.Normalize(word)
	}
	if m.stem {
		if stem := english.Stem(word, false); stem != "" {
			return stem
		}
	}
	return word
}

// Close releases the model. A second Close returns ErrClosed.
func (m *Model) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return internalerr.ErrClosed
	}
	return nil
}

func (m *Model) mustBeOpen() {
	if m.closed.Load() {
		panic(fmt.Errorf("lang: %s model used after Close: %w", m.name, internalerr.ErrClosed))
	}
}
