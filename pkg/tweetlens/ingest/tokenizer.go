package ingest

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cognicore/tweetlens/pkg/tweetlens/internalerr"
)

// DefaultMinTokenLength drops single-character words such as "a" or "x".
const DefaultMinTokenLength = 2

// Language is the read-only language resource a Tokenizer normalizes with.
// lang.Model implements it.
type Language interface {
	Name() string
	IsStopword(word string) bool
	Canonical(word string) string
}

// Tokenizer handles text tokenization and normalization
type Tokenizer struct {
	lang         Language
	minLen       int
	keepMentions bool
}

// TokenizerOption customizes a Tokenizer.
type TokenizerOption func(*Tokenizer)

// WithMinLength sets the minimum token length in runes. Values below 1
// are ignored.
func WithMinLength(n int) TokenizerOption {
	return func(t *Tokenizer) {
		if n >= 1 {
			t.minLen = n
		}
	}
}

// WithMentions keeps @mentions as ordinary words instead of dropping them.
func WithMentions(keep bool) TokenizerOption {
	return func(t *Tokenizer) {
		t.keepMentions = keep
	}
}

// NewTokenizer creates a tokenizer backed by the given language resource.
func NewTokenizer(lang Language, opts ...TokenizerOption) (*Tokenizer, error) {
	if lang == nil {
		return nil, fmt.Errorf("%w: tokenizer needs a language", internalerr.ErrInvalidConfig)
	}
	t := &Tokenizer{lang: lang, minLen: DefaultMinTokenLength}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Language returns the name of the language in use.
func (t *Tokenizer) Language() string {
	return t.lang.Name()
}

// Tokens yields the normalized tokens of text in order. The sequence is
// lazy and can be ranged over any number of times.
func (t *Tokenizer) Tokens(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, field := range strings.Fields(text) {
			field = strings.ToLower(strings.ReplaceAll(field, "’", "'"))
			core := strings.TrimFunc(field, func(r rune) bool {
				return !isWordRune(r) && r != '@' && r != '#'
			})
			if isURL(core) {
				continue
			}
			if !t.keepMentions && strings.HasPrefix(core, "@") {
				continue
			}
			for _, word := range splitWords(core) {
				if tok := t.processToken(word); tok != "" {
					if !yield(tok) {
						return
					}
				}
			}
		}
	}
}

// Tokenize splits text into normalized tokens, removing stopwords.
func (t *Tokenizer) Tokenize(text string) []string {
	return slices.Collect(t.Tokens(text))
}

// processToken applies cleaning, stopword filtering and canonicalization.
func (t *Tokenizer) processToken(token string) string {
	word := cleanToken(token)
	if word == "" || utf8.RuneCountInString(word) < t.minLen {
		return ""
	}

	// Pure numbers carry little meaning in a phrase ranking; mixed tokens
	// like "covid-19" or "ps5" are kept.
	if isNumericOnly(word) {
		return ""
	}

	if t.lang.IsStopword(word) {
		return ""
	}
	// Possessives count as their owner ("customer's" -> "customer").
	// Contractions are left whole for the stopword list.
	if base, ok := strings.CutSuffix(word, "'s"); ok {
		word = base
		if utf8.RuneCountInString(word) < t.minLen || isNumericOnly(word) || t.lang.IsStopword(word) {
			return ""
		}
	}
	return t.lang.Canonical(word)
}

// splitWords breaks a lowercased field on anything that is not a letter,
// digit, hyphen or apostrophe. Hashtag markers act as separators.
func splitWords(s string) []string {
	var words []string
	var current strings.Builder
	for _, r := range s {
		if isWordRune(r) {
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}
	return words
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' || r == '\''
}

// cleanToken strips leading/trailing hyphens and apostrophes and normalizes
// consecutive hyphens
func cleanToken(token string) string {
	token = strings.Trim(token, "-'")
	for strings.Contains(token, "--") {
		token = strings.ReplaceAll(token, "--", "-")
	}
	return token
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "www.")
}

// isNumericOnly returns true if the token contains only digits and hyphens.
func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}
