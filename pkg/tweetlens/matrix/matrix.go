// Package matrix implements the document-frequency matrix: for every
// distinct phrase, the number of distinct documents that contain it.
package matrix

import (
	"fmt"

	"github.com/cognicore/tweetlens/pkg/tweetlens/ingest"
	"github.com/cognicore/tweetlens/pkg/tweetlens/internalerr"
	"github.com/cognicore/tweetlens/pkg/tweetlens/phrase"
)

// Tokenizer turns raw text into normalized tokens. *ingest.Tokenizer
// implements it.
type Tokenizer interface {
	Tokenize(text string) []string
}

// Entry pairs a phrase with its document frequency.
type Entry struct {
	Phrase    phrase.Phrase
	Frequency int
}

// PhraseSet is the deduplicated set of phrases of one document, keyed by
// the phrase's string form.
type PhraseSet map[string]phrase.Phrase

// Matrix accumulates document frequencies. It is built by a single
// goroutine and read-only afterwards.
type Matrix struct {
	tokenizer Tokenizer
	gen       *phrase.Generator

	counts map[string]*Entry
	docs   map[string][]string // doc id -> phrase keys it contributed
}

// New creates an empty matrix generating phrases within window.
func New(tokenizer Tokenizer, window phrase.Window) (*Matrix, error) {
	if tokenizer == nil {
		return nil, fmt.Errorf("%w: matrix needs a tokenizer", internalerr.ErrInvalidConfig)
	}
	gen, err := phrase.NewGenerator(window.Min, window.Max)
	if err != nil {
		return nil, err
	}
	return &Matrix{
		tokenizer: tokenizer,
		gen:       gen,
		counts:    make(map[string]*Entry),
		docs:      make(map[string][]string),
	}, nil
}

// Window returns the phrase length bounds fixed at construction.
func (m *Matrix) Window() phrase.Window {
	return m.gen.Window()
}

// Extract computes the phrase set of text without touching the matrix.
// It only reads the tokenizer, so workers may call it concurrently.
func (m *Matrix) Extract(text string) PhraseSet {
	phrases := m.gen.Generate(m.tokenizer.Tokenize(text))
	set := make(PhraseSet, len(phrases))
	for _, p := range phrases {
		set[p.String()] = p
	}
	return set
}

// AddDocument counts every distinct phrase of the document once.
//
// Re-adding a known id replaces the earlier contribution: the old phrase
// set is subtracted before the new one is counted, so adding the same
// document twice leaves the counts unchanged.
func (m *Matrix) AddDocument(doc ingest.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	return m.AddPhraseSet(doc.ID, m.Extract(doc.Text))
}

// Add is AddDocument for a bare id and text.
func (m *Matrix) Add(id, text string) error {
	return m.AddDocument(ingest.Document{ID: id, Text: text})
}

// AddPhraseSet commits a phrase set produced by Extract under id, with the
// same replace semantics as AddDocument.
func (m *Matrix) AddPhraseSet(id string, set PhraseSet) error {
	if err := (ingest.Document{ID: id}).Validate(); err != nil {
		return err
	}
	m.RemoveDocument(id)

	keys := make([]string, 0, len(set))
	for key, p := range set {
		if !m.gen.Window().Includes(p.Len()) {
			continue
		}
		e, ok := m.counts[key]
		if !ok {
			e = &Entry{Phrase: p}
			m.counts[key] = e
		}
		e.Frequency++
		keys = append(keys, key)
	}
	m.docs[id] = keys
	return nil
}

// RemoveDocument subtracts a document's contribution. It reports whether
// the id was known.
func (m *Matrix) RemoveDocument(id string) bool {
	keys, ok := m.docs[id]
	if !ok {
		return false
	}
	for _, key := range keys {
		e := m.counts[key]
		if e == nil {
			continue
		}
		e.Frequency--
		if e.Frequency <= 0 {
			delete(m.counts, key)
		}
	}
	delete(m.docs, id)
	return true
}

// Contains reports whether a document id has been added.
func (m *Matrix) Contains(id string) bool {
	_, ok := m.docs[id]
	return ok
}

// Frequency returns the number of documents containing p, 0 if unseen.
func (m *Matrix) Frequency(p phrase.Phrase) int {
	return m.FrequencyOf(p.String())
}

// FrequencyOf looks a phrase up by its space-joined form.
func (m *Matrix) FrequencyOf(text string) int {
	if e, ok := m.counts[phrase.Parse(text).String()]; ok {
		return e.Frequency
	}
	return 0
}

// AllPhrases returns an unordered snapshot of every counted phrase.
func (m *Matrix) AllPhrases() []Entry {
	out := make([]Entry, 0, len(m.counts))
	for _, e := range m.counts {
		out = append(out, *e)
	}
	return out
}

// Len returns the number of distinct phrases.
func (m *Matrix) Len() int {
	return len(m.counts)
}

// Docs returns the number of distinct documents added.
func (m *Matrix) Docs() int {
	return len(m.docs)
}
