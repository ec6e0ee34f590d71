package config

import (
	"fmt"

	"github.com/cognicore/tweetlens/pkg/tweetlens/ingest"
	"github.com/cognicore/tweetlens/pkg/tweetlens/lang"
	"github.com/cognicore/tweetlens/pkg/tweetlens/lexicon"
	"github.com/cognicore/tweetlens/pkg/tweetlens/stoplist"
)

// Loader loads the language files and constructs components
type Loader struct {
	Language LanguageConfig
}

// Components holds the loaded language resource and the tokenizer built
// on it. Close releases the language model.
type Components struct {
	Model     *lang.Model
	Stoplist  *stoplist.Manager
	Lexicon   *lexicon.Lexicon
	Tokenizer *ingest.Tokenizer
}

// Close releases the language model.
func (c *Components) Close() error {
	if c == nil || c.Model == nil {
		return nil
	}
	return c.Model.Close()
}

// Load reads all configuration files and returns initialized components
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	if l.Language.StoplistPath != "" {
		sl, err := LoadStoplist(l.Language.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		comp.Stoplist = stoplist.NewManager(sl.Terms)
	} else {
		comp.Stoplist = stoplist.NewManager(nil)
	}

	if l.Language.LexiconPath != "" {
		lex, err := lexicon.LoadFromYAML(l.Language.LexiconPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		comp.Lexicon = lex
	}

	model, err := lang.Open(lang.Options{
		Name:             l.Language.Name,
		Stem:             l.Language.Stem,
		BuiltinStopwords: l.Language.BuiltinStopwords,
		Stoplist:         comp.Stoplist,
		Lexicon:          comp.Lexicon,
	})
	if err != nil {
		return nil, fmt.Errorf("open language: %w", err)
	}
	comp.Model = model

	tok, err := ingest.NewTokenizer(model,
		ingest.WithMinLength(l.Language.MinTokenLength),
		ingest.WithMentions(l.Language.KeepMentions),
	)
	if err != nil {
		model.Close()
		return nil, err
	}
	comp.Tokenizer = tok

	return comp, nil
}
