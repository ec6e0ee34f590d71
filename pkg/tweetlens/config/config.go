// Package config loads the run configuration from YAML with environment
// overrides and builds the language components from it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/tweetlens/pkg/tweetlens/internalerr"
	"github.com/cognicore/tweetlens/pkg/tweetlens/phrase"
)

// Config is the top-level configuration.
type Config struct {
	Corpus   CorpusConfig   `yaml:"corpus"`
	Language LanguageConfig `yaml:"language"`
	Phrases  PhrasesConfig  `yaml:"phrases"`
	Stats    StatsConfig    `yaml:"stats"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// CorpusConfig locates the tweets. Format is json, jsonl, sqlite or
// postgres; the database formats read DSN instead of Path.
type CorpusConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
	DSN    string `yaml:"dsn"`
}

// Corpus formats backed by a tweet archive.
const (
	FormatSQLite   = "sqlite"
	FormatPostgres = "postgres"
)

// IsDatabase reports whether the corpus is read from a tweet archive.
func (c CorpusConfig) IsDatabase() bool {
	return c.Format == FormatSQLite || c.Format == FormatPostgres
}

// LanguageConfig selects the language resource and tokenizer behaviour.
type LanguageConfig struct {
	Name             string `yaml:"name"`
	Stem             bool   `yaml:"stem"`
	BuiltinStopwords bool   `yaml:"builtinStopwords"`
	StoplistPath     string `yaml:"stoplist"`
	LexiconPath      string `yaml:"lexicon"`
	KeepMentions     bool   `yaml:"keepMentions"`
	MinTokenLength   int    `yaml:"minTokenLength"`
}

// PhrasesConfig controls the matrix window and the ranking.
type PhrasesConfig struct {
	MinLength       int  `yaml:"minLength"`
	MaxLength       int  `yaml:"maxLength"`
	SelectMinLength int  `yaml:"selectMinLength"`
	SelectMaxLength int  `yaml:"selectMaxLength"`
	TopK            int  `yaml:"topK"`
	KeepOverlaps    bool `yaml:"keepOverlaps"`
}

// Window returns the matrix window.
func (p PhrasesConfig) Window() phrase.Window {
	return phrase.Window{Min: p.MinLength, Max: p.MaxLength}
}

// SelectWindow returns the ranking window, falling back to the matrix
// window for unset bounds.
func (p PhrasesConfig) SelectWindow() phrase.Window {
	w := phrase.Window{Min: p.SelectMinLength, Max: p.SelectMaxLength}
	if w.Min == 0 {
		w.Min = p.MinLength
	}
	if w.Max == 0 {
		w.Max = p.MaxLength
	}
	return w
}

// StatsConfig controls the aggregate statistics.
type StatsConfig struct {
	TopMentions int `yaml:"topMentions"`
}

// IngestConfig controls matrix building.
type IngestConfig struct {
	Workers int `yaml:"workers"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus textfile written after a run.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Load reads a YAML config file (if provided) and applies environment
// overrides. Missing values keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("expand config path %s: %w", path, err)
		}
		data, err := os.ReadFile(expanded)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	ApplyEnv(cfg, os.Getenv)
	if err := cfg.ExpandPaths(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration of a plain run: phrases of two to
// three tokens, top 20, top 5 mentions.
func Default() *Config {
	return &Config{
		Corpus: CorpusConfig{},
		Language: LanguageConfig{
			Name:             "english",
			BuiltinStopwords: true,
			MinTokenLength:   2,
		},
		Phrases: PhrasesConfig{
			MinLength: 2,
			MaxLength: 3,
			TopK:      20,
		},
		Stats: StatsConfig{
			TopMentions: 5,
		},
		Ingest: IngestConfig{
			Workers: 1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// ApplyEnv overrides fields from TWEETLENS_* variables. TWITTER_DATA is
// honoured as the corpus path when TWEETLENS_CORPUS_PATH is unset.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv("TWITTER_DATA"); v != "" {
		cfg.Corpus.Path = v
	}
	if v := getenv("TWEETLENS_CORPUS_PATH"); v != "" {
		cfg.Corpus.Path = v
	}
	if v := getenv("TWEETLENS_CORPUS_FORMAT"); v != "" {
		cfg.Corpus.Format = strings.ToLower(v)
	}
	if v := getenv("TWEETLENS_CORPUS_DSN"); v != "" {
		cfg.Corpus.DSN = v
	}
	if v := getenv("TWEETLENS_STOPLIST"); v != "" {
		cfg.Language.StoplistPath = v
	}
	if v := getenv("TWEETLENS_LEXICON"); v != "" {
		cfg.Language.LexiconPath = v
	}
	setInt(getenv("TWEETLENS_PHRASES_MIN"), &cfg.Phrases.MinLength)
	setInt(getenv("TWEETLENS_PHRASES_MAX"), &cfg.Phrases.MaxLength)
	setInt(getenv("TWEETLENS_PHRASES_TOP"), &cfg.Phrases.TopK)
	setInt(getenv("TWEETLENS_STATS_TOP_MENTIONS"), &cfg.Stats.TopMentions)
	setInt(getenv("TWEETLENS_WORKERS"), &cfg.Ingest.Workers)
	if v := getenv("TWEETLENS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := getenv("TWEETLENS_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := getenv("TWEETLENS_METRICS_TEXTFILE"); v != "" {
		cfg.Metrics.Textfile = v
	}
}

func setInt(v string, dst *int) {
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}

// ExpandPaths resolves a leading ~ in every file path.
func (c *Config) ExpandPaths() error {
	for _, p := range []*string{
		&c.Corpus.Path,
		&c.Language.StoplistPath,
		&c.Language.LexiconPath,
		&c.Metrics.Textfile,
	} {
		if *p == "" {
			continue
		}
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("expand path %s: %w", *p, err)
		}
		*p = expanded
	}
	if c.Corpus.Format == FormatSQLite && c.Corpus.DSN != "" {
		expanded, err := homedir.Expand(c.Corpus.DSN)
		if err != nil {
			return fmt.Errorf("expand path %s: %w", c.Corpus.DSN, err)
		}
		c.Corpus.DSN = expanded
	}
	return nil
}

// Validate reports the first configuration error, wrapped in
// ErrInvalidConfig.
func (c *Config) Validate() error {
	if err := c.Phrases.Window().Validate(); err != nil {
		return err
	}
	sel := c.Phrases.SelectWindow()
	if err := sel.Validate(); err != nil {
		return err
	}
	if !sel.Within(c.Phrases.Window()) {
		return fmt.Errorf("%w: select window %s outside matrix window %s",
			internalerr.ErrInvalidConfig, sel, c.Phrases.Window())
	}
	if c.Phrases.TopK <= 0 {
		return fmt.Errorf("%w: phrases.topK must be positive", internalerr.ErrInvalidConfig)
	}
	if c.Stats.TopMentions <= 0 {
		return fmt.Errorf("%w: stats.topMentions must be positive", internalerr.ErrInvalidConfig)
	}
	if c.Ingest.Workers < 1 {
		return fmt.Errorf("%w: ingest.workers must be at least 1", internalerr.ErrInvalidConfig)
	}
	switch c.Corpus.Format {
	case "", "json", "jsonl", FormatSQLite, FormatPostgres:
	default:
		return fmt.Errorf("%w: unknown corpus format %q", internalerr.ErrInvalidConfig, c.Corpus.Format)
	}
	return nil
}
