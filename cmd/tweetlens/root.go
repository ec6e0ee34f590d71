package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cognicore/tweetlens/internal/logger"
	"github.com/cognicore/tweetlens/pkg/tweetlens/config"
	"github.com/cognicore/tweetlens/pkg/tweetlens/corpus"
	"github.com/cognicore/tweetlens/pkg/tweetlens/metrics"
)

// app carries the state shared by all subcommands after the root command
// has loaded the configuration.
type app struct {
	configPath string
	flags      overrides

	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// overrides are persistent flags that win over the config file.
type overrides struct {
	corpus, format, dsn string
	min, max, top       int
	workers             int
	logLevel, logFormat string
	metricsTextfile     string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "tweetlens",
		Short:         "Phrase and mention statistics for tweet corpora",
		Long:          `tweetlens ranks the most frequent phrases of a tweet corpus by document frequency and reports daily tweet and mention counts.`,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	pf.StringVar(&a.flags.corpus, "corpus", "", "corpus file (overrides corpus.path)")
	pf.StringVar(&a.flags.format, "format", "", "corpus format: json, jsonl, sqlite, postgres")
	pf.StringVar(&a.flags.dsn, "dsn", "", "tweet archive DSN for sqlite/postgres corpora")
	pf.IntVar(&a.flags.min, "min", 0, "minimum phrase length in tokens")
	pf.IntVar(&a.flags.max, "max", 0, "maximum phrase length in tokens")
	pf.IntVar(&a.flags.top, "top", 0, "number of phrases to rank")
	pf.IntVar(&a.flags.workers, "workers", 0, "phrase extraction workers")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&a.flags.logFormat, "log-format", "", "text or json")
	pf.StringVar(&a.flags.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file after the run")

	root.AddCommand(
		newPhrasesCmd(a),
		newStatsCmd(a),
		newAnalyzeCmd(a),
		newImportCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("corpus") {
		cfg.Corpus.Path = a.flags.corpus
	}
	if flags.Changed("format") {
		cfg.Corpus.Format = a.flags.format
	}
	if flags.Changed("dsn") {
		cfg.Corpus.DSN = a.flags.dsn
	}
	if flags.Changed("min") {
		cfg.Phrases.MinLength = a.flags.min
	}
	if flags.Changed("max") {
		cfg.Phrases.MaxLength = a.flags.max
	}
	if flags.Changed("top") {
		cfg.Phrases.TopK = a.flags.top
	}
	if flags.Changed("workers") {
		cfg.Ingest.Workers = a.flags.workers
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.flags.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = a.flags.logFormat
	}
	if flags.Changed("metrics-textfile") {
		cfg.Metrics.Textfile = a.flags.metricsTextfile
	}
	if err := cfg.ExpandPaths(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger.Setup(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	if cfg.Metrics.Textfile != "" {
		a.metrics = metrics.New()
	}
	return nil
}

// loadTweets reads the configured corpus, from a file or a tweet archive.
func (a *app) loadTweets(ctx context.Context) ([]corpus.Tweet, error) {
	c := a.cfg.Corpus
	log := logger.WithComponent("corpus")

	var (
		tweets []corpus.Tweet
		err    error
	)
	if c.IsDatabase() {
		st, openErr := openArchive(ctx, c.Format, c.DSN)
		if openErr != nil {
			return nil, openErr
		}
		defer st.Close()
		tweets, err = st.Tweets(ctx)
	} else {
		src, openErr := corpus.Open(c.Path, c.Format, log)
		if openErr != nil {
			return nil, openErr
		}
		tweets, err = src.Tweets(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("load tweets: %w", err)
	}

	a.metrics.SetCorpusSize(len(tweets))
	log.Info("corpus loaded", "tweets", len(tweets), "format", c.Format)
	return tweets, nil
}

// finish writes the metrics textfile, if configured.
func (a *app) finish(runErr error) error {
	a.metrics.SetRunResult(runErr == nil)
	if err := a.metrics.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
		a.logger.Warn("write metrics textfile", "path", a.cfg.Metrics.Textfile, "error", err)
	}
	return runErr
}
