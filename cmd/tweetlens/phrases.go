package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cognicore/tweetlens/internal/logger"
	"github.com/cognicore/tweetlens/pkg/tweetlens"
	"github.com/cognicore/tweetlens/pkg/tweetlens/chart"
	"github.com/cognicore/tweetlens/pkg/tweetlens/config"
	"github.com/cognicore/tweetlens/pkg/tweetlens/corpus"
	"github.com/cognicore/tweetlens/pkg/tweetlens/stoplist"
)

type phrasesOptions struct {
	json             bool
	keepOverlaps     bool
	suggestStopwords bool
	writeStoplist    string
}

func newPhrasesCmd(a *app) *cobra.Command {
	var opts phrasesOptions
	cmd := &cobra.Command{
		Use:   "phrases",
		Short: "Rank the most frequent phrases of the corpus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tweets, err := a.loadTweets(cmd.Context())
			if err != nil {
				return a.finish(err)
			}
			return a.finish(a.runPhrases(cmd.Context(), cmd.OutOrStdout(), tweets, opts))
		},
	}
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&opts.keepOverlaps, "keep-overlaps", false, "keep phrases contained in a higher ranked phrase")
	cmd.Flags().BoolVar(&opts.suggestStopwords, "suggest-stopwords", false, "also list tokens frequent enough to be stopword candidates")
	cmd.Flags().StringVar(&opts.writeStoplist, "write-stoplist", "", "save the configured stoplist plus the suggested candidates to this file (implies --suggest-stopwords)")
	return cmd
}

func (a *app) runPhrases(ctx context.Context, w io.Writer, tweets []corpus.Tweet, opts phrasesOptions) error {
	if opts.writeStoplist != "" {
		opts.suggestStopwords = true
	}
	loader := &config.Loader{Language: a.cfg.Language}
	comp, err := loader.Load()
	if err != nil {
		return err
	}
	defer comp.Close()

	engine, err := tweetlens.New(tweetlens.Options{
		Tokenizer: comp.Tokenizer,
		Metrics:   a.metrics,
		Logger:    logger.WithComponent("phrases"),
		Workers:   a.cfg.Ingest.Workers,
	})
	if err != nil {
		return err
	}

	docs := corpus.Documents(tweets)
	report, err := engine.Analyze(ctx, docs, tweetlens.AnalyzeRequest{
		Window:       a.cfg.Phrases.Window(),
		Select:       a.cfg.Phrases.SelectWindow(),
		TopK:         a.cfg.Phrases.TopK,
		KeepOverlaps: opts.keepOverlaps || a.cfg.Phrases.KeepOverlaps,
	})
	if err != nil {
		return fmt.Errorf("analyze phrases: %w", err)
	}
	a.logger.Info("phrases ranked",
		"report", report.ID,
		"documents", report.Documents,
		"distinct", report.DistinctPhrases,
		"selected", len(report.Phrases))

	var candidates []stoplist.Candidate
	if opts.suggestStopwords {
		candidates, err = engine.SuggestStopwords(ctx, docs, comp.Stoplist, stoplist.DefaultThresholds())
		if err != nil {
			return fmt.Errorf("suggest stopwords: %w", err)
		}
	}
	if opts.writeStoplist != "" {
		if err := writeStoplist(opts.writeStoplist, comp.Stoplist, candidates); err != nil {
			return err
		}
		a.logger.Info("stoplist written", "path", opts.writeStoplist, "added", len(candidates))
	}

	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if !opts.suggestStopwords {
			return enc.Encode(report)
		}
		return enc.Encode(struct {
			tweetlens.Report
			StopwordCandidates []stoplist.Candidate `json:"stopword_candidates"`
		}{report, candidates})
	}

	if err := renderPhrases(w, report.Phrases); err != nil {
		return err
	}
	if opts.suggestStopwords {
		renderCandidates(w, candidates)
	}
	return nil
}

func renderPhrases(w io.Writer, phrases []tweetlens.PhraseCount) error {
	spec := chart.Spec{
		Title:  "Terms",
		YLabel: "Document Frequency",
		Labels: make([]string, len(phrases)),
		Values: make([]int, len(phrases)),
	}
	for i, p := range phrases {
		spec.Labels[i] = p.Phrase
		spec.Values[i] = p.Frequency
	}
	return chart.Bar(w, spec)
}

func renderCandidates(w io.Writer, candidates []stoplist.Candidate) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Stopword candidates")
	if len(candidates) == 0 {
		fmt.Fprintln(w, chart.NoData)
		return
	}
	for _, c := range candidates {
		fmt.Fprintf(w, "  %-20s %5.1f%% of documents\n", c.Token, c.Reason.DFPercent)
	}
}

// writeStoplist saves the configured stopwords merged with candidates, so
// the file can be passed back as language.stoplist on the next run.
func writeStoplist(path string, configured *stoplist.Manager, candidates []stoplist.Candidate) error {
	merged := stoplist.NewManager(configured.All())
	for _, c := range candidates {
		merged.Add(c.Token, c.Reason)
	}
	return config.SaveStoplist(path, merged.All())
}
