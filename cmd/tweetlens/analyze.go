package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var opts phrasesOptions
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print corpus statistics followed by the phrase ranking",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tweets, err := a.loadTweets(cmd.Context())
			if err != nil {
				return a.finish(err)
			}
			w := cmd.OutOrStdout()
			if err := a.runStats(w, tweets, false); err != nil {
				return a.finish(err)
			}
			fmt.Fprintln(w)
			return a.finish(a.runPhrases(cmd.Context(), w, tweets, opts))
		},
	}
	cmd.Flags().BoolVar(&opts.keepOverlaps, "keep-overlaps", false, "keep phrases contained in a higher ranked phrase")
	cmd.Flags().BoolVar(&opts.suggestStopwords, "suggest-stopwords", false, "also list stopword candidates")
	return cmd
}
