package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cognicore/tweetlens/pkg/tweetlens/chart"
	"github.com/cognicore/tweetlens/pkg/tweetlens/corpus"
	"github.com/cognicore/tweetlens/pkg/tweetlens/stats"
)

const chartDate = "2006-01-02"

func newStatsCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Chart tweets per day and the most mentioned accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tweets, err := a.loadTweets(cmd.Context())
			if err != nil {
				return a.finish(err)
			}
			return a.finish(a.runStats(cmd.OutOrStdout(), tweets, asJSON))
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func (a *app) runStats(w io.Writer, tweets []corpus.Tweet, asJSON bool) error {
	report := stats.Aggregate(tweets, a.cfg.Stats.TopMentions)
	a.logger.Info("stats aggregated",
		"tweets", report.TotalTweets,
		"days", len(report.Days),
		"undated", report.Undated)

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return renderStats(w, report)
}

func renderStats(w io.Writer, report stats.Report) error {
	if err := chart.Series(w, "Tweets per day", dayPoints(report.DailyTweets())); err != nil {
		return err
	}
	for _, m := range report.TopMentions {
		fmt.Fprintln(w)
		title := fmt.Sprintf("@%s (%d tweets)", m.Mention, m.Count)
		if err := chart.Series(w, title, dayPoints(report.MentionSeries(m.Mention))); err != nil {
			return err
		}
	}
	return nil
}

func dayPoints(series []stats.DayCount) []chart.Point {
	points := make([]chart.Point, len(series))
	for i, d := range series {
		points[i] = chart.Point{Label: d.Date.Format(chartDate), Value: d.Count}
	}
	return points
}
