// Package stats computes the aggregate view of a tweet corpus: tweets per
// day, the most mentioned accounts and how often each of them is mentioned
// per day.
package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/cognicore/tweetlens/pkg/tweetlens/corpus"
)

// DefaultTopMentions is how many mentions get their own daily series.
const DefaultTopMentions = 5

const dayKey = "2006-01-02"

// DayCount is one point of a daily series.
type DayCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// MentionCount is the number of tweets mentioning an account.
type MentionCount struct {
	Mention string `json:"mention"`
	Count   int    `json:"count"`
}

// Day aggregates the tweets of one calendar day. Mentions only holds the
// top mentions of the report.
type Day struct {
	Date     time.Time      `json:"date"`
	Tweets   int            `json:"tweets"`
	Mentions map[string]int `json:"mentions"`
}

// Report exposes the aggregated counts.
type Report struct {
	TotalTweets int            `json:"total_tweets"`
	Undated     int            `json:"undated"`
	Days        []Day          `json:"days"`
	TopMentions []MentionCount `json:"top_mentions"`
}

// Aggregator consumes tweets one at a time.
type Aggregator struct {
	topN        int
	total       int
	undated     int
	dayTweets   map[string]int
	dayDates    map[string]time.Time
	dayMentions map[string]map[string]int
	mentions    map[string]int
}

// NewAggregator creates an empty aggregator keeping topN mentions.
// Values below 1 fall back to DefaultTopMentions.
func NewAggregator(topN int) *Aggregator {
	if topN < 1 {
		topN = DefaultTopMentions
	}
	return &Aggregator{
		topN:        topN,
		dayTweets:   make(map[string]int),
		dayDates:    make(map[string]time.Time),
		dayMentions: make(map[string]map[string]int),
		mentions:    make(map[string]int),
	}
}

// Add consumes one tweet. A tweet mentioning the same account twice counts
// once for it. Tweets with an unparseable date still count toward mention
// totals but not toward any day.
func (a *Aggregator) Add(t corpus.Tweet) {
	a.total++

	seen := make(map[string]struct{}, len(t.Mentions))
	for _, m := range t.Mentions {
		m = NormalizeMention(m)
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		a.mentions[m]++
	}

	ts, err := t.Time()
	if err != nil {
		a.undated++
		return
	}
	day := corpus.Day(ts)
	key := day.Format(dayKey)
	a.dayTweets[key]++
	a.dayDates[key] = day
	if len(seen) == 0 {
		return
	}
	if a.dayMentions[key] == nil {
		a.dayMentions[key] = make(map[string]int)
	}
	for m := range seen {
		a.dayMentions[key][m]++
	}
}

// Report returns a snapshot of the accumulated statistics.
func (a *Aggregator) Report() Report {
	top := topMentions(a.mentions, a.topN)
	topSet := make(map[string]struct{}, len(top))
	for _, m := range top {
		topSet[m.Mention] = struct{}{}
	}

	keys := make([]string, 0, len(a.dayTweets))
	for k := range a.dayTweets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	days := make([]Day, 0, len(keys))
	for _, k := range keys {
		day := Day{
			Date:     a.dayDates[k],
			Tweets:   a.dayTweets[k],
			Mentions: make(map[string]int, len(top)),
		}
		for _, m := range top {
			day.Mentions[m.Mention] = 0
		}
		for m, c := range a.dayMentions[k] {
			if _, ok := topSet[m]; ok {
				day.Mentions[m] = c
			}
		}
		days = append(days, day)
	}

	return Report{
		TotalTweets: a.total,
		Undated:     a.undated,
		Days:        days,
		TopMentions: top,
	}
}

// Aggregate is a one-shot helper over a slice of tweets.
func Aggregate(tweets []corpus.Tweet, topN int) Report {
	a := NewAggregator(topN)
	for _, t := range tweets {
		a.Add(t)
	}
	return a.Report()
}

// DailyTweets returns the number of tweets per day in date order.
func (r Report) DailyTweets() []DayCount {
	out := make([]DayCount, len(r.Days))
	for i, d := range r.Days {
		out[i] = DayCount{Date: d.Date, Count: d.Tweets}
	}
	return out
}

// MentionSeries returns, in date order, the days on which mention was
// mentioned and how many tweets did so. Only top mentions are tracked.
func (r Report) MentionSeries(mention string) []DayCount {
	mention = NormalizeMention(mention)
	var out []DayCount
	for _, d := range r.Days {
		if c := d.Mentions[mention]; c > 0 {
			out = append(out, DayCount{Date: d.Date, Count: c})
		}
	}
	return out
}

// NormalizeMention lowercases an account handle and drops the leading @.
func NormalizeMention(m string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(m), "@"))
}

func topMentions(counts map[string]int, n int) []MentionCount {
	all := make([]MentionCount, 0, len(counts))
	for m, c := range counts {
		all = append(all, MentionCount{Mention: m, Count: c})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].Mention < all[j].Mention
	})
	if len(all) > n {
		all = all[:n]
	}
	return all
}
