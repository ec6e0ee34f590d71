// Package corpus loads tweets and turns them into documents for the
// phrase matrix. Tweets also carry the attributes the statistics side
// needs (date, mentions).
package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cognicore/tweetlens/pkg/tweetlens/ingest"
	"github.com/cognicore/tweetlens/pkg/tweetlens/internalerr"
)

// ID is a tweet id. Exports write it either as a JSON number or a string;
// both decode to the same decimal string.
type ID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("tweet id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

// Tweet is one record of the corpus.
type Tweet struct {
	ID       ID       `json:"tweet_id"`
	Text     string   `json:"text"`
	Date     string   `json:"date"`
	Mentions []string `json:"mentions"`
	Hashtags []string `json:"hashtags"`
	URL      string   `json:"url"`
}

// Validate checks if the tweet has required fields
func (t Tweet) Validate() error {
	if strings.TrimSpace(string(t.ID)) == "" {
		return fmt.Errorf("%w: tweet id is required", internalerr.ErrInvalidInput)
	}
	return nil
}

// Time parses the tweet's date. See ParseDate for accepted layouts.
func (t Tweet) Time() (time.Time, error) {
	return ParseDate(t.Date)
}

// Document returns the phrase-matrix view of the tweet.
func (t Tweet) Document() ingest.Document {
	return ingest.Document{ID: string(t.ID), Text: t.Text}
}

// Documents converts tweets in order.
func Documents(tweets []Tweet) []ingest.Document {
	docs := make([]ingest.Document, len(tweets))
	for i, t := range tweets {
		docs[i] = t.Document()
	}
	return docs
}

// dateLayouts are tried in order. The first is what Python's "%c" prints
// in the C locale, which is how the tweet exports store dates.
var dateLayouts = []string{
	time.ANSIC,
	time.RubyDate,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02.01.06",
}

// ParseDate parses a tweet date in any of the known layouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", internalerr.ErrInvalidInput)
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized date %q", internalerr.ErrInvalidInput, s)
}

// Day truncates a timestamp to its calendar date, keeping its location.
func Day(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ts.Location())
}
