// Package store defines the tweet archive. An archive is a corpus source
// that outlives a run; the phrase matrix itself is never stored.
package store

import (
	"context"

	"github.com/cognicore/tweetlens/pkg/tweetlens/corpus"
)

// Store persists tweets keyed by id. Every Store is a corpus.Source that
// returns tweets in first-insertion order.
type Store interface {
	corpus.Source
	Close() error

	// UpsertTweets inserts or replaces tweets by id and returns how many
	// were written.
	UpsertTweets(ctx context.Context, tweets []corpus.Tweet) (int, error)
	GetTweet(ctx context.Context, id string) (corpus.Tweet, bool, error)
	Count(ctx context.Context) (int64, error)
}
