package memstore

import (
	"context"
	"sync"

	"github.com/cognicore/tweetlens/pkg/tweetlens/corpus"
	"github.com/cognicore/tweetlens/pkg/tweetlens/internalerr"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu     sync.RWMutex
	order  []string
	tweets map[string]corpus.Tweet
	closed bool
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{tweets: make(map[string]corpus.Tweet)}
}

// Close implements store.Store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// UpsertTweets inserts or replaces tweets by id. Tweets without id are
// rejected and nothing is written.
func (s *Store) UpsertTweets(ctx context.Context, tweets []corpus.Tweet) (int, error) {
	for _, t := range tweets {
		if err := t.Validate(); err != nil {
			return 0, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, internalerr.ErrStoreUnavailable
	}

	for _, t := range tweets {
		id := string(t.ID)
		if _, ok := s.tweets[id]; !ok {
			s.order = append(s.order, id)
		}
		s.tweets[id] = copyTweet(t)
	}
	return len(tweets), nil
}

// GetTweet returns a tweet by id.
func (s *Store) GetTweet(ctx context.Context, id string) (corpus.Tweet, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return corpus.Tweet{}, false, internalerr.ErrStoreUnavailable
	}
	t, ok := s.tweets[id]
	if !ok {
		return corpus.Tweet{}, false, nil
	}
	return copyTweet(t), true, nil
}

// Tweets implements corpus.Source.
func (s *Store) Tweets(ctx context.Context) ([]corpus.Tweet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, internalerr.ErrStoreUnavailable
	}
	out := make([]corpus.Tweet, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, copyTweet(s.tweets[id]))
	}
	return out, nil
}

// Count returns the number of stored tweets.
func (s *Store) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, internalerr.ErrStoreUnavailable
	}
	return int64(len(s.tweets)), nil
}

func copyTweet(t corpus.Tweet) corpus.Tweet {
	out := t
	out.Mentions = append([]string(nil), t.Mentions...)
	out.Hashtags = append([]string(nil), t.Hashtags...)
	return out
}
