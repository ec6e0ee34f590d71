package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/cognicore/tweetlens/pkg/tweetlens/corpus"
	"github.com/cognicore/tweetlens/pkg/tweetlens/internalerr"
	"github.com/cognicore/tweetlens/pkg/tweetlens/store"
)

var _ store.Store = (*Store)(nil)

func TestUpsertKeepsFirstInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := New()

	n, err := s.UpsertTweets(ctx, []corpus.Tweet{
		{ID: "b", Text: "first b"},
		{ID: "a", Text: "first a"},
	})
	if err != nil || n != 2 {
		t.Fatalf("UpsertTweets = %d, %v", n, err)
	}
	s.UpsertTweets(ctx, []corpus.Tweet{{ID: "b", Text: "second b"}})

	tweets, err := s.Tweets(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(tweets) != 2 || tweets[0].ID != "b" || tweets[0].Text != "second b" || tweets[1].ID != "a" {
		t.Errorf("tweets = %+v", tweets)
	}
	if c, _ := s.Count(ctx); c != 2 {
		t.Errorf("Count = %d, want 2", c)
	}
}

func TestGetTweetCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.UpsertTweets(ctx, []corpus.Tweet{{ID: "1", Mentions: []string{"@a"}}})

	got, ok, err := s.GetTweet(ctx, "1")
	if err != nil || !ok {
		t.Fatalf("GetTweet = %v, %v", ok, err)
	}
	got.Mentions[0] = "@changed"

	again, _, _ := s.GetTweet(ctx, "1")
	if again.Mentions[0] != "@a" {
		t.Error("GetTweet returned shared memory")
	}

	if _, ok, _ := s.GetTweet(ctx, "missing"); ok {
		t.Error("missing tweet reported as found")
	}
}

func TestUpsertRejectsMissingID(t *testing.T) {
	s := New()
	_, err := s.UpsertTweets(context.Background(), []corpus.Tweet{{ID: "1"}, {Text: "no id"}})
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if c, _ := s.Count(context.Background()); c != 0 {
		t.Errorf("partial write: Count = %d", c)
	}
}

func TestClosed(t *testing.T) {
	s := New()
	s.Close()
	if _, err := s.Tweets(context.Background()); !errors.Is(err, internalerr.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
	if _, err := s.UpsertTweets(context.Background(), []corpus.Tweet{{ID: "1"}}); !errors.Is(err, internalerr.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}
