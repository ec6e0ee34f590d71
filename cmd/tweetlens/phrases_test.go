package main

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/cognicore/tweetlens/pkg/tweetlens/config"
	"github.com/cognicore/tweetlens/pkg/tweetlens/stoplist"
)

func TestWriteStoplistMergesCandidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stoplist.yaml")
	configured := stoplist.NewManager([]string{"rt", "amp"})
	candidates := []stoplist.Candidate{
		{Token: "love", Reason: stoplist.Reason{HighDF: true, DFPercent: 90}},
		{Token: "rt", Reason: stoplist.Reason{HighDF: true, DFPercent: 80}},
	}

	if err := writeStoplist(path, configured, candidates); err != nil {
		t.Fatalf("writeStoplist: %v", err)
	}
	sl, err := config.LoadStoplist(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"amp", "love", "rt"}; !reflect.DeepEqual(sl.Terms, want) {
		t.Errorf("Terms = %v, want %v", sl.Terms, want)
	}
	if configured.IsStop("love") {
		t.Error("configured stoplist must not change")
	}
}

func TestPhrasesWriteStoplist(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	var tweets []string
	for i := 0; i < 10; i++ {
		tweets = append(tweets, fmt.Sprintf(`{"tweet_id": %d, "text": "RT love thing%c"}`, i+1, 'a'+i))
	}
	corpusPath := filepath.Join(dir, "tweets.json")
	if err := os.WriteFile(corpusPath, []byte(`{"tweets": [`+strings.Join(tweets, ",")+`]}`), 0644); err != nil {
		t.Fatal(err)
	}
	stopPath := filepath.Join(dir, "stoplist.yaml")
	if err := config.SaveStoplist(stopPath, []string{"rt"}); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "tweetlens.yaml")
	cfg := fmt.Sprintf("corpus:\n  path: %s\nlanguage:\n  stoplist: %s\n", corpusPath, stopPath)
	if err := os.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "suggested.yaml")
	stdout, err := run(t, "phrases", "--config", cfgPath, "--write-stoplist", out)
	if err != nil {
		t.Fatalf("phrases: %v", err)
	}
	if !strings.Contains(stdout, "Stopword candidates") {
		t.Errorf("candidates not listed:\n%s", stdout)
	}

	sl, err := config.LoadStoplist(out)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"love", "rt"}; !reflect.DeepEqual(sl.Terms, want) {
		t.Errorf("Terms = %v, want %v", sl.Terms, want)
	}
}
