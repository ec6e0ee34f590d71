package rank

import (
	"errors"
	"reflect"
	"testing"

	"github.com/cognicore/tweetlens/pkg/tweetlens/internalerr"
	"github.com/cognicore/tweetlens/pkg/tweetlens/matrix"
	"github.com/cognicore/tweetlens/pkg/tweetlens/phrase"
)

// fixedSource serves a hand-written frequency table.
type fixedSource map[string]int

func (s fixedSource) AllPhrases() []matrix.Entry {
	out := make([]matrix.Entry, 0, len(s))
	for text, freq := range s {
		out = append(out, matrix.Entry{Phrase: phrase.Parse(text), Frequency: freq})
	}
	return out
}

func texts(entries []matrix.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Phrase.String()
	}
	return out
}

// corpusTable is the document frequency of the corpus
// "great product great service", "great product", "bad service"
// for phrases of one or two tokens.
var corpusTable = fixedSource{
	"great":         2,
	"great product": 2,
	"product":       2,
	"service":       2,
	"product great": 1,
	"great service": 1,
	"bad":           1,
	"bad service":   1,
}

func TestSelectTieBreak(t *testing.T) {
	got, err := Select(corpusTable, Options{Window: phrase.Window{Min: 1, Max: 2}, K: 3, KeepOverlaps: true})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"great", "great product", "product"}
	if !reflect.DeepEqual(texts(got), want) {
		t.Errorf("Select = %v, want %v", texts(got), want)
	}
	for _, e := range got {
		if e.Frequency != 2 {
			t.Errorf("%s frequency = %d, want 2", e.Phrase, e.Frequency)
		}
	}
}

func TestSelectTopSuppressesOverlaps(t *testing.T) {
	got, err := SelectTop(corpusTable, 1, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	// "product" lies inside the accepted "great product".
	want := []string{"great", "great product", "service"}
	if !reflect.DeepEqual(texts(got), want) {
		t.Errorf("SelectTop = %v, want %v", texts(got), want)
	}
}

func TestSuppressionHigherRankedSuperPhrase(t *testing.T) {
	src := fixedSource{
		"very happy": 6,
		"happy":      5,
		"sad":        2,
	}
	got, err := SelectTop(src, 1, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"very happy", "sad"}
	if !reflect.DeepEqual(texts(got), want) {
		t.Errorf("SelectTop = %v, want %v", texts(got), want)
	}
}

func TestSuppressionOnlyLooksBackwards(t *testing.T) {
	// "happy" outranks "very happy", so both are kept: suppression only
	// removes phrases contained in an already accepted one.
	src := fixedSource{
		"very happy": 3,
		"happy":      5,
		"very":       4,
	}
	got, err := SelectTop(src, 1, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"happy", "very", "very happy"}
	if !reflect.DeepEqual(texts(got), want) {
		t.Errorf("SelectTop = %v, want %v", texts(got), want)
	}
}

func TestSelectNarrowWindow(t *testing.T) {
	got, err := SelectTop(corpusTable, 2, 2, 10)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"great product", "bad service", "great service", "product great"}
	if !reflect.DeepEqual(texts(got), want) {
		t.Errorf("SelectTop = %v, want %v", texts(got), want)
	}
}

func TestSelectFewerThanK(t *testing.T) {
	got, err := SelectTop(fixedSource{"only": 1}, 1, 1, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 phrase, got %v", texts(got))
	}
}

func TestSelectEmpty(t *testing.T) {
	got, err := SelectTop(fixedSource{}, 1, 3, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected no phrases, got %v", texts(got))
	}
	if got, err := Select(nil, Options{Window: phrase.Window{Min: 1, Max: 1}, K: 1}); err != nil || got != nil {
		t.Errorf("nil source = %v, %v", got, err)
	}
}

func TestSelectInvalidConfig(t *testing.T) {
	if _, err := SelectTop(corpusTable, 1, 2, 0); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("k=0: expected ErrInvalidConfig, got %v", err)
	}
	if _, err := SelectTop(corpusTable, 1, 2, -1); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("k<0: expected ErrInvalidConfig, got %v", err)
	}
	if _, err := SelectTop(corpusTable, 2, 1, 3); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("bad window: expected ErrInvalidConfig, got %v", err)
	}
}

func TestSortedDoesNotModifyInput(t *testing.T) {
	entries := corpusTable.AllPhrases()
	before := make([]matrix.Entry, len(entries))
	copy(before, entries)

	Sorted(entries, phrase.Window{Min: 1, Max: 2})
	if !reflect.DeepEqual(entries, before) {
		t.Error("Sorted reordered its input")
	}
}
