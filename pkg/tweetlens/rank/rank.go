// Package rank selects the top phrases of a document-frequency matrix.
package rank

import (
	"fmt"
	"sort"

	"github.com/cognicore/tweetlens/pkg/tweetlens/internalerr"
	"github.com/cognicore/tweetlens/pkg/tweetlens/matrix"
	"github.com/cognicore/tweetlens/pkg/tweetlens/phrase"
)

// Source supplies (phrase, frequency) pairs. *matrix.Matrix implements it.
type Source interface {
	AllPhrases() []matrix.Entry
}

// Options controls a selection.
type Options struct {
	// Window restricts candidates by length. It may be narrower than the
	// window the matrix was built with.
	Window phrase.Window
	// K is the maximum number of phrases returned. Must be positive.
	K int
	// KeepOverlaps disables overlap suppression.
	KeepOverlaps bool
}

// SelectTop returns at most k phrases of length minLen..maxLen, highest
// document frequency first, leaving out any phrase contained in one that
// was already selected.
func SelectTop(src Source, minLen, maxLen, k int) ([]matrix.Entry, error) {
	return Select(src, Options{Window: phrase.Window{Min: minLen, Max: maxLen}, K: k})
}

// Select ranks the source's phrases by frequency descending, breaking ties
// by phrase text ascending, and walks that order accepting phrases until
// K are chosen. Unless KeepOverlaps is set, a candidate that is a
// contiguous sub-sequence of an accepted phrase is skipped.
func Select(src Source, opts Options) ([]matrix.Entry, error) {
	if opts.K <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", internalerr.ErrInvalidConfig, opts.K)
	}
	if err := opts.Window.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, nil
	}

	candidates := Sorted(src.AllPhrases(), opts.Window)

	var accepted []matrix.Entry
	for _, cand := range candidates {
		if len(accepted) >= opts.K {
			break
		}
		if !opts.KeepOverlaps && containedIn(cand.Phrase, accepted) {
			continue
		}
		accepted = append(accepted, cand)
	}
	return accepted, nil
}

// Sorted filters entries to the window and orders them by frequency
// descending, then phrase text ascending. The input is not modified.
func Sorted(entries []matrix.Entry, window phrase.Window) []matrix.Entry {
	type keyed struct {
		entry matrix.Entry
		text  string
	}
	filtered := make([]keyed, 0, len(entries))
	for _, e := range entries {
		if window.Includes(e.Phrase.Len()) {
			filtered = append(filtered, keyed{entry: e, text: e.Phrase.String()})
		}
	}

	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].entry.Frequency != filtered[j].entry.Frequency {
			return filtered[i].entry.Frequency > filtered[j].entry.Frequency
		}
		return filtered[i].text < filtered[j].text
	})

	out := make([]matrix.Entry, len(filtered))
	for i, k := range filtered {
		out[i] = k.entry
	}
	return out
}

func containedIn(p phrase.Phrase, accepted []matrix.Entry) bool {
	for _, a := range accepted {
		if a.Phrase.Contains(p) {
			return true
		}
	}
	return false
}
