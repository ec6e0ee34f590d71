package stoplist

import (
	"sort"
	"strings"
)

// Manager holds the configured stopwords on top of the language's
// built-in list. It is populated before use and read-only afterwards.
type Manager struct {
	stops map[string]Reason
}

// Reason explains why a token is a stopword
type Reason struct {
	Configured bool    `json:"configured,omitempty"` // listed in the stoplist file
	HighDF     bool    `json:"high_df,omitempty"`    // suggested from document frequency
	DFPercent  float64 `json:"df_percent,omitempty"` // share of documents containing the token
}

// NewManager creates a new stoplist manager
func NewManager(initialStops []string) *Manager {
	stops := make(map[string]Reason, len(initialStops))
	for _, s := range initialStops {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		stops[s] = Reason{Configured: true}
	}
	return &Manager{stops: stops}
}

// IsStop checks if a token is a stopword
func (m *Manager) IsStop(token string) bool {
	if m == nil {
		return false
	}
	_, ok := m.stops[token]
	return ok
}

// Add adds a token to the stoplist with a reason. A token already listed
// keeps its first reason.
func (m *Manager) Add(token string, reason Reason) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return
	}
	if _, ok := m.stops[token]; !ok {
		m.stops[token] = reason
	}
}

// Len returns the number of stopwords.
func (m *Manager) Len() int {
	if m == nil {
		return 0
	}
	return len(m.stops)
}

// All returns all stopwords, sorted
func (m *Manager) All() []string {
	if m == nil {
		return nil
	}
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

// Stats holds the document frequency of a single token
type Stats struct {
	Token string
	DF    int64
}

// Candidate represents a suggested stopword
type Candidate struct {
	Token  string `json:"token"`
	Reason Reason `json:"reason"`
}

// Thresholds defines criteria for stopword suggestions
type Thresholds struct {
	DFPercent float64 // tokens in more than this share of documents
	MinDocs   int64   // corpora smaller than this produce no suggestions
}

// DefaultThresholds returns sensible default thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DFPercent: 60.0,
		MinDocs:   10,
	}
}

// SuggestCandidates returns tokens whose document frequency exceeds the
// threshold, highest share first. Tokens already on the list are skipped.
func (m *Manager) SuggestCandidates(stats []Stats, totalDocs int64, thresholds Thresholds) []Candidate {
	if totalDocs <= 0 || totalDocs < thresholds.MinDocs {
		return nil
	}
	if thresholds.DFPercent <= 0 {
		thresholds.DFPercent = DefaultThresholds().DFPercent
	}

	var candidates []Candidate
	for _, s := range stats {
		if m.IsStop(s.Token) {
			continue
		}
		pct := float64(s.DF) / float64(totalDocs) * 100.0
		if pct <= thresholds.DFPercent {
			continue
		}
		candidates = append(candidates, Candidate{
			Token:  s.Token,
			Reason: Reason{HighDF: true, DFPercent: pct},
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Reason.DFPercent != candidates[j].Reason.DFPercent {
			return candidates[i].Reason.DFPercent > candidates[j].Reason.DFPercent
		}
		return candidates[i].Token < candidates[j].Token
	})
	return candidates
}
