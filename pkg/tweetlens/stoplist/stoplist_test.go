package stoplist

import (
	"reflect"
	"testing"
)

func TestManagerBasic(t *testing.T) {
	mgr := NewManager([]string{"RT", " via ", ""})

	if !mgr.IsStop("rt") {
		t.Error("'rt' should be a stopword")
	}
	if !mgr.IsStop("via") {
		t.Error("'via' should be a stopword")
	}
	if mgr.IsStop("hello") {
		t.Error("'hello' should not be a stopword")
	}
	if mgr.Len() != 2 {
		t.Errorf("Len = %d, want 2", mgr.Len())
	}
}

func TestManagerNil(t *testing.T) {
	var mgr *Manager
	if mgr.IsStop("the") {
		t.Error("nil manager should hold no stopwords")
	}
}

func TestManagerAdd(t *testing.T) {
	mgr := NewManager([]string{"rt"})

	mgr.Add(" Test ", Reason{HighDF: true})
	mgr.Add("rt", Reason{HighDF: true})
	mgr.Add("", Reason{HighDF: true})
	if !mgr.IsStop("test") {
		t.Error("'test' should be stopword after adding")
	}
	if mgr.Len() != 2 {
		t.Errorf("Len = %d, want 2", mgr.Len())
	}
	if got := mgr.stops["rt"]; !got.Configured || got.HighDF {
		t.Errorf("rt reason = %+v, want the configured one kept", got)
	}
}

func TestManagerAllSorted(t *testing.T) {
	mgr := NewManager([]string{"zebra", "apple", "mango"})
	if got := mgr.All(); !reflect.DeepEqual(got, []string{"apple", "mango", "zebra"}) {
		t.Errorf("All = %v", got)
	}
	var none *Manager
	if none.All() != nil {
		t.Error("nil manager should list nothing")
	}
}

func TestSuggestCandidates(t *testing.T) {
	mgr := NewManager([]string{"rt"})
	stats := []Stats{
		{Token: "rt", DF: 90},
		{Token: "amp", DF: 80},
		{Token: "love", DF: 80},
		{Token: "great", DF: 95},
		{Token: "product", DF: 30},
	}

	got := mgr.SuggestCandidates(stats, 100, DefaultThresholds())
	var tokens []string
	for _, c := range got {
		tokens = append(tokens, c.Token)
		if !c.Reason.HighDF {
			t.Errorf("%s should be marked HighDF", c.Token)
		}
	}
	want := []string{"great", "amp", "love"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("candidates = %v, want %v", tokens, want)
	}
	if got[0].Reason.DFPercent != 95 {
		t.Errorf("DFPercent = %v, want 95", got[0].Reason.DFPercent)
	}
}

func TestSuggestCandidatesSmallCorpus(t *testing.T) {
	mgr := NewManager(nil)
	stats := []Stats{{Token: "all", DF: 5}}
	if got := mgr.SuggestCandidates(stats, 5, DefaultThresholds()); got != nil {
		t.Errorf("expected no candidates below MinDocs, got %v", got)
	}
}
