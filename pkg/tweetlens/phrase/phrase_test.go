package phrase

import (
	"errors"
	"reflect"
	"testing"

	"github.com/cognicore/tweetlens/pkg/tweetlens/internalerr"
)

func TestGenerateOrder(t *testing.T) {
	got, err := Generate([]string{"a", "b", "c"}, 1, 2)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := []Phrase{
		{"a"}, {"a", "b"},
		{"b"}, {"b", "c"},
		{"c"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Generate = %v, want %v", got, want)
	}
}

func TestGenerateFixedLength(t *testing.T) {
	got, err := Generate([]string{"great", "product", "fast", "shipping"}, 2, 2)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := []string{"great product", "product fast", "fast shipping"}
	if len(got) != len(want) {
		t.Fatalf("expected %d phrases, got %d: %v", len(want), len(got), got)
	}
	for i, p := range got {
		if p.String() != want[i] {
			t.Errorf("phrase %d = %q, want %q", i, p.String(), want[i])
		}
	}
}

func TestGenerateShortInput(t *testing.T) {
	g, err := NewGenerator(2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Generate([]string{"alone"}); len(got) != 0 {
		t.Errorf("expected no phrases for one token, got %v", got)
	}
	if got := g.Generate(nil); len(got) != 0 {
		t.Errorf("expected no phrases for no tokens, got %v", got)
	}
}

func TestGenerateMaxBeyondInput(t *testing.T) {
	got, err := Generate([]string{"x", "y"}, 1, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 phrases, got %v", got)
	}
}

func TestGenerateCopiesTokens(t *testing.T) {
	tokens := []string{"a", "b"}
	got, _ := Generate(tokens, 2, 2)
	tokens[0] = "changed"
	if got[0][0] != "a" {
		t.Errorf("phrase shares memory with input: %v", got[0])
	}
}

func TestInvalidWindow(t *testing.T) {
	cases := []struct {
		name     string
		min, max int
	}{
		{"zero min", 0, 2},
		{"negative min", -1, 1},
		{"max below min", 3, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewGenerator(tc.min, tc.max); !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestPhraseContains(t *testing.T) {
	p := Parse("very happy customer")
	cases := []struct {
		sub  string
		want bool
	}{
		{"happy", true},
		{"very happy", true},
		{"happy customer", true},
		{"very happy customer", true},
		{"very customer", false},
		{"customer happy", false},
		{"very happy customer today", false},
	}
	for _, tc := range cases {
		if got := p.Contains(Parse(tc.sub)); got != tc.want {
			t.Errorf("Contains(%q) = %v, want %v", tc.sub, got, tc.want)
		}
	}
}

func TestPhraseEqual(t *testing.T) {
	if !Parse("a b").Equal(Phrase{"a", "b"}) {
		t.Error("expected equal phrases")
	}
	if Parse("a b").Equal(Parse("b a")) {
		t.Error("order must matter")
	}
	if Parse("a").Equal(Parse("a b")) {
		t.Error("length must matter")
	}
}

func TestWindow(t *testing.T) {
	w := Window{Min: 2, Max: 3}
	if w.Includes(1) || !w.Includes(2) || !w.Includes(3) || w.Includes(4) {
		t.Errorf("Includes wrong for %s", w)
	}
	if !(Window{Min: 2, Max: 2}).Within(w) {
		t.Error("2..2 should lie within 2..3")
	}
	if (Window{Min: 1, Max: 2}).Within(w) {
		t.Error("1..2 should not lie within 2..3")
	}
	if w.String() != "2..3" {
		t.Errorf("String = %q", w.String())
	}
}
