package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoaderComponents(t *testing.T) {
	dir := t.TempDir()
	stopPath := filepath.Join(dir, "stoplist.yaml")
	lexPath := filepath.Join(dir, "lexicon.yaml")
	os.WriteFile(stopPath, []byte("terms: [rt]\n"), 0644)
	os.WriteFile(lexPath, []byte("synonyms:\n  - canonical: great\n    variants: [gr8]\n"), 0644)

	loader := &Loader{Language: LanguageConfig{
		Name:           "english",
		StoplistPath:   stopPath,
		LexiconPath:    lexPath,
		MinTokenLength: 2,
	}}
	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer comp.Close()

	if comp.Lexicon == nil || comp.Stoplist.Len() != 1 {
		t.Fatalf("components not loaded: %+v", comp)
	}
	got := comp.Tokenizer.Tokenize("RT gr8 product @shop")
	want := []string{"great", "product"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestLoaderDefaults(t *testing.T) {
	loader := &Loader{Language: Default().Language}
	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer comp.Close()

	if comp.Tokenizer.Language() != "english" {
		t.Errorf("Language = %q", comp.Tokenizer.Language())
	}
	got := comp.Tokenizer.Tokenize("the services were running")
	want := []string{"services", "running"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestLoaderDefaultsKeepSurfaceForms(t *testing.T) {
	comp, err := (&Loader{Language: Default().Language}).Load()
	if err != nil {
		t.Fatal(err)
	}
	defer comp.Close()

	// "customers" and "custom" share the stem "custom"
	got := comp.Tokenizer.Tokenize("Very happy customers want custom services")
	want := []string{"happy", "customers", "want", "custom", "services"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestLoaderDefaultsDropContractions(t *testing.T) {
	comp, err := (&Loader{Language: Default().Language}).Load()
	if err != nil {
		t.Fatal(err)
	}
	defer comp.Close()

	got := comp.Tokenizer.Tokenize("Didn't love it, won't buy. Isn’t great; the customer's order")
	want := []string{"love", "buy", "great", "customer", "order"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestLoaderStemOptIn(t *testing.T) {
	lc := Default().Language
	lc.Stem = true
	comp, err := (&Loader{Language: lc}).Load()
	if err != nil {
		t.Fatal(err)
	}
	defer comp.Close()

	got := comp.Tokenizer.Tokenize("the services were running")
	want := []string{"servic", "run"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestLoaderErrors(t *testing.T) {
	cases := []LanguageConfig{
		{Name: "klingon"},
		{StoplistPath: filepath.Join(t.TempDir(), "missing.yaml")},
		{LexiconPath: filepath.Join(t.TempDir(), "missing.yaml")},
	}
	for i, lc := range cases {
		if _, err := (&Loader{Language: lc}).Load(); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}
