package keywords

import "testing"

const sampleText = "El lenguaje JavaScript se ejecuta en el navegador. " +
	"El lenguaje JavaScript permite manipular páginas. " +
	"Un lenguaje JavaScript moderno incluye módulos y promesas."

func TestExtractRanksRecurringPhrasesFirst(t *testing.T) {
	e := NewExtractor()
	got := e.Extract(sampleText, 15)
	if len(got) == 0 {
		t.Fatalf("expected keywords")
	}
	if got[0] != "lenguaje javascript" {
		t.Fatalf("expected the recurring bigram first, got %q (all: %v)", got[0], got)
	}
}

func TestExtractFiltersStopwords(t *testing.T) {
	e := NewExtractor()
	for _, kw := range e.Extract(sampleText, 15) {
		if kw == "el" || kw == "en" || kw == "se" {
			t.Fatalf("stopword leaked into keywords: %q", kw)
		}
	}
}

func TestExtractRespectsMax(t *testing.T) {
	e := NewExtractor()
	if got := e.Extract(sampleText, 3); len(got) != 3 {
		t.Fatalf("expected 3 keywords, got %d", len(got))
	}
}

func TestExtractDeterministic(t *testing.T) {
	e := NewExtractor()
	a := e.Extract(sampleText, 10)
	b := e.Extract(sampleText, 10)
	if len(a) != len(b) {
		t.Fatalf("non-deterministic length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic order at %d: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestExtractEmptyText(t *testing.T) {
	e := NewExtractor()
	if got := e.Extract("", 5); len(got) != 0 {
		t.Fatalf("expected no keywords, got %v", got)
	}
}
