package providers

import (
	"context"
	"strings"
	"testing"
)

func TestMockEmbedDeterministic(t *testing.T) {
	m := NewMockProvider(16)
	a, _, err := m.Embed(context.Background(), EmbedRequest{Inputs: []string{"hola"}, Dimension: 16})
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	b, _, err := m.Embed(context.Background(), EmbedRequest{Inputs: []string{"hola"}, Dimension: 16})
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	if len(a) != 1 || len(a[0]) != 16 {
		t.Fatalf("unexpected shape: %d x %d", len(a), len(a[0]))
	}
	for i := range a[0] {
		if a[0][i] != b[0][i] {
			t.Fatalf("non-deterministic vector at %d", i)
		}
	}
}

func TestMockEmbedDistinguishesInputs(t *testing.T) {
	m := NewMockProvider(16)
	vecs, _, err := m.Embed(context.Background(), EmbedRequest{Inputs: []string{"hola", "adiós"}, Dimension: 16})
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	same := true
	for i := range vecs[0] {
		if vecs[0][i] != vecs[1][i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("distinct inputs produced identical vectors")
	}
}

func TestMockGenerateMetadataOperation(t *testing.T) {
	m := NewMockProvider(16)
	resp, _, err := m.Generate(context.Background(), GenerateRequest{Operation: "metadata_extract", Prompt: "x"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(resp.Text, "Autor, A.") {
		t.Fatalf("expected placeholder metadata, got %q", resp.Text)
	}
}
