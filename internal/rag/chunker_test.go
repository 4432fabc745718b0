package rag

import (
	"errors"
	"testing"

	"docanalyst/internal/models"
	"docanalyst/internal/util"
)

func TestSplitPagesAssignsGlobalIndices(t *testing.T) {
	pages := []models.PageText{
		{Number: 1, Text: "Hola mundo. Segunda frase"},
		{Number: 2, Text: "   "},
		{Number: 3, Text: "Tercera."},
	}
	chunks, err := SplitPages(pages)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Index != i {
			t.Fatalf("chunk %d has index %d", i, c.Index)
		}
	}
	if chunks[0].Page != 1 || chunks[1].Page != 1 || chunks[2].Page != 3 {
		t.Fatalf("unexpected pages: %+v", chunks)
	}
	if chunks[2].Text != "Tercera" {
		t.Fatalf("unexpected chunk text: %q", chunks[2].Text)
	}
}

func TestSplitPagesNormalizesBeforeSplitting(t *testing.T) {
	chunks, err := SplitPages([]models.PageText{{Number: 1, Text: "Uno.\n\nDos   tres"}})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(chunks) != 2 || chunks[0].Text != "Uno" || chunks[1].Text != "Dos tres" {
		t.Fatalf("unexpected chunks: %+v", chunks)
	}
}

func TestSplitPagesEmptyDocument(t *testing.T) {
	pages := []models.PageText{
		{Number: 1, Text: " . . ."},
		{Number: 2, Text: "\n\n\t"},
	}
	_, err := SplitPages(pages)
	if !errors.Is(err, util.ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
}
