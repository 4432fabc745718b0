package rag

import (
	"strings"

	"docanalyst/internal/models"
	"docanalyst/internal/util"
)

// SplitPages normalizes each page and splits it into sentence fragments on
// the period character, dropping blank fragments. Chunk indices run across
// the whole document, not per page; pages is expected in source order with
// 1-based page numbers. Returns util.ErrEmptyDocument when no page yields a
// fragment.
//
// Splitting on a bare '.' mis-handles abbreviations and decimal numbers;
// that behavior is kept intentionally so retrieval units stay reproducible.
func SplitPages(pages []models.PageText) ([]models.Chunk, error) {
	chunks := make([]models.Chunk, 0)
	for _, p := range pages {
		text := util.NormalizeText(p.Text)
		if text == "" {
			continue
		}
		for _, frag := range strings.Split(text, ".") {
			frag = strings.TrimSpace(frag)
			if frag == "" {
				continue
			}
			chunks = append(chunks, models.Chunk{Index: len(chunks), Text: frag, Page: p.Number})
		}
	}
	if len(chunks) == 0 {
		return nil, util.ErrEmptyDocument
	}
	return chunks, nil
}
