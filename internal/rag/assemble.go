package rag

import (
	"strings"

	"docanalyst/internal/models"
	"docanalyst/internal/vector"
)

const contextSeparator = "\n---\n"

// noContextInstruction replaces the context when no candidate clears the
// relevance threshold, steering the generator toward a general reading
// instead of failing the query.
const noContextInstruction = "El documento no contiene fragmentos directamente relacionados con la pregunta. Sin embargo, puedes ofrecer una interpretación general basada en el contenido completo."

// assembleContext keeps the ranked candidates scoring strictly above
// threshold, in rank order, and joins their texts. The reported page is
// always the page of the highest-ranked candidate, even when that candidate
// fell below the threshold: citation provenance points at the nearest match
// whether or not its text was judged relevant enough to quote.
func assembleContext(ranked []vector.Match, chunks []models.Chunk, threshold float64) (string, models.PageRef) {
	if len(ranked) == 0 {
		return noContextInstruction, models.PageRef{}
	}
	page := models.KnownPage(chunks[ranked[0].ChunkIndex].Page)
	parts := make([]string, 0, len(ranked))
	for _, m := range ranked {
		if m.Score > threshold {
			parts = append(parts, chunks[m.ChunkIndex].Text)
		}
	}
	if len(parts) == 0 {
		return noContextInstruction, page
	}
	return strings.Join(parts, contextSeparator), page
}
