package rag

import (
	"context"
	"testing"

	"docanalyst/internal/config"
	"docanalyst/internal/models"
	"docanalyst/internal/providers"
	"docanalyst/internal/storage"
	"docanalyst/internal/util"

	"github.com/stretchr/testify/require"
)

func newTestPipeline(t *testing.T) (*Pipeline, *storage.DocumentStore) {
	t.Helper()
	cfg := config.Load()
	cfg.EmbedDim = 16
	pm, err := providers.NewManager("mock", "mock", cfg.EmbedDim)
	require.NoError(t, err)
	store := storage.NewDocumentStore()
	return NewPipeline(cfg, store, pm, pm, storage.NewAuditLog(32)), store
}

func testPages() []models.PageText {
	return []models.PageText{
		{Number: 1, Text: "El lenguaje JavaScript es interpretado. Fue diseñado para el navegador"},
		{Number: 2, Text: "Los programas JavaScript manipulan el documento. El lenguaje evoluciona"},
	}
}

func TestIngestKeepsChunksAndEmbeddingsParallel(t *testing.T) {
	p, store := newTestPipeline(t)
	res, err := p.Ingest(context.Background(), "apuntes.pdf", testPages())
	require.NoError(t, err)
	require.NotEmpty(t, res.Keywords)
	require.Equal(t, RelatedQuestions(), res.RelatedQuestions)

	doc, err := store.Get("apuntes.pdf")
	require.NoError(t, err)
	require.Len(t, doc.Chunks, 4)
	require.Equal(t, len(doc.Chunks), len(doc.Embeddings))
	require.Equal(t, len(doc.Chunks), doc.Index.Len())
	for i, c := range doc.Chunks {
		require.Equal(t, i, c.Index)
		require.GreaterOrEqual(t, c.Page, 1)
		require.LessOrEqual(t, c.Page, 2)
		require.NotEmpty(t, c.Text)
	}
}

func TestIngestEmptyDocumentLeavesStoreUntouched(t *testing.T) {
	p, store := newTestPipeline(t)
	_, err := p.Ingest(context.Background(), "vacio.pdf", []models.PageText{
		{Number: 1, Text: " . .. "},
	})
	require.ErrorIs(t, err, util.ErrEmptyDocument)
	_, err = store.Get("vacio.pdf")
	require.ErrorIs(t, err, util.ErrDocumentNotFound)
}

func TestIngestOverwritesSameID(t *testing.T) {
	p, store := newTestPipeline(t)
	_, err := p.Ingest(context.Background(), "doc.pdf", testPages())
	require.NoError(t, err)
	_, err = p.Ingest(context.Background(), "doc.pdf", []models.PageText{
		{Number: 1, Text: "Una sola frase"},
	})
	require.NoError(t, err)

	doc, err := store.Get("doc.pdf")
	require.NoError(t, err)
	require.Len(t, doc.Chunks, 1)
	require.Len(t, doc.Embeddings, 1)
}

func TestIngestUsesFallbackMetadataWhenExtractionIsGeneric(t *testing.T) {
	// The mock provider answers metadata prompts with the generic
	// placeholder author, which must resolve to the fixed fallback record.
	p, store := newTestPipeline(t)
	_, err := p.Ingest(context.Background(), "doc.pdf", testPages())
	require.NoError(t, err)

	doc, err := store.Get("doc.pdf")
	require.NoError(t, err)
	require.True(t, doc.MetadataFallback)
	require.Equal(t, FallbackMetadata(), doc.Metadata)
}

func TestAnswerUnknownDocument(t *testing.T) {
	p, store := newTestPipeline(t)
	_, err := p.Answer(context.Background(), "nope.pdf", "¿De qué trata?")
	require.ErrorIs(t, err, util.ErrDocumentNotFound)
	require.Equal(t, 0, store.Len())
}

func TestAnswerReturnsPageAndCitation(t *testing.T) {
	p, _ := newTestPipeline(t)
	_, err := p.Ingest(context.Background(), "apuntes.pdf", testPages())
	require.NoError(t, err)

	res, err := p.Answer(context.Background(), "apuntes.pdf", "¿Qué es JavaScript?")
	require.NoError(t, err)
	require.NotEmpty(t, res.Answer)
	require.NotEqual(t, fallbackAnswer, res.Answer)
	require.True(t, res.Page.Known)
	require.Contains(t, res.Citation, "Menéndez-Barzanallana Asensio, R.")
	require.Contains(t, res.Citation, "(p. "+res.Page.String()+")")
}

func TestAnswerDegradesToFixedAnswerOnGenerationFailure(t *testing.T) {
	cfg := config.Load()
	cfg.EmbedDim = 16
	pm, err := providers.NewManager("mock", "mock", cfg.EmbedDim)
	require.NoError(t, err)
	store := storage.NewDocumentStore()

	failing := stubLLM(func(op, _, _ string) (string, error) {
		if op == "answer" {
			return "No se puede responder con la información disponible.", nil
		}
		return `{"autores": ["García, M."], "titulo": "T", "editorial": "E", "año": "2020"}`, nil
	})
	p := NewPipeline(cfg, store, failing, pm, storage.NewAuditLog(32))
	_, err = p.Ingest(context.Background(), "doc.pdf", testPages())
	require.NoError(t, err)

	res, err := p.Answer(context.Background(), "doc.pdf", "¿Qué es JavaScript?")
	require.NoError(t, err)
	require.Equal(t, fallbackAnswer, res.Answer)
	require.True(t, res.Page.Known)
	require.NotEmpty(t, res.Citation)
}

func TestPreview(t *testing.T) {
	p, _ := newTestPipeline(t)
	_, err := p.Preview("nope.pdf")
	require.ErrorIs(t, err, util.ErrDocumentNotFound)

	ingested, err := p.Ingest(context.Background(), "doc.pdf", testPages())
	require.NoError(t, err)
	preview, err := p.Preview("doc.pdf")
	require.NoError(t, err)
	require.Equal(t, ingested.Keywords, preview.Keywords)
	require.Equal(t, RelatedQuestions(), preview.RelatedQuestions)
}
