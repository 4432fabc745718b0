package rag

import (
	"context"
	"fmt"
	"strings"

	"docanalyst/internal/config"
	"docanalyst/internal/keywords"
	"docanalyst/internal/models"
	"docanalyst/internal/providers"
	"docanalyst/internal/storage"
	"docanalyst/internal/vector"
)

const answerSystemPrompt = "Eres un asistente experto en documentos técnicos y académicos."

const answerPromptFormat = `Actúa como un asistente académico experto en análisis documental. Responde con claridad, profundidad y precisión. Si la pregunta es ambigua, corta o general (como '¿Qué conceptos clave aparecen?'), interpreta el contenido del documento y ofrece una respuesta útil, incluso si los datos no están explícitos.

DOCUMENTO:
%s

PREGUNTA:
%s

RESPUESTA:
`

// fallbackAnswer replaces the answer when generation fails or produces
// degenerate content. The page and citation are still returned.
const fallbackAnswer = "Lo siento, ocurrió un error al generar la respuesta. Intenta nuevamente más tarde."

// cannotAnswerPhrase marks a generation as degenerate even though the call
// itself succeeded.
const cannotAnswerPhrase = "no se puede"

// RelatedQuestions returns the canonical question list attached to every
// ingested document. A fixed list, independent of document content.
func RelatedQuestions() []string {
	return []string{
		"¿Cuál es la idea principal del documento?",
		"¿Qué problema aborda el texto?",
		"¿Qué soluciones se proponen?",
		"¿Qué conceptos clave aparecen?",
		"¿Qué conclusiones se pueden extraer?",
	}
}

// Generator is the generative answer collaborator.
type Generator interface {
	Generate(ctx context.Context, operation, system, prompt string) (string, providers.ProviderInfo, error)
}

// Embedder is the embedding collaborator; it must return one vector per
// input, all of one fixed dimension.
type Embedder interface {
	Embed(ctx context.Context, operation string, inputs []string) ([][]float32, providers.ProviderInfo, error)
}

// Pipeline is the retrieval core: it ingests page texts into the document
// store and answers questions against stored documents.
type Pipeline struct {
	cfg       config.Config
	store     *storage.DocumentStore
	llm       Generator
	embedder  Embedder
	audit     *storage.AuditLog
	extractor *keywords.Extractor
}

func NewPipeline(cfg config.Config, store *storage.DocumentStore, llm Generator, embedder Embedder, audit *storage.AuditLog) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		store:     store,
		llm:       llm,
		embedder:  embedder,
		audit:     audit,
		extractor: keywords.NewExtractor(),
	}
}

type IngestResult struct {
	Keywords         []string `json:"keywords"`
	RelatedQuestions []string `json:"related_questions"`
}

// Ingest chunks, embeds and indexes a document, then stores it under
// documentID with overwrite semantics. On any error no store entry is
// created or replaced. Embedding failures are returned to the caller:
// without embeddings there is nothing to retrieve from.
func (p *Pipeline) Ingest(ctx context.Context, documentID string, pages []models.PageText) (IngestResult, error) {
	chunks, err := SplitPages(pages)
	if err != nil {
		return IngestResult{}, err
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, info, err := p.embedder.Embed(ctx, "ingest_embed", texts)
	p.recordCall("ingest_embed", documentID, info, err)
	if err != nil {
		return IngestResult{}, fmt.Errorf("embed chunks: %w", err)
	}
	index, err := vector.NewIndex(vectors)
	if err != nil {
		return IngestResult{}, fmt.Errorf("build index: %w", err)
	}

	fullText := strings.Join(texts, " ")
	kws := p.extractor.Extract(fullText, p.cfg.MaxKeywords)
	md, usedFallback := p.resolveMetadata(ctx, documentID, prefixRunes(fullText, p.cfg.MetadataPrefixLen))

	p.store.Put(documentID, &models.ProcessedDocument{
		ID:               documentID,
		Chunks:           chunks,
		Embeddings:       vectors,
		Index:            index,
		Keywords:         kws,
		Metadata:         md,
		MetadataFallback: usedFallback,
		RelatedQuestions: RelatedQuestions(),
	})
	return IngestResult{Keywords: kws, RelatedQuestions: RelatedQuestions()}, nil
}

// Answer retrieves the most relevant chunks for question and asks the
// generator for an answer over them. Generation failures degrade to a fixed
// apologetic answer; the page and citation are computed regardless. The only
// errors returned are util.ErrDocumentNotFound and query-embedding failures.
func (p *Pipeline) Answer(ctx context.Context, documentID, question string) (models.QueryResult, error) {
	doc, err := p.store.Get(documentID)
	if err != nil {
		return models.QueryResult{}, err
	}

	qvecs, info, err := p.embedder.Embed(ctx, "query_embed", []string{question})
	p.recordCall("query_embed", documentID, info, err)
	if err != nil {
		return models.QueryResult{}, fmt.Errorf("embed query: %w", err)
	}

	ranked := doc.Index.Rank(qvecs[0], p.cfg.TopK)
	contextText, page := assembleContext(ranked, doc.Chunks, p.cfg.ScoreThreshold)

	prompt := fmt.Sprintf(answerPromptFormat, contextText, question)
	text, genInfo, genErr := p.llm.Generate(ctx, "answer", answerSystemPrompt, prompt)
	p.recordCall("answer", documentID, genInfo, genErr)

	answer := strings.TrimSpace(text)
	if genErr != nil || answer == "" || strings.Contains(strings.ToLower(answer), cannotAnswerPhrase) {
		answer = fallbackAnswer
	}
	return models.QueryResult{
		Answer:   answer,
		Page:     page,
		Citation: Cite(doc.Metadata, page),
	}, nil
}

// Preview returns the stored keywords and related questions for a document.
func (p *Pipeline) Preview(documentID string) (IngestResult, error) {
	doc, err := p.store.Get(documentID)
	if err != nil {
		return IngestResult{}, err
	}
	return IngestResult{Keywords: doc.Keywords, RelatedQuestions: doc.RelatedQuestions}, nil
}

func prefixRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
