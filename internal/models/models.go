package models

import (
	"encoding/json"
	"strconv"

	"docanalyst/internal/vector"
)

// PageText is the raw text of a single source page, 1-based.
type PageText struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Chunk is the minimal retrievable unit of a document. Index is the position
// in the document-wide chunk sequence; Page is the 1-based source page.
type Chunk struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Metadata is the bibliographic record used for citation rendering. The JSON
// tags match the shape the extraction prompt asks the model for.
type Metadata struct {
	Authors   []string `json:"autores"`
	Title     string   `json:"titulo"`
	Publisher string   `json:"editorial"`
	Year      string   `json:"año"`
}

// ProcessedDocument is everything derived from one ingested document.
// Embeddings runs parallel to Chunks. Owned by the DocumentStore; treated as
// read-only once stored.
type ProcessedDocument struct {
	ID               string
	Chunks           []Chunk
	Embeddings       [][]float32
	Index            *vector.Index
	Keywords         []string
	Metadata         Metadata
	MetadataFallback bool
	RelatedQuestions []string
}

// PageRef is a 1-based page number, or unknown when provenance could not be
// determined (no rankable chunk).
type PageRef struct {
	Number int
	Known  bool
}

func KnownPage(n int) PageRef { return PageRef{Number: n, Known: true} }

func (p PageRef) String() string {
	if !p.Known {
		return "desconocida"
	}
	return strconv.Itoa(p.Number)
}

func (p PageRef) MarshalJSON() ([]byte, error) {
	if !p.Known {
		return json.Marshal("desconocida")
	}
	return json.Marshal(p.Number)
}

// QueryResult is the answer to a single question. Ephemeral, never stored.
type QueryResult struct {
	Answer   string  `json:"answer"`
	Page     PageRef `json:"page"`
	Citation string  `json:"citation"`
}
