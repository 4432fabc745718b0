package config

import (
	"os"
	"strconv"
)

type Config struct {
	APIAddr           string
	LLMProviders      string
	EmbedProviders    string
	EmbedDim          int
	TopK              int
	ScoreThreshold    float64
	MaxKeywords       int
	MetadataPrefixLen int
	MaxUploadBytes    int64
	AuditLimit        int
}

func Load() Config {
	return Config{
		APIAddr:           getenv("DOCANALYST_API_ADDR", ":8000"),
		LLMProviders:      getenv("DOCANALYST_LLM_PROVIDERS", "mock"),
		EmbedProviders:    getenv("DOCANALYST_EMBED_PROVIDERS", "mock"),
		EmbedDim:          getenvInt("DOCANALYST_EMBED_DIM", 384),
		TopK:              getenvInt("DOCANALYST_TOP_K", 3),
		ScoreThreshold:    getenvFloat("DOCANALYST_SCORE_THRESHOLD", 0.3),
		MaxKeywords:       getenvInt("DOCANALYST_MAX_KEYWORDS", 15),
		MetadataPrefixLen: getenvInt("DOCANALYST_METADATA_PREFIX_LEN", 3000),
		MaxUploadBytes:    int64(getenvInt("DOCANALYST_MAX_UPLOAD_MB", 64)) << 20,
		AuditLimit:        getenvInt("DOCANALYST_AUDIT_LIMIT", 256),
	}
}

func getenv(k, fallback string) string {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvFloat(k string, fallback float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
