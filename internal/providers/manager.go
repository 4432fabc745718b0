package providers

import (
	"context"
	"fmt"
	"strings"
)

type namedLLMProvider struct {
	ref      ProviderRef
	provider LLMProvider
}

type namedEmbedProvider struct {
	ref      ProviderRef
	provider EmbeddingProvider
}

// Manager owns the configured collaborator providers and applies
// first-success fallback across them in configuration order.
type Manager struct {
	embedDim       int
	llmProviders   []namedLLMProvider
	embedProviders []namedEmbedProvider
}

func NewManager(llmList, embedList string, embedDim int) (*Manager, error) {
	m := &Manager{embedDim: embedDim}
	for _, ref := range ParseProviderList(llmList) {
		p, err := buildProvider(ref, embedDim)
		if err != nil {
			return nil, err
		}
		llm, ok := p.(LLMProvider)
		if !ok {
			return nil, fmt.Errorf("provider %s does not support llm", ref.Raw)
		}
		m.llmProviders = append(m.llmProviders, namedLLMProvider{ref: ref, provider: llm})
	}
	for _, ref := range ParseProviderList(embedList) {
		p, err := buildProvider(ref, embedDim)
		if err != nil {
			return nil, err
		}
		embed, ok := p.(EmbeddingProvider)
		if !ok {
			return nil, fmt.Errorf("provider %s does not support embeddings", ref.Raw)
		}
		m.embedProviders = append(m.embedProviders, namedEmbedProvider{ref: ref, provider: embed})
	}
	return m, nil
}

// Embed runs the embedding providers in order and returns the first
// successful, non-empty result.
func (m *Manager) Embed(ctx context.Context, operation string, inputs []string) ([][]float32, ProviderInfo, error) {
	var (
		info ProviderInfo
		err  error
	)
	for _, np := range m.embedProviders {
		var vectors [][]float32
		vectors, info, err = np.provider.Embed(ctx, EmbedRequest{
			Operation: operation,
			Inputs:    inputs,
			Dimension: m.embedDim,
		})
		if err == nil && len(vectors) == len(inputs) {
			return vectors, info, nil
		}
		if err == nil {
			err = fmt.Errorf("provider %s returned %d vectors for %d inputs", np.ref.Raw, len(vectors), len(inputs))
		}
	}
	if err == nil {
		err = fmt.Errorf("no embedding providers configured")
	}
	return nil, info, err
}

// Generate runs the LLM providers in order and returns the first successful
// response with non-blank text.
func (m *Manager) Generate(ctx context.Context, operation, system, prompt string) (string, ProviderInfo, error) {
	var (
		info ProviderInfo
		err  error
	)
	for _, np := range m.llmProviders {
		var resp GenerateResponse
		resp, info, err = np.provider.Generate(ctx, GenerateRequest{
			Operation: operation,
			System:    system,
			Prompt:    prompt,
		})
		if err == nil && strings.TrimSpace(resp.Text) != "" {
			return resp.Text, info, nil
		}
		if err == nil {
			err = fmt.Errorf("provider %s returned blank text", np.ref.Raw)
		}
	}
	if err == nil {
		err = fmt.Errorf("no llm providers configured")
	}
	return "", info, err
}

func buildProvider(ref ProviderRef, dim int) (any, error) {
	switch strings.ToLower(ref.Name) {
	case "mock":
		return NewMockProvider(dim), nil
	case "openai":
		return NewOpenAIProvider(ref.KeyAlias), nil
	case "ollama":
		return NewOllamaEmbeddingProvider(ref.KeyAlias), nil
	case "groq":
		return NewGroqProvider(ref.KeyAlias), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", ref.Name)
	}
}
