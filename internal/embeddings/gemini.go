package embeddings

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

type geminiProvider struct {
	model  string
	client *genai.Client
}

// NewGemini constructs a provider backed by the Gemini API embedding endpoint.
func NewGemini(ctx context.Context, cfg *Config) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: Gemini API key is not configured (set %s)", ErrDependencyMissing, APIKeyName(ProviderGemini))
	}
	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot create genai client: %v", ErrDependencyMissing, err)
	}
	return &geminiProvider{model: cfg.Model, client: client}, nil
}

func (p *geminiProvider) ModelID() string {
	return "gemini:" + p.model
}

func (p *geminiProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if p.model == "" {
		return nil, fmt.Errorf("%w: embeddings model is not configured", ErrDependencyMissing)
	}
	contents := make([]*genai.Content, len(texts))
	for i, t := range texts {
		contents[i] = &genai.Content{
			Parts: []*genai.Part{{Text: t}},
		}
	}

	result, err := p.client.Models.EmbedContent(ctx, p.model, contents, &genai.EmbedContentConfig{})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate embeddings: %v", ErrModel, err)
	}

	vectors := make([][]float32, len(result.Embeddings))
	for i, e := range result.Embeddings {
		if e == nil {
			return nil, fmt.Errorf("%w: missing embedding for input %d", ErrModel, i)
		}
		vectors[i] = e.Values
	}
	return normalizeAll(vectors, len(texts))
}
