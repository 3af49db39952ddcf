package embeddings

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
	"github.com/ollama/ollama/envconfig"
)

type ollamaProvider struct {
	model  string
	client *api.Client
}

// NewOllama constructs a provider backed by a local or remote Ollama server.
//
// BaseURL wins over OLLAMA_HOST; a bare host:port is treated as http.
// cfg.Timeout applies either way.
func NewOllama(cfg *Config) (Provider, error) {
	base := envconfig.Host()
	if cfg.BaseURL != "" {
		raw := cfg.BaseURL
		if !strings.Contains(raw, "://") {
			raw = "http://" + raw
		}
		u, err := url.Parse(strings.TrimRight(raw, "/"))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid ollama base URL %q: %v", ErrDependencyMissing, cfg.BaseURL, err)
		}
		base = u
	}
	return &ollamaProvider{
		model:  cfg.Model,
		client: api.NewClient(base, &http.Client{Timeout: cfg.Timeout}),
	}, nil
}

func (p *ollamaProvider) ModelID() string {
	return "ollama:" + p.model
}

func (p *ollamaProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if p.model == "" {
		return nil, fmt.Errorf("%w: embeddings model is not configured", ErrDependencyMissing)
	}
	resp, err := p.client.Embed(ctx, &api.EmbedRequest{
		Model: p.model,
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: ollama embed %s: %v", ErrModel, p.model, err)
	}
	return normalizeAll(resp.Embeddings, len(texts))
}
