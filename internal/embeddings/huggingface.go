package embeddings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const defaultHuggingFaceBaseURL = "https://router.huggingface.co/hf-inference"

type huggingFaceProvider struct {
	model   string
	token   string
	baseURL string
	client  *http.Client
}

// NewHuggingFace constructs a provider backed by the Hugging Face inference
// feature-extraction pipeline.
//
// It uses the REST endpoint:
//
//	POST {baseURL}/models/{model}/pipeline/feature-extraction
//
// with JSON body:
//
//	{"inputs": ["...", "..."], "options": {"wait_for_model": true}}
//
// The token is optional; anonymous requests work for public models.
func NewHuggingFace(cfg *Config) Provider {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultHuggingFaceBaseURL
	}
	return &huggingFaceProvider{
		model:   cfg.Model,
		token:   cfg.APIKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

func (p *huggingFaceProvider) ModelID() string {
	return "huggingface:" + p.model
}

func (p *huggingFaceProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if p.model == "" {
		return nil, fmt.Errorf("%w: embeddings model is not configured", ErrDependencyMissing)
	}

	b, err := json.Marshal(map[string]any{
		"inputs":  texts,
		"options": map[string]any{"wait_for_model": true},
	})
	if err != nil {
		return nil, err
	}

	endpoint := p.baseURL + "/models/" + escapeModelPath(p.model) + "/pipeline/feature-extraction"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependencyMissing, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot reach %s: %v", ErrModel, p.baseURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read response: %v", ErrModel, err)
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: authentication failed for %s (HTTP %d); check %s", ErrModel, p.model, resp.StatusCode, APIKeyName(ProviderHuggingFace))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: embeddings request failed: HTTP %d: %s", ErrModel, resp.StatusCode, errorSnippet(body))
	}

	vectors, err := parseFeatureExtraction(body)
	if err != nil {
		return nil, err
	}
	return normalizeAll(vectors, len(texts))
}

// parseFeatureExtraction accepts either one vector per input or one vector per
// token per input; token vectors are mean-pooled.
func parseFeatureExtraction(body []byte) ([][]float32, error) {
	var sentences [][]float32
	if err := json.Unmarshal(body, &sentences); err == nil {
		return sentences, nil
	}
	var tokens [][][]float64
	if err := json.Unmarshal(body, &tokens); err != nil {
		return nil, fmt.Errorf("%w: cannot parse embeddings response: %v", ErrModel, err)
	}
	out := make([][]float32, len(tokens))
	for i, t := range tokens {
		v, err := meanPool(t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// escapeModelPath escapes each segment of an "org/name" model id.
func escapeModelPath(model string) string {
	parts := strings.Split(model, "/")
	for i, s := range parts {
		parts[i] = url.PathEscape(s)
	}
	return strings.Join(parts, "/")
}

// errorSnippet trims an error body for display.
func errorSnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 512 {
		s = s[:512] + "…"
	}
	return s
}
