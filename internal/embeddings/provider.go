package embeddings

import (
	"context"
	"fmt"
	"time"

	"github.com/kamusis/embedprep/internal/config"
)

// Provider embeds a batch of texts into fixed-length float vectors.
//
// Embed issues a single request for the whole batch and returns one unit-length
// vector per text, in input order.
type Provider interface {
	ModelID() string
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider names accepted by NewFromConfig.
const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"
	ProviderOllama      = "ollama"
	ProviderGemini      = "gemini"
)

// Providers lists every provider name, default first.
var Providers = []string{ProviderHuggingFace, ProviderOpenAI, ProviderOllama, ProviderGemini}

// Config contains the resolved embeddings configuration.
type Config struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	// Timeout bounds each HTTP request. Zero means no limit.
	Timeout time.Duration
}

// DefaultModel returns the model used by provider when none is configured.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderHuggingFace:
		return "sentence-transformers/all-MiniLM-L6-v2"
	case ProviderOpenAI:
		return "text-embedding-3-small"
	case ProviderOllama:
		return "all-minilm"
	case ProviderGemini:
		return "text-embedding-004"
	}
	return ""
}

// APIKeyName returns the env/dotenv key holding credentials for provider.
func APIKeyName(provider string) string {
	switch provider {
	case ProviderHuggingFace:
		return config.KeyHFToken
	case ProviderOpenAI:
		return config.KeyOpenAIKey
	case ProviderGemini:
		return config.KeyGeminiKey
	}
	return ""
}

// LoadConfig resolves embeddings config. For each field the first non-empty
// value wins: flags, process environment, ~/.embedprep/.env, then file.
func LoadConfig(file *config.Config, flags Config) (*Config, error) {
	if file == nil {
		file = &config.Config{}
	}
	provider, err := resolve(flags.Provider, config.KeyProvider, file.Provider)
	if err != nil {
		return nil, err
	}
	if provider == "" {
		provider = ProviderHuggingFace
	}
	model, err := resolve(flags.Model, config.KeyModel, file.Model)
	if err != nil {
		return nil, err
	}
	baseURL, err := resolve(flags.BaseURL, config.KeyBaseURL, file.BaseURL)
	if err != nil {
		return nil, err
	}
	if baseURL == "" && provider == ProviderOllama {
		if baseURL, err = config.GetConfigValue(config.KeyOllamaHost); err != nil {
			return nil, err
		}
	}
	apiKey := flags.APIKey
	if k := APIKeyName(provider); apiKey == "" && k != "" {
		if apiKey, err = config.GetConfigValue(k); err != nil {
			return nil, err
		}
	}
	timeout := flags.Timeout
	if timeout == 0 {
		timeout = file.Timeout
	}

	return &Config{
		Provider: provider,
		Model:    model,
		APIKey:   apiKey,
		BaseURL:  baseURL,
		Timeout:  timeout,
	}, nil
}

func resolve(flag, key, fileValue string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	v, err := config.GetConfigValue(key)
	if err != nil || v != "" {
		return v, err
	}
	return fileValue, nil
}

// NewFromConfig returns an embeddings provider.
func NewFromConfig(ctx context.Context, cfg *Config) (Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: embeddings config is nil", ErrDependencyMissing)
	}
	if cfg.Provider == "" {
		return nil, fmt.Errorf("%w: embeddings provider is not configured (set %s)", ErrDependencyMissing, config.KeyProvider)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel(cfg.Provider)
	}
	switch cfg.Provider {
	case ProviderHuggingFace:
		return NewHuggingFace(cfg), nil
	case ProviderOpenAI:
		return NewOpenAI(cfg)
	case ProviderOllama:
		return NewOllama(cfg)
	case ProviderGemini:
		return NewGemini(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported embeddings provider: %s", ErrDependencyMissing, cfg.Provider)
	}
}
