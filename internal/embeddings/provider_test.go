package embeddings

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kamusis/embedprep/internal/config"
)

func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{
		config.KeyProvider, config.KeyModel, config.KeyBaseURL,
		config.KeyHFToken, config.KeyOpenAIKey, config.KeyGeminiKey, config.KeyOllamaHost,
	} {
		t.Setenv(k, "")
	}
	return home
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := LoadConfig(nil, Config{})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Provider != ProviderHuggingFace {
		t.Fatalf("expected huggingface default, got %q", cfg.Provider)
	}
	if cfg.APIKey != "" || cfg.Timeout != 0 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	home := isolateEnv(t)
	dir := filepath.Join(home, ".embedprep")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("EMBEDPREP_MODEL=from-dotenv\nHF_API_TOKEN=hf_dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.KeyBaseURL, "http://from-env")

	file := &config.Config{Provider: "huggingface", Model: "from-file", BaseURL: "http://from-file", Timeout: time.Minute}
	cfg, err := LoadConfig(file, Config{Model: "from-flag"})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Model != "from-flag" {
		t.Fatalf("flag should win, got %q", cfg.Model)
	}
	if cfg.BaseURL != "http://from-env" {
		t.Fatalf("env should beat file, got %q", cfg.BaseURL)
	}
	if cfg.APIKey != "hf_dotenv" {
		t.Fatalf("expected dotenv token, got %q", cfg.APIKey)
	}
	if cfg.Timeout != time.Minute {
		t.Fatalf("expected file timeout, got %v", cfg.Timeout)
	}

	cfg, err = LoadConfig(&config.Config{Model: "from-file"}, Config{})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Model != "from-dotenv" {
		t.Fatalf("dotenv should beat file, got %q", cfg.Model)
	}
}

func TestLoadConfig_OllamaHostFallback(t *testing.T) {
	isolateEnv(t)
	t.Setenv(config.KeyOllamaHost, "gpu-box:11434")

	cfg, err := LoadConfig(&config.Config{Provider: "ollama"}, Config{})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.BaseURL != "gpu-box:11434" {
		t.Fatalf("expected OLLAMA_HOST fallback, got %q", cfg.BaseURL)
	}
}

func TestNewFromConfig_UnknownProvider(t *testing.T) {
	_, err := NewFromConfig(context.Background(), &Config{Provider: "sentence-transformers"})
	if !errors.Is(err, ErrDependencyMissing) {
		t.Fatalf("expected ErrDependencyMissing, got %v", err)
	}
}

func TestNewFromConfig_FillsDefaultModel(t *testing.T) {
	p, err := NewFromConfig(context.Background(), &Config{Provider: ProviderHuggingFace})
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	if p.ModelID() != "huggingface:sentence-transformers/all-MiniLM-L6-v2" {
		t.Fatalf("unexpected model id: %s", p.ModelID())
	}
}

func TestNewFromConfig_GeminiRequiresKey(t *testing.T) {
	_, err := NewFromConfig(context.Background(), &Config{Provider: ProviderGemini})
	if !errors.Is(err, ErrDependencyMissing) {
		t.Fatalf("expected ErrDependencyMissing, got %v", err)
	}
}
