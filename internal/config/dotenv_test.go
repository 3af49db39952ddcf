package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// withHome points HOME at a temp dir holding an empty ~/.embedprep and returns that dir.
func withHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".embedprep")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadDotEnv_Missing(t *testing.T) {
	withHome(t)

	m, err := LoadDotEnv()
	if err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if len(m) != 0 {
		t.Fatalf("expected empty map, got %v", m)
	}
}

func TestLoadDotEnv_SkipsCommentsAndJunk(t *testing.T) {
	dir := withHome(t)
	body := "# token\nHF_API_TOKEN=hf_abc\n\nnot a pair\n=novalue\nexport OLLAMA_HOST= \"http://box:11434\"\nEMBEDPREP_MODEL='a b'\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	m, err := LoadDotEnv()
	if err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if len(m) != 3 {
		t.Fatalf("expected 3 keys, got %v", m)
	}
	if m[KeyHFToken] != "hf_abc" {
		t.Fatalf("unexpected token: %q", m[KeyHFToken])
	}
	if m[KeyOllamaHost] != "http://box:11434" || m[KeyModel] != "a b" {
		t.Fatalf("unexpected values: %v", m)
	}
}

func TestGetConfigValue_Precedence(t *testing.T) {
	dir := withHome(t)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("HF_API_TOKEN=from-dotenv\nEMBEDPREP_MODEL=m\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(KeyHFToken, "from-env")
	t.Setenv(KeyModel, "")

	v, err := GetConfigValue(KeyHFToken)
	if err != nil {
		t.Fatalf("GetConfigValue: %v", err)
	}
	if v != "from-env" {
		t.Fatalf("expected env to win, got %q", v)
	}

	v, err = GetConfigValue(KeyModel)
	if err != nil {
		t.Fatalf("GetConfigValue: %v", err)
	}
	if v != "m" {
		t.Fatalf("expected dotenv fallback, got %q", v)
	}
}

func TestEnsureDotEnvTemplate(t *testing.T) {
	dir := withHome(t)
	p := filepath.Join(dir, ".env")

	created, err := EnsureDotEnvTemplate()
	if err != nil {
		t.Fatalf("EnsureDotEnvTemplate: %v", err)
	}
	if !created {
		t.Fatal("expected template to be created")
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), KeyHFToken+"=") {
		t.Fatalf("template missing %s: %q", KeyHFToken, b)
	}

	if err := os.WriteFile(p, []byte("HF_API_TOKEN=keep\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	created, err = EnsureDotEnvTemplate()
	if err != nil {
		t.Fatalf("EnsureDotEnvTemplate: %v", err)
	}
	if created {
		t.Fatal("existing dotenv must not be replaced")
	}
	b, _ = os.ReadFile(p)
	if string(b) != "HF_API_TOKEN=keep\n" {
		t.Fatalf("template overwrote existing file: %q", b)
	}
}
