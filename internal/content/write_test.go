package content

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestVersionPath(t *testing.T) {
	cases := map[string]string{
		"public/data/embeddings.json": "public/data/embeddings.version.json",
		"out/vectors.v2.json":         "out/vectors.v2.version.json",
		"embeddings":                  "embeddings.version.json",
		"dir.d/embeddings":            "dir.d/embeddings.version.json",
		"data/.embeddings":            "data/.embeddings.version.json",
	}
	for in, want := range cases {
		in, want = filepath.FromSlash(in), filepath.FromSlash(want)
		if got := VersionPath(in); got != want {
			t.Errorf("VersionPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEncodeEmbeddings_NoHTMLEscaping(t *testing.T) {
	items := []EnrichedItem{{ID: "a&b", Text: "<p>X</p>", Meta: json.RawMessage(`{"k":"<v>"}`), Embedding: []float32{0.5}}}
	b, err := EncodeEmbeddings(items)
	if err != nil {
		t.Fatalf("EncodeEmbeddings: %v", err)
	}
	want := `[{"id":"a&b","text":"<p>X</p>","meta":{"k":"<v>"},"embedding":[0.5]}]`
	if string(b) != want {
		t.Fatalf("got %s\nwant %s", b, want)
	}
}

func TestEncodeEmbeddings_NilIsEmptyArray(t *testing.T) {
	b, err := EncodeEmbeddings(nil)
	if err != nil {
		t.Fatalf("EncodeEmbeddings: %v", err)
	}
	if string(b) != "[]" {
		t.Fatalf("expected [], got %s", b)
	}
}

func TestWriteEmbeddings_ReturnsWrittenBytes(t *testing.T) {
	out := filepath.Join(t.TempDir(), "a", "b", "embeddings.json")
	items := []EnrichedItem{{ID: "x", Text: "y", Meta: emptyMeta, Embedding: []float32{1, 0}}}

	payload, err := WriteEmbeddings(out, items)
	if err != nil {
		t.Fatalf("WriteEmbeddings: %v", err)
	}
	onDisk, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(onDisk) != string(payload) {
		t.Fatalf("returned payload differs from file:\n%s\n%s", payload, onDisk)
	}
}

func TestWriteEmbeddings_UnwritableParent(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := WriteEmbeddings(filepath.Join(blocker, "embeddings.json"), nil)
	if !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
}

func TestNewVersionManifest(t *testing.T) {
	payload := []byte("[]")
	loc := time.FixedZone("UTC+2", 2*60*60)
	m := NewVersionManifest(payload, 0, time.Date(2026, 1, 2, 5, 4, 5, 0, loc))
	// sha256("[]")
	if m.Version != "4f53cda18c2baa0c0354bb5f9a3ecbe5ed12ab4d8e11ba873c2f11161202b945" {
		t.Fatalf("unexpected version: %s", m.Version)
	}
	if m.UpdatedAt != "2026-01-02T03:04:05Z" {
		t.Fatalf("expected UTC timestamp, got %s", m.UpdatedAt)
	}
}

func TestWriteVersionManifest_FieldNames(t *testing.T) {
	p := filepath.Join(t.TempDir(), "embeddings.version.json")
	if err := WriteVersionManifest(p, VersionManifest{Version: "abc", UpdatedAt: "2026-01-01T00:00:00Z", Count: 3}); err != nil {
		t.Fatalf("WriteVersionManifest: %v", err)
	}
	b, _ := os.ReadFile(p)
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("manifest is not JSON: %v", err)
	}
	if raw["version"] != "abc" || raw["updated_at"] != "2026-01-01T00:00:00Z" || raw["count"] != float64(3) {
		t.Fatalf("unexpected manifest: %v", raw)
	}
}
