package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const versionSuffix = ".version.json"

// EncodeEmbeddings serializes items as a single compact JSON array.
// HTML characters are not escaped and there is no trailing newline.
func EncodeEmbeddings(items []EnrichedItem) ([]byte, error) {
	if items == nil {
		items = []EnrichedItem{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(items); err != nil {
		return nil, fmt.Errorf("cannot encode embeddings: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// WriteEmbeddings writes items to path, creating parent directories and
// replacing any existing file. It returns the exact bytes written.
func WriteEmbeddings(path string, items []EnrichedItem) ([]byte, error) {
	payload, err := EncodeEmbeddings(items)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: cannot create output dir for %s: %v", ErrIO, path, err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return nil, fmt.Errorf("%w: cannot write embeddings %s: %v", ErrIO, path, err)
	}
	return payload, nil
}

// NewVersionManifest describes payload, the bytes of an embeddings file holding count items.
func NewVersionManifest(payload []byte, count int, now time.Time) VersionManifest {
	return VersionManifest{
		Version:   Checksum(payload),
		UpdatedAt: now.UTC().Format(time.RFC3339),
		Count:     count,
	}
}

// VersionPath returns the manifest path for an embeddings output path:
// the extension is replaced by ".version.json".
func VersionPath(output string) string {
	dir, base := filepath.Split(output)
	ext := filepath.Ext(base)
	if ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return dir + base + versionSuffix
}

// WriteVersionManifest writes m to path as indented JSON.
func WriteVersionManifest(path string, m VersionManifest) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: cannot create dir for %s: %v", ErrIO, path, err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("%w: cannot write version manifest %s: %v", ErrIO, path, err)
	}
	return nil
}
