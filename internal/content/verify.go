package content

import (
	"encoding/json"
	"fmt"
	"os"
)

// VerifyResult reports the state of an embeddings file and its manifest.
type VerifyResult struct {
	Manifest    VersionManifest
	Checksum    string
	Count       int
	OutputPath  string
	VersionPath string
}

// LoadVersionManifest reads a version manifest written by WriteVersionManifest.
func LoadVersionManifest(path string) (VersionManifest, error) {
	var m VersionManifest
	b, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("%w: cannot read version manifest %s: %v", ErrIO, path, err)
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return m, fmt.Errorf("%w: invalid version manifest %s: %v", ErrFormat, path, err)
	}
	return m, nil
}

// Verify checks that the embeddings file at outputPath still matches the
// checksum and count recorded in its version manifest.
func Verify(outputPath string) (*VerifyResult, error) {
	res := &VerifyResult{OutputPath: outputPath, VersionPath: VersionPath(outputPath)}

	m, err := LoadVersionManifest(res.VersionPath)
	if err != nil {
		return nil, err
	}
	res.Manifest = m

	payload, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read embeddings %s: %v", ErrIO, outputPath, err)
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s must contain a JSON array: %v", ErrFormat, outputPath, err)
	}
	res.Checksum = Checksum(payload)
	res.Count = len(entries)

	if res.Checksum != m.Version {
		return res, fmt.Errorf("%w: %s has sha256 %s, manifest records %s", ErrChecksumMismatch, outputPath, res.Checksum, m.Version)
	}
	if res.Count != m.Count {
		return res, fmt.Errorf("%w: %s has %d items, manifest records %d", ErrChecksumMismatch, outputPath, res.Count, m.Count)
	}
	return res, nil
}
