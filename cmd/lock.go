package cmd

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// acquireRunLock takes a non-blocking lock keyed on the output path so two runs
// never write the same embeddings file at once. The returned func releases it.
func acquireRunLock(output string) (func(), error) {
	lockPath, err := runLockPath(output)
	if err != nil {
		return func() {}, err
	}
	l := flock.New(lockPath)
	locked, err := l.TryLock()
	if err != nil {
		return func() {}, fmt.Errorf("cannot acquire run lock: %w", err)
	}
	if !locked {
		return func() {}, fmt.Errorf("another embedprep run is writing %s (lock: %s)", output, lockPath)
	}
	return func() { _ = l.Unlock() }, nil
}

// runLockPath determines the per-user lock file for output.
func runLockPath(output string) (string, error) {
	abs, err := filepath.Abs(output)
	if err != nil {
		return "", fmt.Errorf("cannot resolve output path %s: %w", output, err)
	}
	sum := sha256.Sum256([]byte(abs))
	name := hex.EncodeToString(sum[:8]) + ".lock"

	if cacheDir, err := os.UserCacheDir(); err == nil && cacheDir != "" {
		dir := filepath.Join(cacheDir, "embedprep", "locks")
		if err := os.MkdirAll(dir, 0o755); err == nil {
			return filepath.Join(dir, name), nil
		}
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dir := filepath.Join(home, ".embedprep", "locks")
		if err := os.MkdirAll(dir, 0o755); err == nil {
			return filepath.Join(dir, name), nil
		}
	}
	return "", fmt.Errorf("cannot determine writable lock directory")
}
