package content

import "errors"

var (
	// ErrFormat indicates the input is not a JSON array.
	ErrFormat = errors.New("format error")
	// ErrValidation indicates an input element is missing or has malformed required fields.
	ErrValidation = errors.New("validation error")
	// ErrIO indicates a file could not be read or written.
	ErrIO = errors.New("io error")
	// ErrChecksumMismatch indicates an embeddings file no longer matches its version manifest.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)
