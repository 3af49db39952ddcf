package embeddings

import "errors"

var (
	// ErrDependencyMissing indicates the embedding backend cannot be used at all:
	// unknown provider, missing credentials, or an unusable endpoint setting.
	ErrDependencyMissing = errors.New("embedding dependency missing")
	// ErrModel indicates the model could not be loaded or failed to encode inputs.
	ErrModel = errors.New("embedding model error")
	// ErrVectorLengthMismatch indicates two vectors have different dimensions.
	ErrVectorLengthMismatch = errors.New("vector length mismatch")
)
