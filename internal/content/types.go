package content

import "encoding/json"

// ContentItem is one input block. Meta holds the raw JSON object so key order
// survives into the output unchanged.
type ContentItem struct {
	ID   string          `json:"id"`
	Text string          `json:"text"`
	Meta json.RawMessage `json:"meta"`
}

// EnrichedItem is a ContentItem plus its embedding vector.
type EnrichedItem struct {
	ID        string          `json:"id"`
	Text      string          `json:"text"`
	Meta      json.RawMessage `json:"meta"`
	Embedding []float32       `json:"embedding"`
}

// VersionManifest describes one generated embeddings file.
type VersionManifest struct {
	// Version is the hex SHA-256 of the embeddings file bytes.
	Version   string `json:"version"`
	UpdatedAt string `json:"updated_at"`
	Count     int    `json:"count"`
}
