package content

import (
	"context"
	"fmt"
	"time"

	"github.com/kamusis/embedprep/internal/embeddings"
)

// BuildOptions controls one precompute run.
type BuildOptions struct {
	InputPath  string
	OutputPath string
	// Now stamps the version manifest; defaults to time.Now.
	Now func() time.Time
	// Logf receives progress lines; nil discards them.
	Logf func(format string, args ...any)
}

// Result summarizes a completed run.
type Result struct {
	Items        []EnrichedItem
	Manifest     VersionManifest
	OutputPath   string
	VersionPath  string
	ModelID      string
	DuplicateIDs []string
}

// Build loads opts.InputPath, embeds every item with prov and writes the
// embeddings file plus its version manifest.
//
// Nothing is written unless loading and embedding both succeed. If the
// embeddings file is written but the manifest write fails, the error is
// returned and the manifest is left stale.
func Build(ctx context.Context, prov embeddings.Provider, opts BuildOptions) (*Result, error) {
	if opts.InputPath == "" {
		return nil, fmt.Errorf("input path is required")
	}
	if opts.OutputPath == "" {
		return nil, fmt.Errorf("output path is required")
	}
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	items, err := Load(opts.InputPath)
	if err != nil {
		return nil, err
	}
	logf("loaded %d items from %s", len(items), opts.InputPath)

	res := &Result{
		OutputPath:   opts.OutputPath,
		VersionPath:  VersionPath(opts.OutputPath),
		DuplicateIDs: DuplicateIDs(items),
	}
	if prov != nil {
		res.ModelID = prov.ModelID()
	}

	if len(items) > 0 {
		logf("embedding %d texts using %s", len(items), res.ModelID)
	}
	enriched, err := Embed(ctx, prov, items)
	if err != nil {
		return nil, err
	}
	res.Items = enriched

	payload, err := WriteEmbeddings(res.OutputPath, enriched)
	if err != nil {
		return nil, err
	}
	logf("wrote %d embeddings → %s", len(enriched), res.OutputPath)

	res.Manifest = NewVersionManifest(payload, len(enriched), now())
	if err := WriteVersionManifest(res.VersionPath, res.Manifest); err != nil {
		return nil, err
	}
	logf("wrote version metadata → %s (%s…)", res.VersionPath, res.Manifest.Version[:12])
	return res, nil
}

// Embed computes one embedding per item with a single batched provider call.
// An empty batch never reaches the provider.
func Embed(ctx context.Context, prov embeddings.Provider, items []ContentItem) ([]EnrichedItem, error) {
	out := make([]EnrichedItem, 0, len(items))
	if len(items) == 0 {
		return out, nil
	}
	if prov == nil {
		return nil, fmt.Errorf("%w: no embeddings provider", embeddings.ErrDependencyMissing)
	}

	texts := make([]string, len(items))
	for i, it := range items {
		texts[i] = EmbedText(it)
	}
	vectors, err := prov.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(items) {
		return nil, fmt.Errorf("%w: got %d vectors for %d items", embeddings.ErrModel, len(vectors), len(items))
	}

	dim := 0
	for i, it := range items {
		v := vectors[i]
		if dim == 0 {
			dim = len(v)
		}
		if len(v) == 0 || len(v) != dim {
			return nil, fmt.Errorf("%w: %w: item %q has dim %d, want %d", embeddings.ErrModel, embeddings.ErrVectorLengthMismatch, it.ID, len(v), dim)
		}
		meta := it.Meta
		if len(meta) == 0 {
			meta = emptyMeta
		}
		out = append(out, EnrichedItem{
			ID:        it.ID,
			Text:      it.Text,
			Meta:      meta,
			Embedding: v,
		})
	}
	return out, nil
}
