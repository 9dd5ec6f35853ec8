package embedding

import "context"

// Provider generates fixed-dimension embedding vectors for text. Providers
// must be deterministic for identical input so re-indexing stays idempotent,
// and must map empty/whitespace-only text to the zero vector rather than
// failing, preserving chunk-index continuity.
type Provider interface {
	Generate(ctx context.Context, text string) ([]float32, error)
	GenerateBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}

// ZeroVector is the embedding used for empty text.
func ZeroVector(dim int) []float32 {
	return make([]float32, dim)
}
