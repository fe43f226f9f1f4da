package embedding

import (
	"context"
	"fmt"
	"math"
)

// Resized wraps a Model and projects its vectors down to a fixed dimension:
// the vector is truncated to its first Dimension components and then
// L2-normalized, so two vectors' inner product equals their cosine
// similarity. Index-time and query-time embeddings must go through the same
// Resized instance to stay comparable.
type Resized struct {
	model Model
	dim   int
}

// NewResized creates the decorator. dim must be positive and no larger than
// the wrapped model's native output dimension.
func NewResized(model Model, dim int) *Resized {
	return &Resized{model: model, dim: dim}
}

// Dimension 返回缩放后的向量维度。
func (r *Resized) Dimension() int {
	return r.dim
}

// Embed returns the resized embedding for one text.
func (r *Resized) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := r.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch embeds texts through the wrapped model and resizes every vector.
// A vector shorter than the target dimension, or one whose truncation has
// zero norm, is an error for the whole batch.
func (r *Resized) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs, err := r.model.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, err
	}

	out := make([][]float32, len(vecs))
	for i, v := range vecs {
		resized, err := r.resize(v)
		if err != nil {
			return nil, fmt.Errorf("vector %d: %w", i, err)
		}
		out[i] = resized
	}
	return out, nil
}

func (r *Resized) resize(v []float32) ([]float32, error) {
	if len(v) < r.dim {
		return nil, fmt.Errorf("%w: embedding has %d components, need %d", ErrEmbeddingService, len(v), r.dim)
	}

	truncated := make([]float32, r.dim)
	copy(truncated, v[:r.dim])

	var sum float64
	for _, x := range truncated {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return nil, fmt.Errorf("%w: truncated embedding has zero norm", ErrEmbeddingService)
	}

	for i := range truncated {
		truncated[i] = float32(float64(truncated[i]) / norm)
	}
	return truncated, nil
}
