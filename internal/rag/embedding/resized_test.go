package embedding

import (
	"context"
	"errors"
	"math"
	"testing"
)

// fakeModel returns a fixed vector per input text.
type fakeModel struct {
	vectors map[string][]float32
}

func (f *fakeModel) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := f.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (f *fakeModel) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, ok := f.vectors[t]
		if !ok {
			return nil, ErrEmbeddingService
		}
		out[i] = v
	}
	return out, nil
}

func nativeVector(n int) []float32 {
	v := make([]float32, n)
	for i := range v {
		v[i] = float32(i + 1)
	}
	return v
}

func TestResizedTruncatesAndNormalizes(t *testing.T) {
	model := &fakeModel{vectors: map[string][]float32{
		"doc": nativeVector(1536),
	}}
	r := NewResized(model, 1024)

	got, err := r.Embed(context.Background(), "doc")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(got) != 1024 {
		t.Fatalf("got %d components, want 1024", len(got))
	}
	if r.Dimension() != 1024 {
		t.Errorf("Dimension() = %d", r.Dimension())
	}

	var sum float64
	for _, x := range got {
		sum += float64(x) * float64(x)
	}
	if norm := math.Sqrt(sum); math.Abs(norm-1) > 1e-5 {
		t.Errorf("norm = %v, want 1", norm)
	}

	// Components keep the original proportions after truncation.
	if ratio := got[1] / got[0]; math.Abs(float64(ratio)-2) > 1e-5 {
		t.Errorf("got[1]/got[0] = %v, want 2", ratio)
	}
}

func TestResizedTooShort(t *testing.T) {
	model := &fakeModel{vectors: map[string][]float32{
		"doc": nativeVector(512),
	}}
	r := NewResized(model, 1024)

	_, err := r.Embed(context.Background(), "doc")
	if !errors.Is(err, ErrEmbeddingService) {
		t.Fatalf("got %v, want ErrEmbeddingService", err)
	}
}

func TestResizedZeroNorm(t *testing.T) {
	// Non-zero tail, all-zero head: truncation leaves nothing to normalize.
	v := make([]float32, 1536)
	v[1535] = 1
	model := &fakeModel{vectors: map[string][]float32{"doc": v}}
	r := NewResized(model, 1024)

	_, err := r.Embed(context.Background(), "doc")
	if !errors.Is(err, ErrEmbeddingService) {
		t.Fatalf("got %v, want ErrEmbeddingService", err)
	}
}

func TestResizedBatchOrder(t *testing.T) {
	a := nativeVector(1536)
	b := make([]float32, 1536)
	b[0] = 7
	model := &fakeModel{vectors: map[string][]float32{"a": a, "b": b}}
	r := NewResized(model, 1024)

	vecs, err := r.EmbedBatch(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("EmbedBatch: %v", err)
	}
	if len(vecs) != 2 {
		t.Fatalf("got %d vectors", len(vecs))
	}
	if math.Abs(float64(vecs[1][0])-1) > 1e-5 {
		t.Errorf("vector b not normalized to unit length: %v", vecs[1][0])
	}
}

func TestResizedPropagatesModelError(t *testing.T) {
	model := &fakeModel{vectors: map[string][]float32{}}
	r := NewResized(model, 1024)

	_, err := r.EmbedBatch(context.Background(), []string{"missing"})
	if !errors.Is(err, ErrEmbeddingService) {
		t.Fatalf("got %v, want ErrEmbeddingService", err)
	}
}
