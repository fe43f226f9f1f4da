package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"askmira/internal/rag/schema"
	"askmira/internal/rag/splitters"
	"askmira/pkg/logger"
)

// fakeEmbedder returns a one-hot vector keyed by how often it has been
// called, and can be told to fail on specific texts.
type fakeEmbedder struct {
	dim     int
	failOn  map[string]bool
	queries []string
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.failOn[text] {
		return nil, errors.New("embedding service unavailable")
	}
	f.queries = append(f.queries, text)
	v := make([]float32, f.dim)
	v[len(f.queries)%f.dim] = 1
	return v, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := f.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (f *fakeEmbedder) Dimension() int { return f.dim }

// fakeStore records upserts and serves canned search results. failBatches
// marks which Upsert calls (0-based) should fail.
type fakeStore struct {
	entries     map[string]schema.IndexEntry
	upsertCalls int
	failBatches map[int]bool
	searchFn    func(vector []float32, topK int) ([]schema.QueryMatch, error)
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		entries:     make(map[string]schema.IndexEntry),
		failBatches: make(map[int]bool),
	}
}

func (s *fakeStore) Upsert(ctx context.Context, entries []schema.IndexEntry) error {
	call := s.upsertCalls
	s.upsertCalls++
	if s.failBatches[call] {
		return errors.New("vector store unavailable")
	}
	for _, e := range entries {
		s.entries[e.ID] = e
	}
	return nil
}

func (s *fakeStore) Search(ctx context.Context, vector []float32, topK int) ([]schema.QueryMatch, error) {
	if s.searchFn != nil {
		return s.searchFn(vector, topK)
	}
	return nil, nil
}

func testLogger() *logger.Logger {
	return logger.New("pipeline_test", "")
}

func TestIndexDocumentStableIDs(t *testing.T) {
	store := newFakeStore()
	p := NewIndexingPipeline(
		splitters.NewCharacterSplitter(10, 2),
		&fakeEmbedder{dim: 8},
		store, 100, testLogger(),
	)

	text := strings.Repeat("regulation text ", 4)
	n, err := p.IndexDocument(context.Background(), "FCE Regulations TXT/grading/usa.txt", text)
	if err != nil {
		t.Fatalf("IndexDocument: %v", err)
	}
	if n == 0 {
		t.Fatal("nothing indexed")
	}

	for i := 0; i < n; i++ {
		id := fmt.Sprintf("FCE Regulations TXT_grading_usa.txt_%d", i)
		e, ok := store.entries[id]
		if !ok {
			t.Fatalf("missing entry %s", id)
		}
		if e.Metadata[schema.MetadataKeyChunkIndex] != i {
			t.Errorf("entry %s chunk_index = %v", id, e.Metadata[schema.MetadataKeyChunkIndex])
		}
		if e.Metadata[schema.MetadataKeyTotalChunks] != n {
			t.Errorf("entry %s total_chunks = %v", id, e.Metadata[schema.MetadataKeyTotalChunks])
		}
		if e.Metadata[schema.MetadataKeyDocumentType] != "regulation" {
			t.Errorf("entry %s document_type = %v", id, e.Metadata[schema.MetadataKeyDocumentType])
		}
		if e.Metadata[schema.MetadataKeyCategory] != "grading" {
			t.Errorf("entry %s category = %v", id, e.Metadata[schema.MetadataKeyCategory])
		}
	}

	// Re-indexing the same document writes the same ids again.
	before := len(store.entries)
	if _, err := p.IndexDocument(context.Background(), "FCE Regulations TXT/grading/usa.txt", text); err != nil {
		t.Fatalf("second IndexDocument: %v", err)
	}
	if len(store.entries) != before {
		t.Errorf("re-indexing grew the store from %d to %d entries", before, len(store.entries))
	}
}

func TestIndexDocumentRegionMetadata(t *testing.T) {
	store := newFakeStore()
	p := NewIndexingPipeline(
		splitters.NewCharacterSplitter(1000, 200),
		&fakeEmbedder{dim: 8},
		store, 100, testLogger(),
	)

	if _, err := p.IndexDocument(context.Background(), "aacrao/ASIA/Japan.txt", "education in japan"); err != nil {
		t.Fatalf("IndexDocument: %v", err)
	}

	e, ok := store.entries["aacrao_ASIA_Japan.txt_0"]
	if !ok {
		t.Fatalf("missing entry, have %v", store.entries)
	}
	if e.Metadata[schema.MetadataKeyRegion] != "ASIA" {
		t.Errorf("region = %v", e.Metadata[schema.MetadataKeyRegion])
	}
	if e.Metadata[schema.MetadataKeyCountry] != "Japan" {
		t.Errorf("country = %v", e.Metadata[schema.MetadataKeyCountry])
	}
	if e.Metadata[schema.MetadataKeySource] != "aacrao/ASIA/Japan.txt" {
		t.Errorf("source = %v", e.Metadata[schema.MetadataKeySource])
	}
}

func TestIndexDocumentSkipsFailedChunk(t *testing.T) {
	store := newFakeStore()
	emb := &fakeEmbedder{dim: 8, failOn: map[string]bool{"badchunk---": true}}
	p := NewIndexingPipeline(
		splitters.NewCharacterSplitter(11, 0),
		emb, store, 100, testLogger(),
	)

	// Three 11-rune chunks; the middle one fails to embed.
	n, err := p.IndexDocument(context.Background(), "doc.txt", "aaaaaaaaaaa"+"badchunk---"+"ccccccccccc")
	if err != nil {
		t.Fatalf("IndexDocument: %v", err)
	}
	if n != 2 {
		t.Fatalf("indexed %d chunks, want 2", n)
	}
	if _, ok := store.entries["doc.txt_1"]; ok {
		t.Error("failed chunk was indexed")
	}
	if _, ok := store.entries["doc.txt_2"]; !ok {
		t.Error("chunk after the failed one was not indexed")
	}
}

func TestIndexDocumentDropsFailedBatch(t *testing.T) {
	store := newFakeStore()
	store.failBatches[0] = true
	p := NewIndexingPipeline(
		splitters.NewCharacterSplitter(5, 0),
		&fakeEmbedder{dim: 8},
		store, 2, testLogger(),
	)

	// Five chunks with batch size 2: batches of 2, 2, 1; the first fails.
	n, err := p.IndexDocument(context.Background(), "doc.txt", strings.Repeat("x", 25))
	if err != nil {
		t.Fatalf("IndexDocument: %v", err)
	}
	if n != 3 {
		t.Fatalf("indexed %d chunks, want 3", n)
	}
	if store.upsertCalls != 3 {
		t.Errorf("upsert called %d times, want 3", store.upsertCalls)
	}
}

func TestIndexDocumentEmpty(t *testing.T) {
	store := newFakeStore()
	p := NewIndexingPipeline(
		splitters.NewCharacterSplitter(1000, 200),
		&fakeEmbedder{dim: 8},
		store, 100, testLogger(),
	)

	n, err := p.IndexDocument(context.Background(), "empty.txt", "")
	if err != nil {
		t.Fatalf("IndexDocument: %v", err)
	}
	if n != 0 || store.upsertCalls != 0 {
		t.Errorf("indexed %d chunks with %d upserts, want none", n, store.upsertCalls)
	}
}

func TestIndexDocumentStoredTextCapped(t *testing.T) {
	store := newFakeStore()
	p := NewIndexingPipeline(
		splitters.NewCharacterSplitter(1500, 0),
		&fakeEmbedder{dim: 8},
		store, 100, testLogger(),
	)

	if _, err := p.IndexDocument(context.Background(), "doc.txt", strings.Repeat("y", 1500)); err != nil {
		t.Fatalf("IndexDocument: %v", err)
	}
	text, _ := store.entries["doc.txt_0"].Metadata[schema.MetadataKeyText].(string)
	if len(text) != schema.MaxStoredTextLen {
		t.Errorf("stored text has %d chars, want %d", len(text), schema.MaxStoredTextLen)
	}
}

func TestRetrieveOrdersAndCaps(t *testing.T) {
	store := newFakeStore()
	store.searchFn = func(vector []float32, topK int) ([]schema.QueryMatch, error) {
		return []schema.QueryMatch{
			{ID: "b", Score: 0.5},
			{ID: "a", Score: 0.9},
			{ID: "d", Score: 0.1},
			{ID: "c", Score: 0.3},
			{ID: "e", Score: 0.2},
			{ID: "f", Score: 0.05},
		}, nil
	}
	p := NewRetrievalPipeline(&fakeEmbedder{dim: 8}, store, testLogger())

	matches, err := p.Retrieve(context.Background(), "grading in france", 5)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(matches) != 5 {
		t.Fatalf("got %d matches, want 5", len(matches))
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Errorf("matches not in descending order at %d: %v > %v", i, matches[i].Score, matches[i-1].Score)
		}
	}
	if matches[0].ID != "a" {
		t.Errorf("best match = %s, want a", matches[0].ID)
	}
}

func TestRetrieveSmallIndex(t *testing.T) {
	store := newFakeStore()
	store.searchFn = func(vector []float32, topK int) ([]schema.QueryMatch, error) {
		return []schema.QueryMatch{{ID: "only", Score: 0.4}}, nil
	}
	p := NewRetrievalPipeline(&fakeEmbedder{dim: 8}, store, testLogger())

	matches, err := p.Retrieve(context.Background(), "anything", 5)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
}

func TestRetrieveEmbedError(t *testing.T) {
	emb := &fakeEmbedder{dim: 8, failOn: map[string]bool{"down": true}}
	p := NewRetrievalPipeline(emb, newFakeStore(), testLogger())

	if _, err := p.Retrieve(context.Background(), "down", 5); err == nil {
		t.Fatal("expected error when query embedding fails")
	}
}

func TestFormatContext(t *testing.T) {
	matches := []schema.QueryMatch{
		{ID: "a", Metadata: map[string]interface{}{
			schema.MetadataKeySource: "aacrao/ASIA/Japan.txt",
			schema.MetadataKeyText:   "six-three-three structure",
		}},
		{ID: "b", Metadata: map[string]interface{}{
			schema.MetadataKeySource: "FCE Regulations TXT/grading/japan.txt",
			schema.MetadataKeyText:   "grading is on a 5-point scale",
		}},
	}

	got := FormatContext(matches)
	if !strings.Contains(got, "[Source: aacrao/ASIA/Japan.txt]\nsix-three-three structure") {
		t.Errorf("missing first source block:\n%s", got)
	}
	if !strings.Contains(got, "[Source: FCE Regulations TXT/grading/japan.txt]\ngrading is on a 5-point scale") {
		t.Errorf("missing second source block:\n%s", got)
	}
}

// fakeChat echoes the prompt so tests can assert what the model was shown.
type fakeChat struct {
	err        error
	lastSystem string
	lastUser   string
}

func (f *fakeChat) Complete(ctx context.Context, system, user string) (string, error) {
	f.lastSystem = system
	f.lastUser = user
	if f.err != nil {
		return "", f.err
	}
	return "answer", nil
}

func TestAnswerIncludesContextAndQuestion(t *testing.T) {
	chat := &fakeChat{}
	p := NewQAPipeline(chat, testLogger())

	matches := []schema.QueryMatch{
		{ID: "a", Metadata: map[string]interface{}{
			schema.MetadataKeySource: "aacrao/EUROPE/France.txt",
			schema.MetadataKeyText:   "the baccalaureat ends secondary school",
		}},
	}
	answer, err := p.Answer(context.Background(), "What ends secondary school in France?", matches)
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if answer != "answer" {
		t.Errorf("answer = %q", answer)
	}
	if !strings.Contains(chat.lastUser, "baccalaureat") {
		t.Errorf("prompt missing retrieved context:\n%s", chat.lastUser)
	}
	if !strings.Contains(chat.lastUser, "Question: What ends secondary school in France?") {
		t.Errorf("prompt missing question:\n%s", chat.lastUser)
	}
	if !strings.Contains(chat.lastSystem, "ONLY the provided context") {
		t.Errorf("system prompt missing grounding instruction:\n%s", chat.lastSystem)
	}
}

func TestAnswerEmptyContext(t *testing.T) {
	chat := &fakeChat{}
	p := NewQAPipeline(chat, testLogger())

	if _, err := p.Answer(context.Background(), "anything", nil); err != nil {
		t.Fatalf("Answer with no matches: %v", err)
	}
	if !strings.Contains(chat.lastUser, "Question: anything") {
		t.Errorf("prompt missing question:\n%s", chat.lastUser)
	}
}

func TestAnswerLLMError(t *testing.T) {
	chat := &fakeChat{err: errors.New("model overloaded")}
	p := NewQAPipeline(chat, testLogger())

	if _, err := p.Answer(context.Background(), "q", nil); err == nil {
		t.Fatal("expected error from LLM failure")
	}
}

func TestDeriveMetadataPlainKey(t *testing.T) {
	md := deriveMetadata("misc/notes.txt")
	if md[schema.MetadataKeySource] != "misc/notes.txt" {
		t.Errorf("source = %v", md[schema.MetadataKeySource])
	}
	if _, ok := md[schema.MetadataKeyRegion]; ok {
		t.Error("unexpected region for non-aacrao key")
	}
	if _, ok := md[schema.MetadataKeyDocumentType]; ok {
		t.Error("unexpected document_type for non-regulation key")
	}
}
