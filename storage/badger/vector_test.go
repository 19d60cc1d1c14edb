package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/talentsift/talentsift/core"
	"github.com/talentsift/talentsift/storage"
)

func newTestChunk(docID uuid.UUID, index int, text string, embedding []float32) *core.VectorChunk {
	return &core.VectorChunk{
		DocumentID: docID,
		ChunkIndex: index,
		Text:       text,
		Embedding:  embedding,
		Length:     len(text),
		Source:     core.ChunkSourceSummary,
	}
}

func TestSearchSimilarOrdering(t *testing.T) {
	docRepo, profileRepo, vectorRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { vectorRepo.Close(); profileRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()
	docID := uuid.New()

	// Cosine against the query [1,0]: exact match, 0.8, 0.6.
	chunks := []*core.VectorChunk{
		newTestChunk(docID, 0, "weak match", []float32{0.6, 0.8}),
		newTestChunk(docID, 1, "exact match", []float32{1, 0}),
		newTestChunk(docID, 2, "close match", []float32{0.8, 0.6}),
	}
	if err := vectorRepo.InsertChunks(ctx, chunks); err != nil {
		t.Fatalf("Failed to insert chunks: %v", err)
	}

	matches, err := vectorRepo.SearchSimilar(ctx, []float32{1, 0}, 3, nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("Expected 3 matches, got %d", len(matches))
	}

	order := []string{"exact match", "close match", "weak match"}
	for i, want := range order {
		if matches[i].Chunk.Text != want {
			t.Fatalf("Position %d: expected %q, got %q", i, want, matches[i].Chunk.Text)
		}
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Fatalf("Scores not descending: %v then %v", matches[i-1].Score, matches[i].Score)
		}
	}
}

func TestSearchSimilarTieBreakByInsertion(t *testing.T) {
	docRepo, profileRepo, vectorRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { vectorRepo.Close(); profileRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	// Same embedding, so identical scores. Insertion order decides.
	first := newTestChunk(uuid.New(), 0, "inserted first", []float32{1, 0})
	second := newTestChunk(uuid.New(), 0, "inserted second", []float32{1, 0})
	if err := vectorRepo.InsertChunks(ctx, []*core.VectorChunk{first}); err != nil {
		t.Fatalf("Failed to insert chunk: %v", err)
	}
	if err := vectorRepo.InsertChunks(ctx, []*core.VectorChunk{second}); err != nil {
		t.Fatalf("Failed to insert chunk: %v", err)
	}

	matches, err := vectorRepo.SearchSimilar(ctx, []float32{1, 0}, 2, nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	if matches[0].Chunk.Text != "inserted first" || matches[1].Chunk.Text != "inserted second" {
		t.Fatalf("Tie not broken by insertion order: %q, %q", matches[0].Chunk.Text, matches[1].Chunk.Text)
	}
}

func TestSearchSimilarScoping(t *testing.T) {
	docRepo, profileRepo, vectorRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { vectorRepo.Close(); profileRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()
	docA, docB := uuid.New(), uuid.New()

	chunks := []*core.VectorChunk{
		newTestChunk(docA, 0, "from doc A", []float32{0.8, 0.6}),
		newTestChunk(docB, 0, "from doc B", []float32{1, 0}),
	}
	if err := vectorRepo.InsertChunks(ctx, chunks); err != nil {
		t.Fatalf("Failed to insert chunks: %v", err)
	}

	// Scoped to docA: docB's better-scoring chunk must not appear.
	matches, err := vectorRepo.SearchSimilar(ctx, []float32{1, 0}, 5, map[uuid.UUID]struct{}{docA: {}})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}
	if matches[0].Chunk.DocumentID != docA {
		t.Fatalf("Expected match from docA, got %s", matches[0].Chunk.DocumentID)
	}

	// Empty non-nil scope matches nothing.
	matches, err = vectorRepo.SearchSimilar(ctx, []float32{1, 0}, 5, map[uuid.UUID]struct{}{})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("Expected no matches for empty scope, got %d", len(matches))
	}
}

func TestSearchSimilarInvalidQuery(t *testing.T) {
	docRepo, profileRepo, vectorRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { vectorRepo.Close(); profileRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	if _, err := vectorRepo.SearchSimilar(ctx, []float32{1, 0}, 0, nil); !errors.Is(err, storage.ErrInvalidQuery) {
		t.Fatalf("Expected ErrInvalidQuery for k=0, got %v", err)
	}
	if _, err := vectorRepo.SearchSimilar(ctx, nil, 5, nil); !errors.Is(err, storage.ErrInvalidQuery) {
		t.Fatalf("Expected ErrInvalidQuery for empty embedding, got %v", err)
	}
}

func TestInsertChunksOverwrite(t *testing.T) {
	docRepo, profileRepo, vectorRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { vectorRepo.Close(); profileRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()
	docID := uuid.New()

	original := newTestChunk(docID, 0, "original text", []float32{1, 0})
	if err := vectorRepo.InsertChunks(ctx, []*core.VectorChunk{original}); err != nil {
		t.Fatalf("Failed to insert chunk: %v", err)
	}

	replacement := newTestChunk(docID, 0, "replacement text", []float32{1, 0})
	if err := vectorRepo.InsertChunks(ctx, []*core.VectorChunk{replacement}); err != nil {
		t.Fatalf("Failed to re-insert chunk: %v", err)
	}

	matches, err := vectorRepo.SearchSimilar(ctx, []float32{1, 0}, 10, nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected 1 chunk after overwrite, got %d", len(matches))
	}
	if matches[0].Chunk.Text != "replacement text" {
		t.Fatalf("Expected replacement text, got %q", matches[0].Chunk.Text)
	}
}

func TestDeleteByDocument(t *testing.T) {
	docRepo, profileRepo, vectorRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { vectorRepo.Close(); profileRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()
	keep, remove := uuid.New(), uuid.New()

	chunks := []*core.VectorChunk{
		newTestChunk(keep, 0, "survivor", []float32{1, 0}),
		newTestChunk(remove, 0, "first victim", []float32{1, 0}),
		newTestChunk(remove, 1, "second victim", []float32{0.8, 0.6}),
	}
	if err := vectorRepo.InsertChunks(ctx, chunks); err != nil {
		t.Fatalf("Failed to insert chunks: %v", err)
	}

	if err := vectorRepo.DeleteByDocument(ctx, remove); err != nil {
		t.Fatalf("Failed to delete chunks: %v", err)
	}

	matches, err := vectorRepo.SearchSimilar(ctx, []float32{1, 0}, 10, nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected 1 remaining chunk, got %d", len(matches))
	}
	if matches[0].Chunk.DocumentID != keep {
		t.Fatalf("Wrong document survived: %s", matches[0].Chunk.DocumentID)
	}

	// Deleting a document with no chunks is a no-op.
	if err := vectorRepo.DeleteByDocument(ctx, remove); err != nil {
		t.Fatalf("Second delete should be a no-op, got %v", err)
	}
}
