package search

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentsift/talentsift/ai/mock"
	"github.com/talentsift/talentsift/core"
	"github.com/talentsift/talentsift/storage"
	"github.com/talentsift/talentsift/storage/badger"
)

// queryVector is what the test embedder returns for every query.
var queryVector = []float32{1, 0}

type engineFixture struct {
	engine   *Engine
	profiles storage.ProfileRepository
	vectors  storage.VectorRepository
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	docRepo, profileRepo, vectorRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		vectorRepo.Close()
		profileRepo.Close()
		docRepo.Close()
		backend.Close()
	})

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return queryVector, nil
	}
	provider := mock.NewMockProviderWithServices(embedder, mock.NewMockProfileExtractor())

	engine, err := NewEngine(profileRepo, vectorRepo, provider)
	require.NoError(t, err)

	return &engineFixture{engine: engine, profiles: profileRepo, vectors: vectorRepo}
}

// addDocument stores a profile and its chunks, one chunk per embedding.
func (f *engineFixture) addDocument(t *testing.T, name string, embeddings ...[]float32) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	id := uuid.New()
	require.NoError(t, f.profiles.AddProfile(ctx, id, &core.Profile{Name: name}))

	chunks := make([]*core.VectorChunk, len(embeddings))
	for i, emb := range embeddings {
		chunks[i] = &core.VectorChunk{
			DocumentID: id,
			ChunkIndex: i,
			Text:       name + " chunk",
			Embedding:  emb,
			Source:     core.ChunkSourceSummary,
		}
		chunks[i].Length = len(chunks[i].Text)
	}
	require.NoError(t, f.vectors.InsertChunks(ctx, chunks))
	return id
}

func TestSearchGroupsByDocument(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	// Two strong chunks for alice, one weaker for bob.
	alice := f.addDocument(t, "alice", []float32{1, 0}, []float32{0.9, 0.436})
	bob := f.addDocument(t, "bob", []float32{0.8, 0.6})

	results, err := f.engine.Search(ctx, "golang", nil, 5)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, alice, results[0].DocumentID)
	assert.Equal(t, "alice", results[0].Profile.Name)
	assert.Len(t, results[0].Snippets, 2, "both alice chunks collected as snippets")
	assert.InDelta(t, 1.0, results[0].Score, 0.001, "best chunk score wins")

	assert.Equal(t, bob, results[1].DocumentID)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestSearchScope(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	f.addDocument(t, "alice", []float32{1, 0})
	bob := f.addDocument(t, "bob", []float32{0.8, 0.6})

	// Scoped to bob: alice's better match must not appear.
	results, err := f.engine.Search(ctx, "golang", map[uuid.UUID]struct{}{bob: {}}, 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, bob, results[0].DocumentID)

	// Empty non-nil scope matches nothing.
	results, err = f.engine.Search(ctx, "golang", map[uuid.UUID]struct{}{}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchSkipsDanglingChunks(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	alive := f.addDocument(t, "alice", []float32{0.8, 0.6})

	// A chunk with no stored profile must be skipped, not fail the search.
	orphan := uuid.New()
	require.NoError(t, f.vectors.InsertChunks(ctx, []*core.VectorChunk{{
		DocumentID: orphan,
		ChunkIndex: 0,
		Text:       "orphan chunk",
		Embedding:  []float32{1, 0},
		Length:     12,
		Source:     core.ChunkSourceSummary,
	}}))

	results, err := f.engine.Search(ctx, "golang", nil, 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, alive, results[0].DocumentID)
}

func TestSearchLimitsDistinctDocuments(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	f.addDocument(t, "alice", []float32{1, 0})
	f.addDocument(t, "bob", []float32{0.9, 0.436})
	f.addDocument(t, "carol", []float32{0.8, 0.6})

	results, err := f.engine.Search(ctx, "golang", nil, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "alice", results[0].Profile.Name)
	assert.Equal(t, "bob", results[1].Profile.Name)
}

func TestSearchEmptyQuery(t *testing.T) {
	f := newEngineFixture(t)

	for _, query := range []string{"", "   "} {
		_, err := f.engine.Search(context.Background(), query, nil, 5)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	}
}

// recordingMonitor counts monitor callbacks.
type recordingMonitor struct {
	started   bool
	chunkHits int
	dangling  int
	docHits   int
	finished  bool
}

func (m *recordingMonitor) Start(_ string)                         { m.started = true }
func (m *recordingMonitor) AfterChunkSearch(ms []*core.ChunkMatch) { m.chunkHits = len(ms) }
func (m *recordingMonitor) DanglingChunk(_ uuid.UUID)              { m.dangling++ }
func (m *recordingMonitor) DocumentHit(_ *core.ProfileMatch)       { m.docHits++ }
func (m *recordingMonitor) Finish(_ []*core.ProfileMatch)          { m.finished = true }

func TestSearchMonitorCallbacks(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	f.addDocument(t, "alice", []float32{1, 0})

	orphan := uuid.New()
	require.NoError(t, f.vectors.InsertChunks(ctx, []*core.VectorChunk{{
		DocumentID: orphan,
		ChunkIndex: 0,
		Text:       "orphan chunk",
		Embedding:  []float32{0.9, 0.436},
		Length:     12,
		Source:     core.ChunkSourceSummary,
	}}))

	monitor := &recordingMonitor{}
	results, err := f.engine.SearchWithMonitor(ctx, "golang", nil, 5, monitor)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.True(t, monitor.started)
	assert.True(t, monitor.finished)
	assert.Equal(t, 2, monitor.chunkHits)
	assert.Equal(t, 1, monitor.dangling)
	assert.Equal(t, 1, monitor.docHits)
}
