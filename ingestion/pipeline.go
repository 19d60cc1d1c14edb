package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/talentsift/talentsift/ai"
	"github.com/talentsift/talentsift/core"
	"github.com/talentsift/talentsift/readers"
	"github.com/talentsift/talentsift/storage"
)

// defaultCallTimeout bounds each external model call. Structured extraction
// of a long résumé on a local model can take a while.
const defaultCallTimeout = 2 * time.Minute

// TextReader extracts plain text from raw document bytes.
// readers.PDFExtractor is the production implementation.
type TextReader interface {
	CanRead(name string) bool
	ExtractText(data []byte) (string, error)
}

// Pipeline orchestrates document ingestion: blob persistence, text
// extraction, structured profile extraction, chunking, embedding, and the
// final persist. Each document either commits fully (possibly degraded,
// without a search index) or is rolled back completely.
type Pipeline struct {
	documents storage.DocumentRepository
	profiles  storage.ProfileRepository
	vectors   storage.VectorRepository
	blobs     storage.BlobStore
	reader    TextReader
	provider  ai.AIProvider
	chunker   *Chunker

	pool        *ants.Pool
	callTimeout time.Duration
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent batch processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithCallTimeout bounds each external model call (extraction, embedding).
// Non-positive values disable the per-call timeout.
func WithCallTimeout(d time.Duration) Option {
	return func(p *Pipeline) error {
		p.callTimeout = d
		return nil
	}
}

// WithReader replaces the default PDF text reader.
func WithReader(r TextReader) Option {
	return func(p *Pipeline) error {
		if r != nil {
			p.reader = r
		}
		return nil
	}
}

// WithChunker replaces the default chunker.
func WithChunker(c *Chunker) Option {
	return func(p *Pipeline) error {
		if c != nil {
			p.chunker = c
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	documents storage.DocumentRepository,
	profiles storage.ProfileRepository,
	vectors storage.VectorRepository,
	blobs storage.BlobStore,
	provider ai.AIProvider,
	opts ...Option,
) (*Pipeline, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if profiles == nil {
		return nil, ErrProfileRepositoryRequired
	}
	if vectors == nil {
		return nil, ErrVectorRepositoryRequired
	}
	if blobs == nil {
		return nil, ErrBlobStoreRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		documents:   documents,
		profiles:    profiles,
		vectors:     vectors,
		blobs:       blobs,
		reader:      readers.NewPDFExtractor(),
		provider:    provider,
		chunker:     NewChunker(DefaultChunkSize, DefaultChunkOverlap),
		pool:        pool,
		callTimeout: defaultCallTimeout,
		logger:      slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Release releases the worker pool. The pipeline should not be used after
// calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// IngestBatch processes a batch of uploaded files. Documents are independent:
// one failure never aborts its siblings. Returns ErrNoDocumentsProcessed when
// a non-empty batch produced zero committed documents.
func (p *Pipeline) IngestBatch(ctx context.Context, groupID string, files []Document) (*BatchResult, error) {
	batch := &BatchResult{}
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, file := range files {
		file := file
		wg.Add(1)
		submit := func() {
			defer wg.Done()
			result, fileErr := p.processDocument(ctx, groupID, file)
			mu.Lock()
			defer mu.Unlock()
			if fileErr != nil {
				batch.Errors = append(batch.Errors, fileErr)
				return
			}
			batch.Results = append(batch.Results, result)
		}
		if err := p.pool.Submit(submit); err != nil {
			// Pool rejected the task (released or overloaded); run inline
			// so the file still gets an outcome.
			submit()
		}
	}
	wg.Wait()

	if len(files) > 0 && len(batch.Results) == 0 {
		names := make([]string, len(batch.Errors))
		for i, fe := range batch.Errors {
			names[i] = fe.Filename
		}
		return batch, fmt.Errorf("%w: %s", ErrNoDocumentsProcessed, strings.Join(names, ", "))
	}
	return batch, nil
}

// processDocument runs one document through the full state machine.
// On failure every write that already happened is compensated in reverse
// order, so a failed file leaves no trace.
func (p *Pipeline) processDocument(ctx context.Context, groupID string, file Document) (*DocumentResult, *FileError) {
	fail := func(stage string, err error) *FileError {
		return &FileError{Filename: file.Filename, Stage: stage, Err: err}
	}

	if !p.reader.CanRead(file.Filename) {
		return nil, fail(StageExtract, fmt.Errorf("%w: %s", ErrUnsupportedFile, file.Filename))
	}

	id := uuid.New()
	var progress rollbackState

	// Received: the blob and its metadata record are written before any
	// model call, matching the serving layout.
	location, err := p.blobs.Save(id, file.Data)
	if err != nil {
		return nil, fail(StagePersist, err)
	}
	progress.blobSaved = true

	record := &core.DocumentRecord{
		ID:              id,
		Name:            file.Filename,
		StorageLocation: location,
		GroupID:         groupID,
	}
	if err := p.documents.AddDocument(ctx, record); err != nil {
		p.rollback(ctx, id, progress)
		return nil, fail(StagePersist, err)
	}
	progress.recordAdded = true

	text, err := p.reader.ExtractText(file.Data)
	if err != nil {
		p.rollback(ctx, id, progress)
		return nil, fail(StageExtract, err)
	}

	profile, err := p.extractProfile(ctx, text)
	if err != nil {
		p.rollback(ctx, id, progress)
		return nil, fail(StageParse, err)
	}

	// Embedding failure degrades the document instead of failing it: the
	// profile is still worth keeping, it just won't surface in search.
	var warning string
	chunks, err := p.embedProfile(ctx, id, profile)
	if err != nil {
		p.logger.Warn("embedding failed, storing without search index",
			"document_id", id, "file", file.Filename, "err", err)
		warning = "stored without search index"
		chunks = nil
	}

	if err := p.profiles.AddProfile(ctx, id, profile); err != nil {
		p.rollback(ctx, id, progress)
		return nil, fail(StagePersist, err)
	}
	progress.profileAdded = true

	if len(chunks) > 0 {
		if err := p.vectors.InsertChunks(ctx, chunks); err != nil {
			progress.chunksInserted = true
			p.rollback(ctx, id, progress)
			return nil, fail(StagePersist, err)
		}
	}

	p.logger.Info("document committed",
		"document_id", id, "file", file.Filename, "chunks", len(chunks))

	return &DocumentResult{
		Filename:   file.Filename,
		DocumentID: id,
		Profile:    profile,
		Warning:    warning,
	}, nil
}

// extractProfile runs the structured extraction call under the per-call
// timeout.
func (p *Pipeline) extractProfile(ctx context.Context, text string) (*core.Profile, error) {
	callCtx, cancel := p.callContext(ctx)
	defer cancel()
	return p.provider.ProfileExtractor().ExtractProfile(callCtx, text)
}

// embedProfile chunks the profile and embeds all chunk texts in one batch.
// A profile with nothing to chunk yields zero chunks without error.
func (p *Pipeline) embedProfile(ctx context.Context, id uuid.UUID, profile *core.Profile) ([]*core.VectorChunk, error) {
	chunks, err := p.chunker.ProfileChunks(id, profile)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	callCtx, cancel := p.callContext(ctx)
	defer cancel()
	vectors, err := p.provider.Embedder().EmbedTexts(callCtx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d chunks",
			ai.ErrEmbedding, len(vectors), len(chunks))
	}
	for i, vec := range vectors {
		chunks[i].Embedding = vec
	}
	return chunks, nil
}

func (p *Pipeline) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.callTimeout > 0 {
		return context.WithTimeout(ctx, p.callTimeout)
	}
	return context.WithCancel(ctx)
}

// rollbackState tracks which writes succeeded, so rollback only compensates
// what actually happened.
type rollbackState struct {
	blobSaved      bool
	recordAdded    bool
	profileAdded   bool
	chunksInserted bool
}

// rollback compensates in reverse write order. Rollback errors are logged,
// never raised: they must not mask the failure that triggered them.
func (p *Pipeline) rollback(ctx context.Context, id uuid.UUID, progress rollbackState) {
	if progress.chunksInserted {
		if err := p.vectors.DeleteByDocument(ctx, id); err != nil {
			p.logger.Error("rollback: deleting chunks failed", "document_id", id, "err", err)
		}
	}
	if progress.profileAdded {
		if err := p.profiles.DeleteProfile(ctx, id); err != nil {
			p.logger.Error("rollback: deleting profile failed", "document_id", id, "err", err)
		}
	}
	if progress.recordAdded {
		if err := p.documents.DeleteDocument(ctx, id); err != nil {
			p.logger.Error("rollback: deleting document record failed", "document_id", id, "err", err)
		}
	}
	if progress.blobSaved {
		if err := p.blobs.Delete(id); err != nil {
			p.logger.Error("rollback: deleting blob failed", "document_id", id, "err", err)
		}
	}
}

// Delete removes every artifact of a document: chunks, profile, metadata
// record, and blob. Each step is idempotent, so deleting an unknown or
// partially present document succeeds.
func (p *Pipeline) Delete(ctx context.Context, id uuid.UUID) error {
	if err := p.vectors.DeleteByDocument(ctx, id); err != nil {
		return err
	}
	if err := p.profiles.DeleteProfile(ctx, id); err != nil {
		return err
	}
	if err := p.documents.DeleteDocument(ctx, id); err != nil {
		return err
	}
	return p.blobs.Delete(id)
}
