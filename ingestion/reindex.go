package ingestion

import (
	"context"

	"github.com/google/uuid"
)

// Reindex rebuilds the search index of a stored document from its persisted
// profile: existing chunks are dropped, the profile is re-chunked and
// re-embedded, and the fresh chunks inserted. Chunking is deterministic, so
// reindexing with the same embedding model is a pure refresh.
//
// Returns the number of chunks written. A document whose profile has nothing
// to chunk ends up with zero chunks and no search presence.
func (p *Pipeline) Reindex(ctx context.Context, id uuid.UUID) (int, error) {
	// Fails with storage.ErrNotFound for unknown documents.
	if _, err := p.documents.GetDocument(ctx, id); err != nil {
		return 0, err
	}
	profile, err := p.profiles.GetProfile(ctx, id)
	if err != nil {
		return 0, err
	}

	chunks, err := p.embedProfile(ctx, id, profile)
	if err != nil {
		return 0, err
	}

	if err := p.vectors.DeleteByDocument(ctx, id); err != nil {
		return 0, err
	}
	if len(chunks) == 0 {
		return 0, nil
	}
	if err := p.vectors.InsertChunks(ctx, chunks); err != nil {
		return 0, err
	}

	p.logger.Info("document reindexed", "document_id", id, "chunks", len(chunks))
	return len(chunks), nil
}
