package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/talentsift/talentsift/core"
)

// DocumentRepository manages document metadata records.
// Implementations must be thread-safe and support concurrent access.
type DocumentRepository interface {
	// AddDocument stores a document record keyed by its ID.
	AddDocument(ctx context.Context, record *core.DocumentRecord) error

	// GetDocument retrieves a document record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetDocument(ctx context.Context, id uuid.UUID) (*core.DocumentRecord, error)

	// ListDocuments returns all stored document records.
	ListDocuments(ctx context.Context) ([]*core.DocumentRecord, error)

	// DeleteDocument removes a document record by ID.
	// Deleting a nonexistent record is a no-op, not an error.
	DeleteDocument(ctx context.Context, id uuid.UUID) error

	// Close releases resources held by the repository.
	Close() error
}

// ProfileRepository manages the canonical structured profiles, keyed by the
// owning document's ID.
type ProfileRepository interface {
	// AddProfile stores a structured profile for the given document.
	AddProfile(ctx context.Context, documentID uuid.UUID, profile *core.Profile) error

	// GetProfile retrieves the profile for a document.
	// Returns ErrNotFound if no profile exists for the ID.
	GetProfile(ctx context.Context, documentID uuid.UUID) (*core.Profile, error)

	// ListProfiles returns the profiles of every stored document, keyed by
	// document ID.
	ListProfiles(ctx context.Context) (map[uuid.UUID]*core.Profile, error)

	// DeleteProfile removes the profile for a document.
	// Deleting a nonexistent profile is a no-op, not an error.
	DeleteProfile(ctx context.Context, documentID uuid.UUID) error

	// Close releases resources held by the repository.
	Close() error
}

// VectorRepository stores (chunk, embedding, metadata) triples and supports
// filtered k-nearest-neighbor similarity search.
type VectorRepository interface {
	// InsertChunks stores vector chunks. Insertion is idempotent per chunk
	// identity (documentID, chunkIndex): re-insertion overwrites.
	InsertChunks(ctx context.Context, chunks []*core.VectorChunk) error

	// DeleteByDocument removes all chunks owned by a document.
	// A document with no chunks is a no-op, not an error.
	DeleteByDocument(ctx context.Context, documentID uuid.UUID) error

	// SearchSimilar returns up to k chunks nearest to the query embedding by
	// cosine similarity, ordered descending by score. Ties are broken by
	// original insertion order.
	//
	// When filter is nil the search is unscoped. When filter is non-nil,
	// only chunks whose document ID is in the set are eligible; an empty set
	// returns the empty list. The implementation may over-fetch candidates
	// before filtering to compensate for the lack of native pre-filtering.
	SearchSimilar(ctx context.Context, embedding []float32, k int, filter map[uuid.UUID]struct{}) ([]*core.ChunkMatch, error)

	// Close releases resources held by the repository.
	Close() error
}

// BlobStore persists raw document blobs at id-addressed locations.
type BlobStore interface {
	// Save writes a blob for the given document ID and returns its storage
	// location (e.g. "documents/<id>.pdf").
	Save(documentID uuid.UUID, data []byte) (string, error)

	// Delete removes the blob for a document ID.
	// Deleting a nonexistent blob is a no-op, not an error.
	Delete(documentID uuid.UUID) error

	// Location returns the storage location a blob for the given ID would
	// occupy, whether or not it exists.
	Location(documentID uuid.UUID) string
}
