package core

import (
	"github.com/google/uuid"
)

// ChunkSource identifies which profile field a vector chunk was derived from.
type ChunkSource string

const (
	// ChunkSourceSummary marks chunks derived from the searchable summary blob.
	ChunkSourceSummary ChunkSource = "summary"
	// ChunkSourceExperience marks chunks derived from work experience text.
	ChunkSourceExperience ChunkSource = "experience"
)

// DocumentRecord holds the metadata of an uploaded résumé document.
// The ID is minted before any external call is made so it can serve as the
// correlation key for compensating deletes.
type DocumentRecord struct {
	ID              uuid.UUID
	Name            string
	StorageLocation string
	GroupID         string // optional grouping id, carried opaquely
}

// VectorChunk is the unit of embedding and similarity search. Many chunks
// belong to one document; they share the document's lifecycle and are deleted
// en masse with it.
type VectorChunk struct {
	DocumentID uuid.UUID
	ChunkIndex int
	Text       string
	Embedding  []float32
	Length     int
	Source     ChunkSource
}

// ChunkMatch is a single chunk returned from vector similarity search.
type ChunkMatch struct {
	Chunk *VectorChunk
	Score float32
}

// ProfileMatch is an aggregated search result for one document: the best
// similarity score across its matching chunks, the full structured profile,
// and the matching chunk snippets.
type ProfileMatch struct {
	DocumentID uuid.UUID
	Score      float32
	Profile    *Profile
	Snippets   []string
}
