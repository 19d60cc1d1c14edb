package badger

import (
	"fmt"

	"github.com/google/uuid"
)

// Key prefixes for different data types
const (
	documentRecordPrefix = "docrec"
	profileRecordPrefix  = "cvrec"
	vectorChunkPrefix    = "vchunk"
	vectorChunkSeq       = "vchunkseq"
)

// makeDocumentKey generates a key for a document record by ID.
func makeDocumentKey(id uuid.UUID) []byte {
	return []byte(fmt.Sprintf("%s:%s", documentRecordPrefix, id))
}

// makeProfileKey generates a key for a structured profile by document ID.
func makeProfileKey(documentID uuid.UUID) []byte {
	return []byte(fmt.Sprintf("%s:%s", profileRecordPrefix, documentID))
}

// makeChunkKey generates a key for a vector chunk.
// Format: prefix:documentID:chunkIndex, with the index zero-padded so
// lexicographic iteration matches chunk order within a document.
func makeChunkKey(documentID uuid.UUID, chunkIndex int) []byte {
	return []byte(fmt.Sprintf("%s:%s:%06d", vectorChunkPrefix, documentID, chunkIndex))
}

// makeChunkDocumentPrefix generates the key prefix covering all chunks of a
// single document.
func makeChunkDocumentPrefix(documentID uuid.UUID) []byte {
	return []byte(fmt.Sprintf("%s:%s:", vectorChunkPrefix, documentID))
}

// chunkScanPrefix covers every stored vector chunk. The sequence key
// vectorChunkSeq does not share this prefix because it lacks the colon.
func chunkScanPrefix() []byte {
	return []byte(vectorChunkPrefix + ":")
}
