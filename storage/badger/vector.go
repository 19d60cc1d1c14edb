package badger

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/mus-format/mus-go/varint"
	"github.com/talentsift/talentsift/core"
	"github.com/talentsift/talentsift/storage"
)

// overFetchFactor controls how many candidates a scoped search ranks before
// applying the document filter. Comparisons run over the full chunk set
// anyway, so a generous factor only costs memory for the candidate slice.
const overFetchFactor = 3

// VectorRepository implements storage.VectorRepository for BadgerDB.
//
// Similarity search is a brute-force scan over all stored chunks. The
// corpus this serves is bounded by human recruiting throughput, so a scan
// stays well under interactive latency and avoids an index dependency.
type VectorRepository struct {
	backend *Backend
	seq     *badger.Sequence
}

var _ storage.VectorRepository = (*VectorRepository)(nil)

// NewVectorRepository creates a new VectorRepository.
func NewVectorRepository(backend *Backend) (*VectorRepository, error) {
	seq, err := backend.GetSequence(vectorChunkSeq)
	if err != nil {
		return nil, err
	}
	return &VectorRepository{backend: backend, seq: seq}, nil
}

// Close releases the insertion-order sequence.
func (r *VectorRepository) Close() error {
	return r.seq.Release()
}

// InsertChunks stores vector chunks. Re-inserting a (documentID, chunkIndex)
// pair overwrites the previous value and moves it to the back of the
// insertion order.
func (r *VectorRepository) InsertChunks(ctx context.Context, chunks []*core.VectorChunk) error {
	for _, chunk := range chunks {
		if err := core.ValidateChunk(chunk); err != nil {
			return err
		}
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			seq, err := r.seq.Next()
			if err != nil {
				return err
			}
			key := makeChunkKey(chunk.DocumentID, chunk.ChunkIndex)
			if err := tx.Set(key, marshalStoredChunk(seq, chunk)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// DeleteByDocument removes all chunks owned by a document. A document with
// no chunks is a no-op.
func (r *VectorRepository) DeleteByDocument(ctx context.Context, documentID uuid.UUID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeChunkDocumentPrefix(documentID)
		opts.PrefetchValues = false

		var keys [][]byte
		iter := tx.NewIterator(opts)
		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		iter.Close()

		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// scoredChunk pairs a candidate with its similarity and insertion order.
type scoredChunk struct {
	chunk *core.VectorChunk
	score float32
	order uint64
}

// SearchSimilar returns up to k chunks nearest to the query embedding by
// cosine similarity, descending. Ties keep insertion order. A nil filter
// searches everything; an empty non-nil filter matches nothing.
func (r *VectorRepository) SearchSimilar(ctx context.Context, embedding []float32, k int, filter map[uuid.UUID]struct{}) ([]*core.ChunkMatch, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", storage.ErrInvalidQuery, k)
	}
	if len(embedding) == 0 {
		return nil, fmt.Errorf("%w: empty query embedding", storage.ErrInvalidQuery)
	}
	if filter != nil && len(filter) == 0 {
		return []*core.ChunkMatch{}, nil
	}

	var candidates []scoredChunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = chunkScanPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var order uint64
			var chunk *core.VectorChunk
			err := iter.Item().Value(func(val []byte) error {
				var err error
				order, chunk, err = unmarshalStoredChunk(val)
				return err
			})
			if err != nil {
				return err
			}
			if len(chunk.Embedding) == 0 {
				continue
			}

			candidates = append(candidates, scoredChunk{
				chunk: chunk,
				score: cosineSimilarity(embedding, chunk.Embedding),
				order: order,
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Sort by similarity descending, ties by insertion order.
	slices.SortFunc(candidates, func(a, b scoredChunk) int {
		if a.score > b.score {
			return -1
		}
		if a.score < b.score {
			return 1
		}
		if a.order < b.order {
			return -1
		}
		if a.order > b.order {
			return 1
		}
		return 0
	})

	// No native pre-filtering: rank a widened candidate window first, then
	// drop out-of-scope chunks.
	if filter != nil {
		if limit := k * overFetchFactor; len(candidates) > limit {
			candidates = candidates[:limit]
		}
		candidates = slices.DeleteFunc(candidates, func(c scoredChunk) bool {
			_, ok := filter[c.chunk.DocumentID]
			return !ok
		})
	}
	if len(candidates) > k {
		candidates = candidates[:k]
	}

	matches := make([]*core.ChunkMatch, 0, len(candidates))
	for _, c := range candidates {
		matches = append(matches, &core.ChunkMatch{Chunk: c.chunk, Score: c.score})
	}
	return matches, nil
}

// marshalStoredChunk prefixes the serialized chunk with its insertion-order
// sequence number.
func marshalStoredChunk(order uint64, chunk *core.VectorChunk) []byte {
	body := storage.MarshalVectorChunk(chunk)
	buf := make([]byte, varint.Uint64.Size(order)+len(body))
	n := varint.Uint64.Marshal(order, buf)
	copy(buf[n:], body)
	return buf
}

// unmarshalStoredChunk splits a stored value back into sequence number and
// chunk.
func unmarshalStoredChunk(data []byte) (uint64, *core.VectorChunk, error) {
	order, n, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	chunk, err := storage.UnmarshalVectorChunk(data[n:])
	if err != nil {
		return 0, nil, err
	}
	return order, chunk, nil
}

// cosineSimilarity calculates the cosine of the angle between two vectors.
// Zero-length or zero-norm inputs score zero.
func cosineSimilarity(a, b []float32) float32 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < minLen; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
