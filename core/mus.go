package core

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the compact storage records. The structured profile is
// persisted as JSON (it is the wire format of the extraction contract); only
// the hot-path records below get a binary encoding.

var embeddingMUS = ord.NewSliceSer[float32](raw.Float32)

// DocumentRecordMUS serializes DocumentRecord values for storage.
var DocumentRecordMUS = documentRecordMUS{}

type documentRecordMUS struct{}

func (s documentRecordMUS) Marshal(v DocumentRecord, bs []byte) (n int) {
	n = ord.String.Marshal(v.ID.String(), bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.StorageLocation, bs[n:])
	n += ord.String.Marshal(v.GroupID, bs[n:])
	return n
}

func (s documentRecordMUS) Unmarshal(bs []byte) (v DocumentRecord, n int, err error) {
	var rawID string
	rawID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.ID, err = uuid.Parse(rawID)
	if err != nil {
		err = fmt.Errorf("malformed document id %q: %w", rawID, err)
		return
	}
	var n1 int
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.StorageLocation, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.GroupID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s documentRecordMUS) Size(v DocumentRecord) (size int) {
	size = ord.String.Size(v.ID.String())
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.StorageLocation)
	size += ord.String.Size(v.GroupID)
	return size
}

// VectorChunkMUS serializes VectorChunk values for storage.
var VectorChunkMUS = vectorChunkMUS{}

type vectorChunkMUS struct{}

func (s vectorChunkMUS) Marshal(v VectorChunk, bs []byte) (n int) {
	n = ord.String.Marshal(v.DocumentID.String(), bs)
	n += varint.Int.Marshal(v.ChunkIndex, bs[n:])
	n += ord.String.Marshal(v.Text, bs[n:])
	n += embeddingMUS.Marshal(v.Embedding, bs[n:])
	n += varint.Int.Marshal(v.Length, bs[n:])
	n += ord.String.Marshal(string(v.Source), bs[n:])
	return n
}

func (s vectorChunkMUS) Unmarshal(bs []byte) (v VectorChunk, n int, err error) {
	var rawID string
	rawID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.DocumentID, err = uuid.Parse(rawID)
	if err != nil {
		err = fmt.Errorf("malformed document id %q: %w", rawID, err)
		return
	}
	var n1 int
	v.ChunkIndex, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Embedding, n1, err = embeddingMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Length, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var source string
	source, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	v.Source = ChunkSource(source)
	return
}

func (s vectorChunkMUS) Size(v VectorChunk) (size int) {
	size = ord.String.Size(v.DocumentID.String())
	size += varint.Int.Size(v.ChunkIndex)
	size += ord.String.Size(v.Text)
	size += embeddingMUS.Size(v.Embedding)
	size += varint.Int.Size(v.Length)
	size += ord.String.Size(string(v.Source))
	return size
}
