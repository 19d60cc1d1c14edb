// Copyright 2025 Talentsift Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"encoding/json"
	"fmt"

	"github.com/talentsift/talentsift/core"
)

// MarshalDocumentRecord serializes a DocumentRecord to bytes.
func MarshalDocumentRecord(record *core.DocumentRecord) []byte {
	buf := make([]byte, core.DocumentRecordMUS.Size(*record))
	core.DocumentRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalDocumentRecord deserializes a DocumentRecord from bytes.
func UnmarshalDocumentRecord(data []byte) (*core.DocumentRecord, error) {
	record, _, err := core.DocumentRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &record, nil
}

// MarshalVectorChunk serializes a VectorChunk to bytes.
func MarshalVectorChunk(chunk *core.VectorChunk) []byte {
	buf := make([]byte, core.VectorChunkMUS.Size(*chunk))
	core.VectorChunkMUS.Marshal(*chunk, buf)
	return buf
}

// UnmarshalVectorChunk deserializes a VectorChunk from bytes.
func UnmarshalVectorChunk(data []byte) (*core.VectorChunk, error) {
	chunk, _, err := core.VectorChunkMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &chunk, nil
}

// MarshalProfile serializes a Profile to its canonical JSON encoding.
// JSON is the wire format of the extraction contract, so the stored value is
// exactly what the validated model output round-trips to.
func MarshalProfile(profile *core.Profile) ([]byte, error) {
	data, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalProfile deserializes a Profile from its JSON encoding.
func UnmarshalProfile(data []byte) (*core.Profile, error) {
	var profile core.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &profile, nil
}
