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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidProfile indicates a Profile failed validation.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrMissingField indicates a mandatory identity field is empty.
	ErrMissingField = errors.New("mandatory field missing")

	// ErrScoreOutOfRange indicates a numeric score is outside its declared bounds.
	ErrScoreOutOfRange = errors.New("score out of range")

	// ErrInvalidChunk indicates a VectorChunk failed validation.
	ErrInvalidChunk = errors.New("invalid vector chunk")

	// ErrEmptyChunkText indicates a chunk with no text content.
	ErrEmptyChunkText = errors.New("chunk text cannot be empty")

	// ErrNilDocumentID indicates a record referencing the zero document id.
	ErrNilDocumentID = errors.New("document id cannot be nil")
)
