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


// Package storage provides the storage abstraction layer for talentsift.
//
// This package defines repository interfaces that decouple storage
// implementation from business logic: document metadata, structured profiles,
// vector chunks and raw blobs each have exactly one owner.
//
// # Ownership
//
//   - DocumentRepository owns DocumentRecord
//   - ProfileRepository owns the structured profile of a document
//   - VectorRepository owns the chunk set of a document
//   - BlobStore owns the raw document bytes
//
// The ingestion pipeline coordinates these stores but owns none of them; it
// only holds transient in-memory state during a single ingestion call.
//
// Backend packages (storage/badger) provide the concrete implementations;
// callers hold the interfaces defined here so an alternative backend can be
// swapped in without touching business logic.
package storage
