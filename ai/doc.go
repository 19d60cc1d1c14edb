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


// Package ai provides abstractions for the AI services used in Talentsift.
//
// This package defines interfaces for text embeddings and structured profile
// extraction. It follows the dependency inversion principle, allowing the
// ingestion pipeline and search engine to depend on abstractions rather than
// concrete implementations.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - ProfileExtractor: Extracts a schema-conformant structured profile from
//     résumé text via a language model
//   - AIProvider: Aggregates AI services for convenient initialization
//
// Providers are named and registered in a Registry; construction is lazy and
// memoized per name, so the process wires exactly one concrete provider at a
// time while remaining extensible to more without changing callers.
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Public constructors (openai.NewProvider, openai.NewEmbedder, etc.) return
// interface types to enforce abstraction. Test utility constructors
// (mock.NewMockEmbedder, mock.NewMockProfileExtractor) return concrete types
// to enable assertions and behavior injection via function fields.
package ai
