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

// Package search provides semantic search over stored candidate profiles.
//
// The Engine type embeds a query once, matches it against the vector chunk
// index (optionally scoped to a set of documents), and aggregates chunk hits
// per owning document: each result carries the document's best chunk score
// and the matching snippets, ranked by best score descending.
package search
