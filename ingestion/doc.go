// Package ingestion provides pipeline orchestration for processing uploaded
// documents.
//
// The Pipeline type manages the ingestion workflow for résumé documents,
// including:
//   - Persisting the raw blob and its metadata record
//   - Extracting text and a structured profile
//   - Chunking and embedding the profile for semantic search
//   - Rolling back all writes when a document fails partway
//
// Batches are processed concurrently using a worker pool; documents within a
// batch are independent, so one failure never aborts its siblings.
package ingestion
