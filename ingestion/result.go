package ingestion

import (
	"github.com/google/uuid"
	"github.com/talentsift/talentsift/core"
)

// Pipeline stage names, used in per-file errors and log records.
const (
	StageExtract = "extract"
	StageParse   = "parse"
	StageEmbed   = "embed"
	StagePersist = "persist"
)

// Document is a raw input file handed to the pipeline.
type Document struct {
	Filename string
	Data     []byte
}

// DocumentResult is the outcome of one successfully committed document.
type DocumentResult struct {
	Filename   string
	DocumentID uuid.UUID
	Profile    *core.Profile

	// Warning is set when the document committed in a degraded form, e.g.
	// stored without a search index after an embedding failure.
	Warning string
}

// FileError records a per-file failure with the stage it occurred in.
// A failed file leaves no partial writes behind.
type FileError struct {
	Filename string
	Stage    string
	Err      error
}

func (e *FileError) Error() string {
	return e.Filename + ": " + e.Stage + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// BatchResult aggregates the outcomes of a batch ingest. Every input file
// appears in exactly one of the two lists.
type BatchResult struct {
	Results []*DocumentResult
	Errors  []*FileError
}
