package main

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/talentsift/talentsift/core"
	"github.com/talentsift/talentsift/search"
)

// verboseMonitor prints per-stage search diagnostics.
type verboseMonitor struct {
	out io.Writer
}

var _ search.SearchMonitor = (*verboseMonitor)(nil)

func (m *verboseMonitor) Start(query string) {
	fmt.Fprintf(m.out, "searching: %q\n", query)
}

func (m *verboseMonitor) AfterChunkSearch(matches []*core.ChunkMatch) {
	fmt.Fprintf(m.out, "chunk hits: %d\n", len(matches))
	for _, match := range matches {
		fmt.Fprintf(m.out, "  [%0.3f] doc=%s chunk=%d source=%s\n",
			match.Score, match.Chunk.DocumentID, match.Chunk.ChunkIndex, match.Chunk.Source)
	}
}

func (m *verboseMonitor) DanglingChunk(documentID uuid.UUID) {
	fmt.Fprintf(m.out, "dangling chunk skipped: doc=%s\n", documentID)
}

func (m *verboseMonitor) DocumentHit(match *core.ProfileMatch) {
	fmt.Fprintf(m.out, "candidate: %s [%0.3f] %s\n",
		match.DocumentID, match.Score, match.Profile.Name)
}

func (m *verboseMonitor) Finish(results []*core.ProfileMatch) {
	fmt.Fprintf(m.out, "done: %d candidates\n", len(results))
}
