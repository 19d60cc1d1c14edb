package search

import (
	"github.com/google/uuid"
	"github.com/talentsift/talentsift/core"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterChunkSearch(matches []*core.ChunkMatch)
	DanglingChunk(documentID uuid.UUID)
	DocumentHit(match *core.ProfileMatch)
	Finish(results []*core.ProfileMatch)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                        {}
func (n *noopMonitor) AfterChunkSearch(_ []*core.ChunkMatch) {}
func (n *noopMonitor) DanglingChunk(_ uuid.UUID)             {}
func (n *noopMonitor) DocumentHit(_ *core.ProfileMatch)      {}
func (n *noopMonitor) Finish(_ []*core.ProfileMatch)         {}
