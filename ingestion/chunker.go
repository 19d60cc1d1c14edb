package ingestion

import (
	"strings"

	"github.com/google/uuid"
	"github.com/talentsift/talentsift/core"
	"github.com/tmc/langchaingo/textsplitter"
)

// Default chunking parameters. Overlap keeps skill phrases that straddle a
// window boundary findable from both sides.
const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 100
)

// Chunker splits profile text into overlapping windows for embedding.
// Splitting is deterministic: the same input always produces the same
// chunks, which is what makes reindexing reproducible.
type Chunker struct {
	splitter textsplitter.RecursiveCharacter
}

// NewChunker creates a Chunker. Non-positive size or overlap fall back to
// the defaults.
func NewChunker(chunkSize, chunkOverlap int) *Chunker {
	if chunkSize < 1 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = DefaultChunkOverlap
	}
	return &Chunker{
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
		),
	}
}

// Chunk splits text into overlapping windows. Empty or whitespace-only
// input yields zero chunks without error.
func (c *Chunker) Chunk(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	return c.splitter.SplitText(text)
}

// ProfileChunks builds the vector chunks for a profile: the searchable
// summary plus the joined work-experience responsibilities. Embeddings are
// left empty for the caller to fill.
func (c *Chunker) ProfileChunks(documentID uuid.UUID, profile *core.Profile) ([]*core.VectorChunk, error) {
	var chunks []*core.VectorChunk
	index := 0

	appendSource := func(text string, source core.ChunkSource) error {
		parts, err := c.Chunk(text)
		if err != nil {
			return err
		}
		for _, part := range parts {
			chunks = append(chunks, &core.VectorChunk{
				DocumentID: documentID,
				ChunkIndex: index,
				Text:       part,
				Length:     len(part),
				Source:     source,
			})
			index++
		}
		return nil
	}

	if err := appendSource(profile.SearchableSummary, core.ChunkSourceSummary); err != nil {
		return nil, err
	}
	if err := appendSource(experienceText(profile), core.ChunkSourceExperience); err != nil {
		return nil, err
	}
	return chunks, nil
}

// experienceText flattens work experience into a single block, one position
// per paragraph.
func experienceText(profile *core.Profile) string {
	var sb strings.Builder
	for _, exp := range profile.WorkExperience {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(exp.JobTitle)
		if exp.CompanyName != "" {
			sb.WriteString(" at ")
			sb.WriteString(exp.CompanyName)
		}
		for _, resp := range exp.Responsibilities {
			sb.WriteString("\n")
			sb.WriteString(resp)
		}
	}
	return sb.String()
}
