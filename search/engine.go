package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/talentsift/talentsift/ai"
	"github.com/talentsift/talentsift/core"
	"github.com/talentsift/talentsift/storage"
)

// chunkFetchFactor widens the chunk request so the engine can still fill the
// requested number of distinct documents when several top chunks share an
// owner.
const chunkFetchFactor = 3

// Engine answers semantic queries over stored profiles. A query is embedded
// once, matched against the chunk index, and the hits aggregated per owning
// document.
type Engine struct {
	profiles storage.ProfileRepository
	vectors  storage.VectorRepository
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a new search engine.
func NewEngine(
	profiles storage.ProfileRepository,
	vectors storage.VectorRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Engine, error) {
	if profiles == nil {
		return nil, ErrProfileRepositoryRequired
	}
	if vectors == nil {
		return nil, ErrVectorRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	e := &Engine{
		profiles: profiles,
		vectors:  vectors,
		embedder: provider.Embedder(),
		logger:   slog.Default().With("component", "search"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Search returns up to limit distinct documents ranked by their best chunk
// similarity. A nil scope searches all documents; a non-nil scope restricts
// results to the given document IDs, and an empty scope matches nothing.
func (e *Engine) Search(ctx context.Context, query string, scope map[uuid.UUID]struct{}, limit int) ([]*core.ProfileMatch, error) {
	return e.SearchWithMonitor(ctx, query, scope, limit, nil)
}

// SearchWithMonitor is Search with stage callbacks for instrumentation.
func (e *Engine) SearchWithMonitor(ctx context.Context, query string, scope map[uuid.UUID]struct{}, limit int, monitor SearchMonitor) ([]*core.ProfileMatch, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if limit < 1 {
		limit = 1
	}

	monitor.Start(query)

	// The query is embedded exactly once per search.
	embedding, err := e.embedder.EmbedText(ctx, query)
	if err != nil {
		e.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}

	if scope != nil && len(scope) == 0 {
		results := []*core.ProfileMatch{}
		monitor.Finish(results)
		return results, nil
	}

	matches, err := e.vectors.SearchSimilar(ctx, embedding, limit*chunkFetchFactor, scope)
	if err != nil {
		e.logger.Error("error querying for similar chunks", "err", err)
		return nil, err
	}
	monitor.AfterChunkSearch(matches)

	// Group chunk hits per owning document. Matches arrive in descending
	// score order, so a document's first chunk carries its best score and
	// first-seen order is final ranking order.
	var results []*core.ProfileMatch
	byDoc := make(map[uuid.UUID]*core.ProfileMatch)

	for _, match := range matches {
		docID := match.Chunk.DocumentID

		if existing, ok := byDoc[docID]; ok {
			existing.Snippets = append(existing.Snippets, match.Chunk.Text)
			continue
		}
		if len(byDoc) == limit {
			continue
		}

		profile, err := e.profiles.GetProfile(ctx, docID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				// Chunk outlived its document; skip it without failing
				// the search.
				e.logger.Debug("skipping dangling chunk", "document_id", docID)
				monitor.DanglingChunk(docID)
				continue
			}
			return nil, err
		}

		result := &core.ProfileMatch{
			DocumentID: docID,
			Score:      match.Score,
			Profile:    profile,
			Snippets:   []string{match.Chunk.Text},
		}
		byDoc[docID] = result
		results = append(results, result)
		monitor.DocumentHit(result)
	}

	monitor.Finish(results)
	return results, nil
}
