package ai

import (
	"context"

	"github.com/talentsift/talentsift/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ProfileExtractor converts unstructured résumé text into a schema-conformant
// structured profile via a language model.
// Implementations must be thread-safe for concurrent use.
type ProfileExtractor interface {
	// ExtractProfile sends the document text to the language model with the
	// extraction schema contract and returns the validated structured profile.
	// The text is the raw extracted document content; the implementation is
	// responsible for delimiting it from instruction text.
	//
	// Failure modes:
	//   - ErrExtractionTimeout: the model call exceeded its deadline (retryable)
	//   - ErrServiceUnavailable: the model service is unreachable (retryable)
	//   - ErrSchemaValidation: the model returned output violating the
	//     contract (not retryable without re-prompting)
	ExtractProfile(ctx context.Context, text string) (*core.Profile, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder and ProfileExtractor instances,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// ProfileExtractor returns the structured extraction service.
	// The returned ProfileExtractor is safe for concurrent use.
	ProfileExtractor() ProfileExtractor

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
