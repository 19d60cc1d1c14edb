package ai

import "errors"

var (
	// ErrServiceUnavailable indicates the language-model or embedding service
	// is unreachable or returned a transport-level failure. Retryable.
	ErrServiceUnavailable = errors.New("ai service unavailable")

	// ErrExtractionTimeout indicates the model call exceeded its deadline. Retryable.
	ErrExtractionTimeout = errors.New("extraction timed out")

	// ErrSchemaValidation indicates the model returned output violating the
	// extraction contract. Not retryable without re-prompting.
	ErrSchemaValidation = errors.New("model output violates extraction schema")

	// ErrEmbedding indicates embedding generation failed. Retryable.
	ErrEmbedding = errors.New("embedding generation failed")

	// ErrUnknownProvider indicates a provider name with no registered factory.
	ErrUnknownProvider = errors.New("unknown ai provider")
)

// Retryable reports whether an error is a transient service failure that a
// caller may retry, as opposed to a contract violation.
func Retryable(err error) bool {
	return errors.Is(err, ErrServiceUnavailable) ||
		errors.Is(err, ErrExtractionTimeout) ||
		errors.Is(err, ErrEmbedding)
}
