package readers

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv/v2"
)

// MinTextLength is the minimum number of characters a document must yield to
// be usable. Shorter output almost always means a scanned, image-only document
// whose embeddings would be garbage.
const MinTextLength = 100

var (
	// ErrExtraction indicates the underlying converter could not parse the bytes.
	ErrExtraction = errors.New("document text extraction failed")

	// ErrContentTooShort indicates the document yielded too little text to be usable.
	ErrContentTooShort = errors.New("document content too short")
)

// PDFExtractor converts raw PDF bytes to plain text, page text concatenated in
// original order. It is stateless and safe for concurrent use.
type PDFExtractor struct {
	// convert is the underlying converter; replaceable in tests.
	convert func(r *bytes.Reader) (string, error)
	logger  *slog.Logger
}

// NewPDFExtractor creates a PDF text extractor backed by docconv.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{
		convert: func(r *bytes.Reader) (string, error) {
			res, err := docconv.Convert(r, "application/pdf", true)
			if err != nil {
				return "", err
			}
			return res.Body, nil
		},
		logger: slog.Default().With("component", "pdf-extractor"),
	}
}

// CanRead reports whether the filename looks like a PDF document.
// The check is case-insensitive.
func (e *PDFExtractor) CanRead(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

// ExtractText converts raw document bytes to plain text.
// Returns ErrExtraction if the converter cannot parse the bytes, or
// ErrContentTooShort if the resulting text is below MinTextLength.
func (e *PDFExtractor) ExtractText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty document", ErrExtraction)
	}

	text, err := e.convert(bytes.NewReader(data))
	if err != nil {
		e.logger.Error("converter failed", "err", err)
		return "", fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	text = strings.TrimSpace(text)
	if len(text) < MinTextLength {
		e.logger.Warn("document yielded too little text", "length", len(text))
		return "", fmt.Errorf("%w: got %d characters, want at least %d",
			ErrContentTooShort, len(text), MinTextLength)
	}

	return text, nil
}
