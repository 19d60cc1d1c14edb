package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileBlobStore implements BlobStore on the local filesystem. Blobs live at
// <dir>/<documentID>.pdf, the id-addressed layout the rest of the system
// assumes.
type FileBlobStore struct {
	dir    string
	logger *slog.Logger
}

// NewFileBlobStore creates a blob store rooted at dir, creating the directory
// if needed.
func NewFileBlobStore(dir string) (*FileBlobStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating blob directory: %w", err)
	}
	return &FileBlobStore{
		dir:    dir,
		logger: slog.Default().With("component", "blob-store"),
	}, nil
}

// Save writes the blob and returns its storage location.
func (s *FileBlobStore) Save(documentID uuid.UUID, data []byte) (string, error) {
	location := s.Location(documentID)
	if err := os.WriteFile(location, data, 0644); err != nil {
		return "", fmt.Errorf("saving blob %s: %w", documentID, err)
	}
	s.logger.Debug("saved blob", "id", documentID, "bytes", len(data))
	return location, nil
}

// Delete removes the blob if it exists. Missing blobs are not an error.
func (s *FileBlobStore) Delete(documentID uuid.UUID) error {
	err := os.Remove(s.Location(documentID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting blob %s: %w", documentID, err)
	}
	return nil
}

// Location returns the path a blob for the given ID occupies.
func (s *FileBlobStore) Location(documentID uuid.UUID) string {
	return filepath.Join(s.dir, documentID.String()+".pdf")
}

// Dir returns the root directory of the store.
func (s *FileBlobStore) Dir() string {
	return s.dir
}

var _ BlobStore = (*FileBlobStore)(nil)
