// Copyright 2025 Talentsift Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package talentsift

import (
	"log/slog"

	"github.com/talentsift/talentsift/ai"
	"github.com/talentsift/talentsift/ai/openai"
	"github.com/talentsift/talentsift/ingestion"
	"github.com/talentsift/talentsift/search"
	"github.com/talentsift/talentsift/storage"
	"github.com/talentsift/talentsift/storage/badger"
)

// Database bundles the storage backend, repositories, blob store, and AI
// provider behind one lifecycle.
type Database struct {
	backend   *badger.Backend
	documents storage.DocumentRepository
	profiles  storage.ProfileRepository
	vectors   storage.VectorRepository
	blobs     *storage.FileBlobStore
	registry  *ai.Registry
	provider  ai.AIProvider
	logger    *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig     *ai.Config
	providerName string
	documentsDir string
}

// WithAIConfig overrides the default AI service configuration.
func WithAIConfig(cfg *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if cfg != nil {
			o.aiConfig = cfg
		}
	}
}

// WithProviderName selects which registered AI provider to use.
// Default is the OpenAI-compatible provider.
func WithProviderName(name string) DatabaseOption {
	return func(o *databaseOptions) {
		if name != "" {
			o.providerName = name
		}
	}
}

// WithDocumentsDir sets the directory raw document blobs are stored in.
// Default is "documents".
func WithDocumentsDir(dir string) DatabaseOption {
	return func(o *databaseOptions) {
		if dir != "" {
			o.documentsDir = dir
		}
	}
}

// NewDatabase opens the BadgerDB backend at filePath and wires up the
// repositories, blob store, and AI provider.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig:     ai.DefaultConfig(),
		providerName: openai.Name,
		documentsDir: "documents",
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	vectors, err := badger.NewVectorRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	blobs, err := storage.NewFileBlobStore(options.documentsDir)
	if err != nil {
		vectors.Close()
		backend.Close()
		return nil, err
	}

	registry := ai.NewRegistry(options.aiConfig)
	registry.Register(openai.Name, openai.NewProvider)

	provider, err := registry.Provider(options.providerName)
	if err != nil {
		vectors.Close()
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:   backend,
		documents: badger.NewDocumentRepository(backend),
		profiles:  badger.NewProfileRepository(backend),
		vectors:   vectors,
		blobs:     blobs,
		registry:  registry,
		provider:  provider,
		logger:    slog.Default(),
	}, nil
}

// Close shuts down the AI provider, repositories, and backend.
func (db *Database) Close() error {
	if err := db.registry.Close(); err != nil {
		db.logger.Error("error closing AI providers", "err", err)
	}

	if err := db.vectors.Close(); err != nil {
		db.logger.Error("error closing vector repository", "err", err)
		return err
	}
	if err := db.profiles.Close(); err != nil {
		db.logger.Error("error closing profile repository", "err", err)
		return err
	}
	if err := db.documents.Close(); err != nil {
		db.logger.Error("error closing document repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) DocumentRepository() storage.DocumentRepository {
	return db.documents
}

func (db *Database) ProfileRepository() storage.ProfileRepository {
	return db.profiles
}

func (db *Database) VectorRepository() storage.VectorRepository {
	return db.vectors
}

func (db *Database) BlobStore() *storage.FileBlobStore {
	return db.blobs
}

func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.documents, db.profiles, db.vectors, db.blobs, db.provider, opts...)
}

func (db *Database) NewSearchEngine(opts ...search.Option) (*search.Engine, error) {
	return search.NewEngine(db.profiles, db.vectors, db.provider, opts...)
}
