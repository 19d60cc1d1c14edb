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

package server

import (
	"log/slog"
	"net/http"

	"github.com/talentsift/talentsift/ingestion"
	"github.com/talentsift/talentsift/search"
	"github.com/talentsift/talentsift/storage"
)

// Server exposes the ingestion pipeline and search engine over HTTP.
type Server struct {
	pipeline *ingestion.Pipeline
	engine   *search.Engine
	profiles storage.ProfileRepository
	blobs    *storage.FileBlobStore
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates an HTTP server over the given components.
func NewServer(
	pipeline *ingestion.Pipeline,
	engine *search.Engine,
	profiles storage.ProfileRepository,
	blobs *storage.FileBlobStore,
	opts ...Option,
) *Server {
	s := &Server{
		pipeline: pipeline,
		engine:   engine,
		profiles: profiles,
		blobs:    blobs,
		logger:   slog.Default().With("component", "server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleLiveness)
	mux.HandleFunc("POST /document/upload", s.handleUpload)
	mux.HandleFunc("GET /document/all", s.handleListDocuments)
	mux.HandleFunc("GET /document/{id}", s.handleGetDocument)
	mux.HandleFunc("DELETE /document/{id}", s.handleDeleteDocument)
	mux.HandleFunc("POST /document/search", s.handleSearch)

	// Raw blobs are served straight off the documents directory.
	mux.Handle("GET /documents/",
		http.StripPrefix("/documents/", http.FileServer(http.Dir(s.blobs.Dir()))))

	return mux
}

// ListenAndServe serves the handler on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}
