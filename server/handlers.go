package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/talentsift/talentsift/core"
	"github.com/talentsift/talentsift/ingestion"
	"github.com/talentsift/talentsift/search"
	"github.com/talentsift/talentsift/storage"
)

// Search result count bounds; out-of-range requests are clamped.
const (
	defaultSearchLimit = 5
	maxSearchLimit     = 20
)

// maxUploadBytes caps the in-memory portion of a multipart upload.
const maxUploadBytes = 32 << 20

type uploadResultEntry struct {
	Filename      string        `json:"filename"`
	DocumentID    string        `json:"document_id"`
	ParsedProfile *core.Profile `json:"parsed_profile"`
	Warning       string        `json:"warning,omitempty"`
}

type uploadResponse struct {
	Results []uploadResultEntry `json:"results"`
	Errors  []string            `json:"errors"`
}

type documentListEntry struct {
	ID      string        `json:"id"`
	Profile *core.Profile `json:"profile"`
}

type searchRequest struct {
	Query string   `json:"query"`
	Scope []string `json:"scope,omitempty"`
	Limit int      `json:"limit,omitempty"`
}

type searchHit struct {
	SimilarityScore  float32       `json:"similarity_score"`
	Profile          *core.Profile `json:"profile"`
	MatchingSnippets []string      `json:"matching_snippets"`
}

func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "talentsift is running"})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		s.writeError(w, http.StatusBadRequest, "no files provided")
		return
	}
	groupID := r.FormValue("folder_id")

	files := make([]ingestion.Document, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "unreadable file: "+header.Filename)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "unreadable file: "+header.Filename)
			return
		}
		files = append(files, ingestion.Document{Filename: header.Filename, Data: data})
	}

	batch, err := s.pipeline.IngestBatch(r.Context(), groupID, files)
	if err != nil && !errors.Is(err, ingestion.ErrNoDocumentsProcessed) {
		s.logError(r, err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := uploadResponse{Results: []uploadResultEntry{}}
	for _, result := range batch.Results {
		resp.Results = append(resp.Results, uploadResultEntry{
			Filename:      result.Filename,
			DocumentID:    result.DocumentID.String(),
			ParsedProfile: result.Profile,
			Warning:       result.Warning,
		})
	}
	for _, fileErr := range batch.Errors {
		resp.Errors = append(resp.Errors, fileErr.Filename)
	}

	status := http.StatusOK
	if len(batch.Results) == 0 {
		status = http.StatusBadRequest
	}
	s.writeJSON(w, status, resp)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.profiles.ListProfiles(r.Context())
	if err != nil {
		s.logError(r, err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	entries := make([]documentListEntry, 0, len(profiles))
	for id, profile := range profiles {
		entries = append(entries, documentListEntry{ID: id.String(), Profile: profile})
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	profile, err := s.profiles.GetProfile(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "document not found")
			return
		}
		s.logError(r, err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	if err := s.pipeline.Delete(r.Context(), id); err != nil {
		s.logError(r, err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	limit := req.Limit
	if limit < 1 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	// Absent scope means unscoped; a present-but-empty scope matches nothing.
	var scope map[uuid.UUID]struct{}
	if req.Scope != nil {
		scope = make(map[uuid.UUID]struct{}, len(req.Scope))
		for _, raw := range req.Scope {
			id, err := uuid.Parse(raw)
			if err != nil {
				s.writeError(w, http.StatusBadRequest, "invalid scope id: "+raw)
				return
			}
			scope[id] = struct{}{}
		}
	}

	results, err := s.engine.Search(r.Context(), req.Query, scope, limit)
	if err != nil {
		if errors.Is(err, search.ErrEmptyQuery) {
			s.writeError(w, http.StatusBadRequest, "query must not be empty")
			return
		}
		s.logError(r, err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := make(map[string]searchHit, len(results))
	for _, result := range results {
		resp[result.DocumentID.String()] = searchHit{
			SimilarityScore:  result.Score,
			Profile:          result.Profile,
			MatchingSnippets: result.Snippets,
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("error encoding response", "err", err)
	}
}

// writeError sends a JSON error payload. Internal detail is logged, never
// leaked to the client.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) logError(r *http.Request, err error) {
	s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
}
