package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/talentsift/talentsift/core"
	"github.com/talentsift/talentsift/storage"
)

func TestDocumentRecordBasics(t *testing.T) {
	docRepo, profileRepo, vectorRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { vectorRepo.Close(); profileRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	record := &core.DocumentRecord{
		ID:              uuid.New(),
		Name:            "jane_doe_cv.pdf",
		StorageLocation: "documents/" + uuid.NewString() + ".pdf",
		GroupID:         "batch-1",
	}

	if err := docRepo.AddDocument(ctx, record); err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	retrieved, err := docRepo.GetDocument(ctx, record.ID)
	if err != nil {
		t.Fatalf("Failed to get document: %v", err)
	}
	if retrieved.Name != record.Name {
		t.Fatalf("Expected name %q, got %q", record.Name, retrieved.Name)
	}
	if retrieved.StorageLocation != record.StorageLocation {
		t.Fatalf("Expected location %q, got %q", record.StorageLocation, retrieved.StorageLocation)
	}
}

func TestDocumentRecordNotFound(t *testing.T) {
	docRepo, profileRepo, vectorRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { vectorRepo.Close(); profileRepo.Close(); docRepo.Close(); backend.Close() }()

	_, err = docRepo.GetDocument(context.Background(), uuid.New())
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestDocumentRecordList(t *testing.T) {
	docRepo, profileRepo, vectorRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { vectorRepo.Close(); profileRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	ids := make(map[uuid.UUID]bool)
	for i := 0; i < 3; i++ {
		record := &core.DocumentRecord{ID: uuid.New(), Name: "cv.pdf"}
		record.StorageLocation = "documents/" + record.ID.String() + ".pdf"
		if err := docRepo.AddDocument(ctx, record); err != nil {
			t.Fatalf("Failed to add document: %v", err)
		}
		ids[record.ID] = true
	}

	records, err := docRepo.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("Failed to list documents: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	for _, record := range records {
		if !ids[record.ID] {
			t.Fatalf("Unexpected record ID %s", record.ID)
		}
	}
}

func TestDocumentRecordDeleteIdempotent(t *testing.T) {
	docRepo, profileRepo, vectorRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { vectorRepo.Close(); profileRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	record := &core.DocumentRecord{ID: uuid.New(), Name: "cv.pdf", StorageLocation: "documents/x.pdf"}
	if err := docRepo.AddDocument(ctx, record); err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	if err := docRepo.DeleteDocument(ctx, record.ID); err != nil {
		t.Fatalf("Failed to delete document: %v", err)
	}
	if _, err := docRepo.GetDocument(ctx, record.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}

	// Deleting again must not fail
	if err := docRepo.DeleteDocument(ctx, record.ID); err != nil {
		t.Fatalf("Second delete should be a no-op, got %v", err)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	docRepo, profileRepo, vectorRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { vectorRepo.Close(); profileRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()
	docID := uuid.New()

	profile := &core.Profile{
		Name:     "jane doe",
		Email:    "jane@example.com",
		Position: "software engineer",
		Skills:   []string{"go", "distributed systems"},
	}
	profile.Scores.Experience = 180
	profile.Scores.ExperienceReason = "strong backend background"

	if err := profileRepo.AddProfile(ctx, docID, profile); err != nil {
		t.Fatalf("Failed to add profile: %v", err)
	}

	retrieved, err := profileRepo.GetProfile(ctx, docID)
	if err != nil {
		t.Fatalf("Failed to get profile: %v", err)
	}
	if retrieved.Name != "jane doe" {
		t.Fatalf("Expected name 'jane doe', got %q", retrieved.Name)
	}
	if retrieved.Scores.Experience != 180 {
		t.Fatalf("Expected experience score 180, got %d", retrieved.Scores.Experience)
	}
	if len(retrieved.Skills) != 2 {
		t.Fatalf("Expected 2 skills, got %d", len(retrieved.Skills))
	}
}

func TestProfileListAndDelete(t *testing.T) {
	docRepo, profileRepo, vectorRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { vectorRepo.Close(); profileRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	first, second := uuid.New(), uuid.New()
	if err := profileRepo.AddProfile(ctx, first, &core.Profile{Name: "first"}); err != nil {
		t.Fatalf("Failed to add profile: %v", err)
	}
	if err := profileRepo.AddProfile(ctx, second, &core.Profile{Name: "second"}); err != nil {
		t.Fatalf("Failed to add profile: %v", err)
	}

	profiles, err := profileRepo.ListProfiles(ctx)
	if err != nil {
		t.Fatalf("Failed to list profiles: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("Expected 2 profiles, got %d", len(profiles))
	}
	if profiles[first].Name != "first" || profiles[second].Name != "second" {
		t.Fatal("Profiles keyed to wrong document IDs")
	}

	if err := profileRepo.DeleteProfile(ctx, first); err != nil {
		t.Fatalf("Failed to delete profile: %v", err)
	}
	if _, err := profileRepo.GetProfile(ctx, first); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}
	// Idempotent
	if err := profileRepo.DeleteProfile(ctx, first); err != nil {
		t.Fatalf("Second delete should be a no-op, got %v", err)
	}
}
