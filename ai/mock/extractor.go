package mock

import (
	"context"
	"strings"

	"github.com/talentsift/talentsift/core"
)

// MockProfileExtractor is a test double for ai.ProfileExtractor.
// It allows custom behavior injection via function fields.
type MockProfileExtractor struct {
	// ExtractProfileFunc is called by ExtractProfile if set.
	// If nil, uses default synthetic profile generation.
	ExtractProfileFunc func(ctx context.Context, text string) (*core.Profile, error)

	callCount int
}

// NewMockProfileExtractor creates a mock extractor with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockProfileExtractor() *MockProfileExtractor {
	return &MockProfileExtractor{}
}

// ExtractProfile returns a minimal valid profile derived from the input text.
// Default behavior: the first line of text becomes the candidate name and the
// whole text becomes the searchable summary.
func (m *MockProfileExtractor) ExtractProfile(ctx context.Context, text string) (*core.Profile, error) {
	m.callCount++

	if m.ExtractProfileFunc != nil {
		return m.ExtractProfileFunc(ctx, text)
	}

	name := "test candidate"
	if line, _, _ := strings.Cut(strings.TrimSpace(text), "\n"); line != "" {
		name = strings.ToLower(strings.TrimSpace(line))
	}

	return &core.Profile{
		Name:        name,
		Email:       "candidate@example.com",
		PhoneNumber: "+1 555 0199",
		Address:     "test city, test country",
		Position:    "software engineer",
		Scores: core.Scores{
			Experience:         100,
			ExperienceReason:   "mock",
			Education:          100,
			EducationReason:    "mock",
			Skill:              100,
			SkillReason:        "mock",
			Project:            100,
			ProjectReason:      "mock",
			Presentation:       100,
			PresentationReason: "mock",
		},
		SearchableSummary: strings.ToLower(strings.TrimSpace(text)),
		Rating:            500,
	}, nil
}

// CallCount returns the number of times ExtractProfile was called.
func (m *MockProfileExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockProfileExtractor) Reset() {
	m.callCount = 0
	m.ExtractProfileFunc = nil
}
