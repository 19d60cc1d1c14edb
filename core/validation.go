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


package core

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ValidateProfile validates a Profile against the extraction contract.
//
// Validation rules:
//   - Mandatory identity fields (name, email, phone, address, position)
//     must not be empty
//   - Every sub-score must be within its declared range
//   - Rating must be within [1,1000]
//
// All violations are collected and reported together rather than failing on
// the first, so a malformed model response surfaces every broken constraint.
func ValidateProfile(p *Profile) error {
	if p == nil {
		return fmt.Errorf("%w: profile is nil", ErrInvalidProfile)
	}

	var violations []error

	mandatory := []struct {
		field string
		value string
	}{
		{"name", p.Name},
		{"email", p.Email},
		{"phone_number", p.PhoneNumber},
		{"address", p.Address},
		{"position", p.Position},
	}
	for _, m := range mandatory {
		if m.value == "" {
			violations = append(violations, fmt.Errorf("%w: %s", ErrMissingField, m.field))
		}
	}

	ranges := []struct {
		field string
		value int
		max   int
	}{
		{"scores.experience", p.Scores.Experience, MaxExperience},
		{"scores.education", p.Scores.Education, MaxEducation},
		{"scores.skill", p.Scores.Skill, MaxSkill},
		{"scores.project", p.Scores.Project, MaxProject},
		{"scores.presentation", p.Scores.Presentation, MaxPresentation},
		{"rating", p.Rating, MaxRating},
	}
	for _, r := range ranges {
		if r.value < MinScore || r.value > r.max {
			violations = append(violations, fmt.Errorf("%w: %s = %d, want [%d,%d]",
				ErrScoreOutOfRange, r.field, r.value, MinScore, r.max))
		}
	}

	if len(violations) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, errors.Join(violations...))
	}
	return nil
}

// ValidateChunk validates a VectorChunk according to domain rules.
//
// NOT validated:
//   - Embedding (can be empty until the embedding stage runs)
func ValidateChunk(chunk *VectorChunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}
	if chunk.DocumentID == uuid.Nil {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrNilDocumentID)
	}
	if chunk.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyChunkText)
	}
	if chunk.ChunkIndex < 0 {
		return fmt.Errorf("%w: negative chunk index %d", ErrInvalidChunk, chunk.ChunkIndex)
	}
	return nil
}
