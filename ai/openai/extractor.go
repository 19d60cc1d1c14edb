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


package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/talentsift/talentsift/ai"
	"github.com/talentsift/talentsift/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ProfileExtractor implements ai.ProfileExtractor using OpenAI-compatible chat APIs.
type ProfileExtractor struct {
	client llms.Model
	logger *slog.Logger
}

// newProfileExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newProfileExtractor(config *ai.Config) (*ProfileExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ExtractorHost),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.ExtractorModel),
	)
	if err != nil {
		return nil, err
	}

	return &ProfileExtractor{
		client: client,
		logger: slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewProfileExtractor creates a new profile extractor using the provided configuration.
//
// Returns ai.ProfileExtractor interface to enforce abstraction.
func NewProfileExtractor(config *ai.Config) (ai.ProfileExtractor, error) {
	return newProfileExtractor(config)
}

// ExtractProfile sends the document text to the model and decodes the response
// strictly against the profile schema. One request per call; malformed output
// is a contract violation, not a retry trigger.
func (e *ProfileExtractor) ExtractProfile(ctx context.Context, text string) (*core.Profile, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildSystemPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(wrapDocument(text)),
			},
		},
	}

	response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			e.logger.Error("extraction request timed out", "err", err)
			return nil, fmt.Errorf("%w: %w", ai.ErrExtractionTimeout, err)
		}
		e.logger.Error("failed to generate content", "err", err)
		return nil, fmt.Errorf("%w: %w", ai.ErrServiceUnavailable, err)
	}

	if len(response.Choices) < 1 {
		e.logger.Error("no choices returned from model")
		return nil, fmt.Errorf("%w: empty response", ai.ErrSchemaValidation)
	}

	profile, err := decodeProfile(response.Choices[0].Content)
	if err != nil {
		e.logger.Error("error decoding extraction response", "err", err)
		return nil, err
	}

	e.logger.Debug("extracted profile",
		"name", profile.Name,
		"position", profile.Position,
		"rating", profile.Rating)
	return profile, nil
}

// decodeProfile parses a raw model response into a validated Profile.
// The response is treated as an untyped text blob first: markdown fences are
// stripped, then a strict typed decode runs, then the range validator reports
// every violated constraint.
func decodeProfile(raw string) (*core.Profile, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	if text == "" {
		return nil, fmt.Errorf("%w: empty response", ai.ErrSchemaValidation)
	}

	var profile core.Profile
	if err := json.Unmarshal([]byte(text), &profile); err != nil {
		return nil, fmt.Errorf("%w: %w", ai.ErrSchemaValidation, err)
	}

	if err := core.ValidateProfile(&profile); err != nil {
		return nil, fmt.Errorf("%w: %w", ai.ErrSchemaValidation, err)
	}

	return &profile, nil
}
