package openai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentsift/talentsift/ai"
)

const validResponse = `{
  "name": "jane doe",
  "email": "jane@example.com",
  "phone_number": "+1 555 0100",
  "address": "berlin, germany",
  "position": "backend engineer",
  "scores": {
    "experience": 120, "exp_reason": "seven years",
    "education": 90, "ed_reason": "masters degree",
    "skill": 150, "sk_reason": "strong go",
    "project": 110, "pr_reason": "open source work",
    "presentation": 130, "pre_reason": "well structured"
  },
  "searchable_summary": "jane doe backend engineer go postgresql kubernetes",
  "work_experience": [
    {"job_title": "backend engineer", "company_name": "acme", "start_date": "2019", "responsibilities": ["built services"]}
  ],
  "years_of_experience": 7.2,
  "education": [{"degree": "msc computer science", "institution": "tu berlin", "start_date": "2015", "end_date": "2017"}],
  "skills": ["go", "postgresql"],
  "programming_languages": ["go", "python"],
  "rating": 700
}`

func TestDecodeProfile_Valid(t *testing.T) {
	profile, err := decodeProfile(validResponse)
	require.NoError(t, err)

	assert.Equal(t, "jane doe", profile.Name)
	assert.Equal(t, "backend engineer", profile.Position)
	assert.Equal(t, 120, profile.Scores.Experience)
	assert.Equal(t, 700, profile.Rating)
	assert.InDelta(t, 7.2, profile.YearsOfExperience, 1e-9)
	require.Len(t, profile.WorkExperience, 1)
	assert.Equal(t, "acme", profile.WorkExperience[0].CompanyName)
}

func TestDecodeProfile_StripsMarkdownFences(t *testing.T) {
	fenced := "```json\n" + validResponse + "\n```"

	profile, err := decodeProfile(fenced)
	require.NoError(t, err)
	assert.Equal(t, "jane doe", profile.Name)
}

func TestDecodeProfile_ScoreOutOfRangeRejected(t *testing.T) {
	// experience=300 is outside [1,250]: must be rejected, never clamped
	bad := strings.Replace(validResponse, `"experience": 120`, `"experience": 300`, 1)

	_, err := decodeProfile(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, ai.ErrSchemaValidation)
	assert.Contains(t, err.Error(), "scores.experience")
}

func TestDecodeProfile_MissingMandatoryField(t *testing.T) {
	bad := strings.Replace(validResponse, `"email": "jane@example.com",`, "", 1)

	_, err := decodeProfile(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, ai.ErrSchemaValidation)
}

func TestDecodeProfile_TypeMismatch(t *testing.T) {
	bad := strings.Replace(validResponse, `"rating": 700`, `"rating": "seven hundred"`, 1)

	_, err := decodeProfile(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, ai.ErrSchemaValidation)
}

func TestDecodeProfile_NotJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace", "   \n  "},
		{"prose", "here is the parsed resume: name jane doe"},
		{"truncated object", `{"name": "jane doe", "email":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeProfile(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ai.ErrSchemaValidation)
		})
	}
}

func TestBuildSystemPrompt_ContainsContract(t *testing.T) {
	prompt := buildSystemPrompt()

	assert.Contains(t, prompt, "searchable_summary")
	assert.Contains(t, prompt, "lowercase")
	assert.Contains(t, prompt, "phone_number")
	assert.NotContains(t, prompt, "%s")
}

func TestWrapDocument(t *testing.T) {
	wrapped := wrapDocument("some resume text")

	assert.True(t, strings.HasPrefix(wrapped, "<cv>"))
	assert.True(t, strings.HasSuffix(wrapped, "</cv>"))
	assert.Contains(t, wrapped, "some resume text")
}
