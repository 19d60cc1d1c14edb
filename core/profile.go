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

// Profile is the structured résumé record produced by the language model.
// The JSON tags define the extraction contract: the model is instructed to
// emit exactly this shape, all textual values lowercase, optional fields
// omitted when not explicitly present in the source document.
type Profile struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	LinkedinURL string `json:"linkedin_url,omitempty"`
	GitURL      string `json:"git_url,omitempty"`
	Website     string `json:"website,omitempty"`
	Position    string `json:"position"`

	Scores Scores `json:"scores"`

	// SearchableSummary is a free-text blob of the person's skills and
	// highlights. It is the primary source of vector chunks.
	SearchableSummary string `json:"searchable_summary"`

	WorkExperience    []WorkExperience `json:"work_experience"`
	YearsOfExperience float64          `json:"years_of_experience"`
	Education         []Education      `json:"education"`
	Certifications    []Certification  `json:"certifications,omitempty"`

	Skills               []string `json:"skills"`
	ProgrammingLanguages []string `json:"programming_languages"`

	TechnicalProjects []TechnicalProject `json:"technical_projects,omitempty"`
	ResearchPapers    []string           `json:"research_papers,omitempty"`
	Languages         []string           `json:"languages,omitempty"`
	Hobbies           []string           `json:"hobbies,omitempty"`
	References        []string           `json:"references,omitempty"`

	// Rating is the aggregate score of the résumé, 1-1000.
	Rating int `json:"rating"`
}

// WorkExperience is a single position held by the person.
type WorkExperience struct {
	JobTitle         string   `json:"job_title"`
	CompanyName      string   `json:"company_name"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date,omitempty"` // "present" while still employed
	Responsibilities []string `json:"responsibilities"`
}

// Education is a single degree or qualification.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
	Grade       string `json:"grade,omitempty"`
}

// Certification is a professional certification held by the person.
type Certification struct {
	CertificationName   string `json:"certification_name"`
	IssuingOrganization string `json:"issuing_organization"`
	IssueDate           string `json:"issue_date"`
}

// TechnicalProject is a technical or open-source project.
type TechnicalProject struct {
	ProjectName          string   `json:"project_name"`
	Description          string   `json:"description"`
	ProgrammingLanguages []string `json:"programming_languages,omitempty"`
	ProjectLink          string   `json:"project_link,omitempty"`
}

// Scores holds the bounded per-criterion sub-scores with their textual
// justifications. Values outside the declared ranges are a validation
// failure, never clamped.
type Scores struct {
	Experience       int    `json:"experience"` // [1,250]
	ExperienceReason string `json:"exp_reason"`

	Education       int    `json:"education"` // [1,150]
	EducationReason string `json:"ed_reason"`

	Skill       int    `json:"skill"` // [1,200]
	SkillReason string `json:"sk_reason"`

	Project       int    `json:"project"` // [1,200]
	ProjectReason string `json:"pr_reason"`

	Presentation       int    `json:"presentation"` // [1,200]
	PresentationReason string `json:"pre_reason"`
}

// Score bounds for Scores fields and the aggregate rating.
const (
	MinScore        = 1
	MaxExperience   = 250
	MaxEducation    = 150
	MaxSkill        = 200
	MaxProject      = 200
	MaxPresentation = 200
	MaxRating       = 1000
)
