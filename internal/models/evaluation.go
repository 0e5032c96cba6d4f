package models

import (
	"time"

	"github.com/google/uuid"
)

// Verdict is the categorical fit label derived from the overall score.
type Verdict string

const (
	VerdictHigh   Verdict = "High"
	VerdictMedium Verdict = "Medium"
	VerdictLow    Verdict = "Low"
)

// EvaluationResult is the scored outcome of one (job, resume) pair.
// It is immutable once created; re-evaluation produces a new result so
// the audit history is preserved.
type EvaluationResult struct {
	ID            uuid.UUID `json:"id"`
	JobID         uuid.UUID `json:"job_id"`
	ResumeID      uuid.UUID `json:"resume_id"`
	CandidateName string    `json:"candidate_name"`

	SkillsScore     float64 `json:"skills_score"`
	ExperienceScore float64 `json:"experience_score"`
	EducationScore  float64 `json:"education_score"`
	// TextSimilarity is the pluggable free-text similarity, 0-100.
	// Informational only; it does not feed the weighted aggregate.
	TextSimilarity float64 `json:"text_similarity"`
	OverallScore   float64 `json:"overall_score"`
	Verdict        Verdict `json:"verdict"`

	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`

	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	Recommendation string   `json:"recommendation"`

	CreatedAt time.Time `json:"created_at"`
}
