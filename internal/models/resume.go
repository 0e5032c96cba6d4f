package models

import (
	"time"

	"github.com/google/uuid"
)

// ExperienceEntry is one dated role found in a resume.
type ExperienceEntry struct {
	Role  string  `json:"role"`
	Years float64 `json:"years"`
}

// ParsedResume holds the structured facts extracted from one resume
// document. Created once per document; re-parsing produces a new value,
// never an in-place update.
type ParsedResume struct {
	ID            uuid.UUID         `json:"id"`
	DocumentID    uuid.UUID         `json:"document_id"`
	CandidateName string            `json:"candidate_name"`
	Skills        []string          `json:"skills"`
	Experience    []ExperienceEntry `json:"experience"`
	// TotalYears is the summed role durations, capped to avoid
	// double-counting overlapping entries.
	TotalYears float64 `json:"total_years"`
	// ExperienceDetected is false when no duration could be found in the
	// text. Scoring then falls back to a neutral midpoint instead of zero.
	ExperienceDetected bool           `json:"experience_detected"`
	Education          EducationLevel `json:"education"`
	RawText            string         `json:"raw_text,omitempty"`
	ParsedAt           time.Time      `json:"parsed_at"`
}
