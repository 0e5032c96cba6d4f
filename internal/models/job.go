package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// JobRequirement describes one requisition a batch of resumes is scored
// against. It is immutable once an evaluation references it.
type JobRequirement struct {
	ID             uuid.UUID      `json:"id"`
	Title          string         `json:"title"`
	RequiredSkills []string       `json:"required_skills"`
	MinExperience  float64        `json:"min_experience_years"`
	MaxExperience  float64        `json:"max_experience_years"` // 0 means unbounded
	MinEducation   EducationLevel `json:"min_education"`
	Description    string         `json:"description"`
	Requirements   string         `json:"requirements"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Validate checks whole-batch preconditions before any item is dispatched.
func (j *JobRequirement) Validate() error {
	if j.MinExperience < 0 {
		return fmt.Errorf("%w: negative minimum experience %.1f", ErrInvalidJobRequirement, j.MinExperience)
	}
	if j.MaxExperience > 0 && j.MaxExperience < j.MinExperience {
		return fmt.Errorf("%w: minimum experience %.1f exceeds maximum %.1f",
			ErrInvalidJobRequirement, j.MinExperience, j.MaxExperience)
	}
	if _, ok := ParseEducationLevel(string(j.MinEducation)); !ok && j.MinEducation != "" {
		return fmt.Errorf("%w: unknown education level %q", ErrInvalidJobRequirement, j.MinEducation)
	}
	return nil
}
