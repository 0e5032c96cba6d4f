package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-relevance/internal/config"
	"alfredoptarigan/resume-relevance/internal/models"
)

// VerdictService aggregates sub-scores into the overall relevance score
// and categorical verdict, and derives the gap analysis and narrative
// recommendation. Weights and thresholds come from the scoring policy.
type VerdictService interface {
	Classify(job *models.JobRequirement, resume *models.ParsedResume, scores SubScores) *models.EvaluationResult
}

type verdictService struct {
	policy config.ScoringPolicy
}

func NewVerdictService(policy config.ScoringPolicy) VerdictService {
	return &verdictService{policy: policy}
}

func (v *verdictService) Classify(job *models.JobRequirement, resume *models.ParsedResume, scores SubScores) *models.EvaluationResult {
	overall := roundHalfUp(
		v.policy.SkillsWeight*scores.Skills +
			v.policy.ExperienceWeight*scores.Experience +
			v.policy.EducationWeight*scores.Education,
	)

	verdict := models.VerdictLow
	switch {
	case overall >= v.policy.HighThreshold:
		verdict = models.VerdictHigh
	case overall >= v.policy.MediumThreshold:
		verdict = models.VerdictMedium
	}

	result := &models.EvaluationResult{
		ID:              uuid.New(),
		JobID:           job.ID,
		ResumeID:        resume.ID,
		CandidateName:   resume.CandidateName,
		SkillsScore:     scores.Skills,
		ExperienceScore: scores.Experience,
		EducationScore:  scores.Education,
		TextSimilarity:  scores.TextSimilarity,
		OverallScore:    overall,
		Verdict:         verdict,
		MatchedSkills:   scores.MatchedSkills,
		MissingSkills:   scores.MissingSkills,
		Strengths:       v.strengths(scores),
		Weaknesses:      v.weaknesses(scores),
		CreatedAt:       time.Now(),
	}
	result.Recommendation = v.recommendation(job, result)
	return result
}

// roundHalfUp rounds .5 upward, so 74.5 becomes 75.
func roundHalfUp(f float64) float64 {
	return math.Floor(f + 0.5)
}

func (v *verdictService) strengths(scores SubScores) []string {
	var out []string
	if scores.Skills >= 80 {
		out = append(out, "excellent technical skill alignment with the job requirements")
	} else if scores.Skills >= 60 {
		out = append(out, "good technical skill match")
	}
	if scores.Experience >= 90 {
		out = append(out, "experience level fits the role")
	}
	if scores.Education >= 100 {
		out = append(out, "meets the educational requirement")
	}
	if len(scores.MatchedSkills) > 5 {
		out = append(out, "diverse technical skill set")
	}
	return out
}

func (v *verdictService) weaknesses(scores SubScores) []string {
	var out []string
	if scores.Skills < 50 {
		out = append(out, "significant gaps in required technical skills")
	} else if scores.Skills < 70 {
		out = append(out, "some required technical skills are missing")
	}
	if scores.Experience < 50 {
		out = append(out, "experience level does not align with the job requirements")
	}
	if scores.Education < 100 {
		out = append(out, "education is below the requested level")
	}
	if len(scores.MissingSkills) > 0 {
		top := scores.MissingSkills
		if len(top) > 3 {
			top = top[:3]
		}
		out = append(out, fmt.Sprintf("missing key skills: %s", strings.Join(top, ", ")))
	}
	return out
}

// recommendation is generated from a fixed decision table keyed by verdict
// and by the lowest sub-score. Ties resolve in skills, experience,
// education order so the output is deterministic.
func (v *verdictService) recommendation(job *models.JobRequirement, r *models.EvaluationResult) string {
	lowest := lowestSubScore(r)
	missing := strings.Join(r.MissingSkills, ", ")

	switch r.Verdict {
	case models.VerdictHigh:
		if len(r.MissingSkills) > 0 {
			return fmt.Sprintf("Strong match for %s. Rounding out the remaining skills would complete the profile: %s.", job.Title, missing)
		}
		return fmt.Sprintf("Strong match for %s; the profile covers every stated requirement.", job.Title)

	case models.VerdictMedium:
		switch lowest {
		case subScoreSkills:
			return fmt.Sprintf("Moderate fit; closing the skill gap would materially improve the match. Focus on: %s.", missing)
		case subScoreExperience:
			return "Moderate fit; the main gap is experience. Highlighting relevant hands-on work would strengthen the application."
		default:
			return "Moderate fit; the stated education requirement is the main shortfall. Relevant certifications may compensate."
		}

	default:
		switch lowest {
		case subScoreSkills:
			if missing != "" {
				return fmt.Sprintf("Significant skill gap; consider training in: %s.", missing)
			}
			return "Significant skill gap against the stated requirements."
		case subScoreExperience:
			return "Experience falls well short of the requirement; more relevant hands-on work is needed before this role is a realistic target."
		default:
			return "The education requirement is not met; consider a qualifying program or roles with a lower formal bar."
		}
	}
}

type subScoreKind int

const (
	subScoreSkills subScoreKind = iota
	subScoreExperience
	subScoreEducation
)

func lowestSubScore(r *models.EvaluationResult) subScoreKind {
	lowest := subScoreSkills
	min := r.SkillsScore
	if r.ExperienceScore < min {
		lowest, min = subScoreExperience, r.ExperienceScore
	}
	if r.EducationScore < min {
		lowest = subScoreEducation
	}
	return lowest
}
