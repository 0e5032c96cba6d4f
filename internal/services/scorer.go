package services

import (
	"go.uber.org/zap"

	"alfredoptarigan/resume-relevance/internal/config"
	"alfredoptarigan/resume-relevance/internal/models"
)

// SubScores are the three independent 0-100 sub-scores plus the skill set
// decomposition they were derived from.
type SubScores struct {
	Skills     float64
	Experience float64
	Education  float64
	// TextSimilarity is the pluggable free-text similarity scaled to 0-100.
	TextSimilarity float64

	MatchedSkills []string
	MissingSkills []string
}

// ScorerService computes the sub-scores between a parsed resume and a job
// requirement. All formulas are deterministic; identical inputs reproduce
// identical outputs.
type ScorerService interface {
	Score(job *models.JobRequirement, resume *models.ParsedResume) SubScores
}

type scorerService struct {
	normalizer SkillNormalizer
	similarity TextSimilarity
	policy     config.ScoringPolicy
	logger     *zap.Logger
}

func NewScorerService(
	normalizer SkillNormalizer,
	similarity TextSimilarity,
	policy config.ScoringPolicy,
	logger *zap.Logger,
) ScorerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &scorerService{
		normalizer: normalizer,
		similarity: similarity,
		policy:     policy,
		logger:     logger,
	}
}

func (s *scorerService) Score(job *models.JobRequirement, resume *models.ParsedResume) SubScores {
	scores := SubScores{
		Experience: s.experienceScore(job, resume),
		Education:  s.educationScore(job, resume),
	}
	scores.Skills, scores.MatchedSkills, scores.MissingSkills = s.skillsScore(job, resume)
	scores.TextSimilarity = round1(100 * s.similarity.Score(resume.RawText, job.Description+" "+job.Requirements))

	s.logger.Debug("computed sub-scores",
		zap.String("job_id", job.ID.String()),
		zap.String("resume_id", resume.ID.String()),
		zap.Float64("skills", scores.Skills),
		zap.Float64("experience", scores.Experience),
		zap.Float64("education", scores.Education),
	)
	return scores
}

// skillsScore is the matched fraction of the job's required skills. A job
// with no required skills has no constraint to fail and scores 100.
// Matched and missing always partition the required set exactly.
func (s *scorerService) skillsScore(job *models.JobRequirement, resume *models.ParsedResume) (float64, []string, []string) {
	required := s.normalizer.NormalizeSet(job.RequiredSkills)
	if len(required) == 0 {
		return 100, nil, nil
	}

	have := make(map[string]struct{})
	for _, skill := range s.normalizer.NormalizeSet(resume.Skills) {
		have[skill] = struct{}{}
	}

	var matched, missing []string
	for _, skill := range required {
		if _, ok := have[skill]; ok {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	score := 100 * float64(len(matched)) / float64(len(required))
	return score, matched, missing
}

// experienceScore is piecewise: full marks inside the requested range and
// within a tolerance band above it, a linear ramp from zero below the
// minimum, and a gentle floored decay beyond the band. Overqualification
// is a softer mismatch than underqualification.
func (s *scorerService) experienceScore(job *models.JobRequirement, resume *models.ParsedResume) float64 {
	if !resume.ExperienceDetected {
		return s.policy.NeutralExperienceScore
	}

	years := resume.TotalYears
	if years < job.MinExperience {
		// job.MinExperience > 0 here since years >= 0.
		return 100 * years / job.MinExperience
	}
	if job.MaxExperience <= 0 || years <= job.MaxExperience+s.policy.OverToleranceYears {
		return 100
	}

	excess := years - job.MaxExperience - s.policy.OverToleranceYears
	score := 100 - excess*s.policy.OverPenaltyPerYear
	if score < s.policy.OverScoreFloor {
		return s.policy.OverScoreFloor
	}
	return score
}

// educationScore is 100 at or above the required ordinal level, stepping
// down a fixed penalty per level of shortfall, floored so a missing degree
// alone never zeroes a candidate.
func (s *scorerService) educationScore(job *models.JobRequirement, resume *models.ParsedResume) float64 {
	deficit := job.MinEducation.Rank() - resume.Education.Rank()
	if deficit <= 0 {
		return 100
	}
	score := 100 - float64(deficit)*s.policy.EducationStepPenalty
	if score < s.policy.EducationScoreFloor {
		return s.policy.EducationScoreFloor
	}
	return score
}
