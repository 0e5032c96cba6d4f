package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-relevance/internal/config"
	"alfredoptarigan/resume-relevance/internal/models"
)

func classify(t *testing.T, scores SubScores) *models.EvaluationResult {
	t.Helper()
	v := NewVerdictService(config.DefaultScoringPolicy())
	job := testJob([]string{"python"}, 0, 0, models.EducationNone)
	resume := testResume([]string{"python"}, 5, models.EducationBachelor)
	return v.Classify(job, resume, scores)
}

func TestClassifyOverallAndVerdict(t *testing.T) {
	tests := []struct {
		name            string
		scores          SubScores
		expectedOverall float64
		expectedVerdict models.Verdict
	}{
		{
			name:            "perfect candidate",
			scores:          SubScores{Skills: 100, Experience: 100, Education: 100},
			expectedOverall: 100,
			expectedVerdict: models.VerdictHigh,
		},
		{
			name: "quarter skills with full experience and education",
			scores: SubScores{
				Skills: 25, Experience: 100, Education: 100,
				MissingSkills: []string{"aws", "docker", "react"},
			},
			expectedOverall: 63,
			expectedVerdict: models.VerdictMedium,
		},
		{
			name:            "exactly at the high threshold",
			scores:          SubScores{Skills: 75, Experience: 75, Education: 75},
			expectedOverall: 75,
			expectedVerdict: models.VerdictHigh,
		},
		{
			name:            "exactly at the medium threshold",
			scores:          SubScores{Skills: 50, Experience: 50, Education: 50},
			expectedOverall: 50,
			expectedVerdict: models.VerdictMedium,
		},
		{
			name:            "just below medium",
			scores:          SubScores{Skills: 49, Experience: 49, Education: 49},
			expectedOverall: 49,
			expectedVerdict: models.VerdictLow,
		},
		{
			name:            "half rounds up across the high threshold",
			scores:          SubScores{Skills: 49, Experience: 100, Education: 100},
			expectedOverall: 75,
			expectedVerdict: models.VerdictHigh,
		},
		{
			name:            "all zero",
			scores:          SubScores{},
			expectedOverall: 0,
			expectedVerdict: models.VerdictLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classify(t, tt.scores)
			assert.Equal(t, tt.expectedOverall, result.OverallScore)
			assert.Equal(t, tt.expectedVerdict, result.Verdict)
		})
	}
}

func TestClassifyCarriesSubScores(t *testing.T) {
	scores := SubScores{
		Skills: 60, Experience: 80, Education: 100,
		MatchedSkills: []string{"docker", "python"},
		MissingSkills: []string{"aws"},
	}
	result := classify(t, scores)

	assert.Equal(t, 60.0, result.SkillsScore)
	assert.Equal(t, 80.0, result.ExperienceScore)
	assert.Equal(t, 100.0, result.EducationScore)
	assert.Equal(t, scores.MatchedSkills, result.MatchedSkills)
	assert.Equal(t, scores.MissingSkills, result.MissingSkills)
}

func TestClassifyRecommendation(t *testing.T) {
	tests := []struct {
		name     string
		scores   SubScores
		contains string
	}{
		{
			name:     "high verdict, complete profile",
			scores:   SubScores{Skills: 100, Experience: 100, Education: 100},
			contains: "Strong match",
		},
		{
			name: "high verdict with residual gaps names them",
			scores: SubScores{
				Skills: 80, Experience: 100, Education: 100,
				MissingSkills: []string{"terraform"},
			},
			contains: "terraform",
		},
		{
			name: "medium with skills as the weakest axis",
			scores: SubScores{
				Skills: 40, Experience: 90, Education: 100,
				MissingSkills: []string{"aws", "docker"},
			},
			contains: "skill gap",
		},
		{
			name:     "medium with experience as the weakest axis",
			scores:   SubScores{Skills: 80, Experience: 30, Education: 100},
			contains: "experience",
		},
		{
			name:     "low with education as the weakest axis",
			scores:   SubScores{Skills: 40, Experience: 40, Education: 20},
			contains: "education",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classify(t, tt.scores)
			require.NotEmpty(t, result.Recommendation)
			assert.Contains(t, result.Recommendation, tt.contains)
		})
	}
}

func TestClassifyLowestSubScoreTieOrder(t *testing.T) {
	// All three tied: skills wins the tie, then experience, then education.
	result := classify(t, SubScores{Skills: 30, Experience: 30, Education: 30,
		MissingSkills: []string{"rust"}})
	assert.Contains(t, result.Recommendation, "skill gap")

	result = classify(t, SubScores{Skills: 60, Experience: 30, Education: 30})
	assert.Contains(t, result.Recommendation, "hands-on")
}

func TestClassifyStrengthsAndWeaknesses(t *testing.T) {
	strong := classify(t, SubScores{Skills: 95, Experience: 100, Education: 100,
		MatchedSkills: []string{"aws", "docker", "go", "python", "react", "redis"}})
	assert.NotEmpty(t, strong.Strengths)
	assert.Empty(t, strong.Weaknesses)

	weak := classify(t, SubScores{Skills: 20, Experience: 30, Education: 40,
		MissingSkills: []string{"aws", "docker", "go", "python"}})
	assert.NotEmpty(t, weak.Weaknesses)
}

func TestClassifyDeterministic(t *testing.T) {
	scores := SubScores{Skills: 55, Experience: 70, Education: 100,
		MatchedSkills: []string{"python"}, MissingSkills: []string{"aws"}}

	first := classify(t, scores)
	for i := 0; i < 5; i++ {
		next := classify(t, scores)
		assert.Equal(t, first.OverallScore, next.OverallScore)
		assert.Equal(t, first.Verdict, next.Verdict)
		assert.Equal(t, first.Recommendation, next.Recommendation)
	}
}
