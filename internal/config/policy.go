package config

import (
	"fmt"
	"math"

	"github.com/spf13/viper"
)

// ScoringPolicy holds the operator-tunable scoring constants: aggregate
// weights, verdict thresholds and the shape of the experience/education
// penalty curves. Defaults reproduce the documented product behavior.
type ScoringPolicy struct {
	SkillsWeight     float64 `mapstructure:"skills-weight"`
	ExperienceWeight float64 `mapstructure:"experience-weight"`
	EducationWeight  float64 `mapstructure:"education-weight"`

	HighThreshold   float64 `mapstructure:"high-threshold"`
	MediumThreshold float64 `mapstructure:"medium-threshold"`

	// Years above the job maximum tolerated before over-experience starts
	// to cost points.
	OverToleranceYears float64 `mapstructure:"over-tolerance-years"`
	OverPenaltyPerYear float64 `mapstructure:"over-penalty-per-year"`
	OverScoreFloor     float64 `mapstructure:"over-score-floor"`

	EducationStepPenalty float64 `mapstructure:"education-step-penalty"`
	EducationScoreFloor  float64 `mapstructure:"education-score-floor"`

	// Score used when a resume yields no detectable experience duration.
	// Undetected is not the same as unqualified.
	NeutralExperienceScore float64 `mapstructure:"neutral-experience-score"`
}

func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		SkillsWeight:     0.5,
		ExperienceWeight: 0.3,
		EducationWeight:  0.2,

		HighThreshold:   75,
		MediumThreshold: 50,

		OverToleranceYears: 2,
		OverPenaltyPerYear: 5,
		OverScoreFloor:     70,

		EducationStepPenalty: 30,
		EducationScoreFloor:  20,

		NeutralExperienceScore: 50,
	}
}

// LoadScoringPolicy reads a YAML policy file. Keys absent from the file
// keep their default values.
func LoadScoringPolicy(path string) (ScoringPolicy, error) {
	policy := DefaultScoringPolicy()
	if path == "" {
		return policy, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return policy, fmt.Errorf("reading scoring policy %s: %w", path, err)
	}
	if err := v.Unmarshal(&policy); err != nil {
		return policy, fmt.Errorf("parsing scoring policy %s: %w", path, err)
	}
	if err := policy.Validate(); err != nil {
		return policy, err
	}
	return policy, nil
}

func (p ScoringPolicy) Validate() error {
	sum := p.SkillsWeight + p.ExperienceWeight + p.EducationWeight
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("scoring weights must sum to 1.0, got %.3f", sum)
	}
	if p.HighThreshold <= p.MediumThreshold {
		return fmt.Errorf("high threshold %.1f must exceed medium threshold %.1f",
			p.HighThreshold, p.MediumThreshold)
	}
	if p.NeutralExperienceScore < 0 || p.NeutralExperienceScore > 100 {
		return fmt.Errorf("neutral experience score %.1f out of [0,100]", p.NeutralExperienceScore)
	}
	return nil
}
