package models

import "strings"

// EducationLevel is an ordinal degree scale supplied by the vocabulary
// configuration. Compare levels with Rank, not string order.
type EducationLevel string

const (
	EducationNone      EducationLevel = "none"
	EducationAssociate EducationLevel = "associate"
	EducationBachelor  EducationLevel = "bachelor"
	EducationMaster    EducationLevel = "master"
	EducationDoctorate EducationLevel = "doctorate"
)

var educationRanks = map[EducationLevel]int{
	EducationNone:      0,
	EducationAssociate: 1,
	EducationBachelor:  2,
	EducationMaster:    3,
	EducationDoctorate: 4,
}

func (l EducationLevel) Rank() int {
	return educationRanks[l]
}

func (l EducationLevel) AtLeast(min EducationLevel) bool {
	return l.Rank() >= min.Rank()
}

// ParseEducationLevel maps a level name to its ordinal constant.
// Unknown names resolve to EducationNone.
func ParseEducationLevel(s string) (EducationLevel, bool) {
	level := EducationLevel(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := educationRanks[level]; ok {
		return level, true
	}
	return EducationNone, false
}

// HighestEducation returns the higher-ranked of two levels.
func HighestEducation(a, b EducationLevel) EducationLevel {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}
