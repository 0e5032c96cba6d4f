package services

import (
	"sort"
	"strings"

	"alfredoptarigan/resume-relevance/internal/config"
)

// SkillNormalizer canonicalizes skill surface forms so "ReactJS" and
// "React" compare equal. Normalization is pure and total: the same input
// always yields the same canonical output, and unknown skills pass through
// lower-cased and trimmed as their own canonical form.
type SkillNormalizer interface {
	Normalize(skill string) string
	NormalizeSet(skills []string) []string
}

type skillNormalizer struct {
	aliases map[string]string
}

func NewSkillNormalizer(vocab *config.Vocabulary) SkillNormalizer {
	n := &skillNormalizer{
		aliases: make(map[string]string),
	}
	for canonical, aliases := range vocab.Skills {
		canonical = cleanSkill(canonical)
		if canonical == "" {
			continue
		}
		for _, alias := range aliases {
			if alias = cleanSkill(alias); alias != "" {
				n.aliases[alias] = canonical
			}
		}
	}
	return n
}

func (n *skillNormalizer) Normalize(skill string) string {
	s := cleanSkill(skill)
	if canonical, ok := n.aliases[s]; ok {
		return canonical
	}
	return s
}

// NormalizeSet canonicalizes and deduplicates a skill list. The result is
// sorted so set comparisons are order-independent.
func (n *skillNormalizer) NormalizeSet(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		canonical := n.Normalize(skill)
		if canonical == "" {
			continue
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		out = append(out, canonical)
	}
	sort.Strings(out)
	return out
}

func cleanSkill(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}
