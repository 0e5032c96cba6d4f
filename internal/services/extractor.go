package services

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-relevance/internal/config"
	"alfredoptarigan/resume-relevance/internal/models"
)

// ExtractorService turns raw resume or job-posting text into structured
// facts. Extraction never fails: malformed or empty text yields an
// empty/default feature set that scores as a neutral contribution.
type ExtractorService interface {
	ExtractResume(doc *models.Document) *models.ParsedResume
	ExtractJob(text string) JobFacts
}

// JobFacts are the features recoverable from a free-text job posting,
// used when a requisition arrives as prose instead of structured fields.
type JobFacts struct {
	RequiredSkills []string
	MinYears       float64
	MaxYears       float64
	YearsDetected  bool
	MinEducation   models.EducationLevel
}

type vocabPhrase struct {
	surface   []rune
	canonical string
}

type extractorService struct {
	phrases        []vocabPhrase // longest surface form first
	educationTerms map[string]models.EducationLevel
	logger         *zap.Logger
}

func NewExtractorService(vocab *config.Vocabulary, logger *zap.Logger) ExtractorService {
	if logger == nil {
		logger = zap.NewNop()
	}

	e := &extractorService{
		educationTerms: make(map[string]models.EducationLevel),
		logger:         logger,
	}

	for canonical, aliases := range vocab.Skills {
		canonical = cleanSkill(canonical)
		if canonical == "" {
			continue
		}
		e.addPhrase(canonical, canonical)
		for _, alias := range aliases {
			if alias = cleanSkill(alias); alias != "" {
				e.addPhrase(alias, canonical)
			}
		}
	}
	// Multi-word skills must match as a unit and take precedence over
	// their constituent single words. Length ties break on the surface
	// string: vocabulary maps iterate in random order and overlapping
	// equal-length phrases must still scan in a fixed order.
	sort.SliceStable(e.phrases, func(i, j int) bool {
		a, b := e.phrases[i].surface, e.phrases[j].surface
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return string(a) < string(b)
	})

	for name, keywords := range vocab.Education {
		level, ok := models.ParseEducationLevel(name)
		if !ok {
			logger.Warn("skipping unknown education level in vocabulary", zap.String("level", name))
			continue
		}
		for _, kw := range keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				e.educationTerms[kw] = level
			}
		}
	}

	return e
}

func (e *extractorService) addPhrase(surface, canonical string) {
	e.phrases = append(e.phrases, vocabPhrase{surface: []rune(surface), canonical: canonical})
}

func (e *extractorService) ExtractResume(doc *models.Document) *models.ParsedResume {
	text := doc.Text
	entries, total, detected := e.extractExperience(text)

	resume := &models.ParsedResume{
		ID:                 uuid.New(),
		DocumentID:         doc.ID,
		CandidateName:      e.extractCandidateName(text, doc.Name),
		Skills:             e.extractSkills(text),
		Experience:         entries,
		TotalYears:         total,
		ExperienceDetected: detected,
		Education:          e.extractEducation(text),
		RawText:            text,
		ParsedAt:           time.Now(),
	}

	e.logger.Debug("extracted resume features",
		zap.String("document_id", doc.ID.String()),
		zap.String("candidate", resume.CandidateName),
		zap.Int("skills", len(resume.Skills)),
		zap.Float64("years", resume.TotalYears),
		zap.Bool("experience_detected", resume.ExperienceDetected),
		zap.String("education", string(resume.Education)),
	)

	return resume
}

func (e *extractorService) ExtractJob(text string) JobFacts {
	facts := JobFacts{
		RequiredSkills: e.extractRequiredSkills(text),
		MinEducation:   e.extractEducation(text),
	}
	facts.MinYears, facts.MaxYears, facts.YearsDetected = e.extractExperienceRange(text)
	return facts
}

// --- skills ---

var (
	skillSectionPattern = regexp.MustCompile(
		`(?im)^.*?\b(?:technical skills|skills|technologies|tech stack|proficient in)\s*[:\-]\s*(.+)$`)
	requiredSectionPattern = regexp.MustCompile(
		`(?i)(?:required skills|requirements|must have|essential)\s*[:\-]\s*([^.\n]+)`)
	skillDelimiterPattern = regexp.MustCompile(`[,;|•·/]`)
)

func (e *extractorService) extractSkills(text string) []string {
	skills := e.scanVocabulary(text)
	skills = append(skills, sectionSkills(text, skillSectionPattern)...)
	return dedupeSkills(skills)
}

// extractRequiredSkills pulls the required skill set out of a job posting:
// explicit requirement sections first, vocabulary scan as fallback when the
// posting lists nothing explicitly.
func (e *extractorService) extractRequiredSkills(text string) []string {
	skills := sectionSkills(text, requiredSectionPattern)
	if len(skills) == 0 {
		skills = e.scanVocabulary(text)
	} else {
		// Keep vocabulary hits inside the requirement sections as well, so
		// "3+ years with Python and React" style prose is not lost.
		for _, m := range requiredSectionPattern.FindAllStringSubmatch(text, -1) {
			skills = append(skills, e.scanVocabulary(m[1])...)
		}
	}
	return dedupeSkills(skills)
}

// scanVocabulary finds vocabulary phrases in text using case-insensitive,
// word-boundary-aware matching. Matched spans are blanked so a multi-word
// hit shadows its constituent words; phrases are pre-sorted longest first.
func (e *extractorService) scanVocabulary(text string) []string {
	buf := []rune(strings.ToLower(text))
	var found []string

	for _, phrase := range e.phrases {
		plen := len(phrase.surface)
		for i := 0; i+plen <= len(buf); i++ {
			if !runesEqual(buf[i:i+plen], phrase.surface) {
				continue
			}
			if i > 0 && isSkillRune(buf[i-1]) {
				continue
			}
			if !cleanBoundaryAfter(buf, i+plen) {
				continue
			}
			found = append(found, phrase.canonical)
			for j := i; j < i+plen; j++ {
				buf[j] = ' '
			}
			i += plen - 1
		}
	}
	return found
}

func sectionSkills(text string, pattern *regexp.Regexp) []string {
	var skills []string
	for _, m := range pattern.FindAllStringSubmatch(text, -1) {
		for _, raw := range skillDelimiterPattern.Split(m[1], -1) {
			skill := strings.TrimSpace(raw)
			// Prose fragments are not skills; keep entries short.
			if skill == "" || len(skill) > 30 || strings.Count(skill, " ") > 3 {
				continue
			}
			skills = append(skills, skill)
		}
	}
	return skills
}

func dedupeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = cleanSkill(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func runesEqual(a, b []rune) bool {
	for i := range b {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// isSkillRune treats +, # and . as word runes so "c++", "c#" and "node.js"
// survive boundary checks intact.
func isSkillRune(r rune) bool {
	return r == '+' || r == '#' || r == '.' ||
		(r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') ||
		(r >= 'A' && r <= 'Z')
}

// cleanBoundaryAfter allows a trailing sentence dot ("...knows react.") but
// rejects a dot that glues onto another word ("react.js" when matching
// "react").
func cleanBoundaryAfter(buf []rune, end int) bool {
	if end >= len(buf) {
		return true
	}
	r := buf[end]
	if r == '.' {
		return end+1 >= len(buf) || !isSkillRune(buf[end+1])
	}
	return !isSkillRune(r)
}

// --- experience ---

const maxExperienceYears = 50 // cap against overlap double-counting

var (
	explicitYearsPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*\+?\s*years?\s+(?:of\s+)?(?:professional\s+|work\s+|industry\s+)?experience`),
		regexp.MustCompile(`(?i)experience\s*[:\-]?\s*(\d+(?:\.\d+)?)\s*\+?\s*years?`),
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*\+?\s*years?\s+in\s+(?:the\s+)?\w`),
	}
	dateRangePattern = regexp.MustCompile(`(?i)\b((?:19|20)\d{2})\s*(?:[-–—]|to)\s*((?:19|20)\d{2}|present|current|now)\b`)
	yearsRangePattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:[-–—]|to)\s*(\d+(?:\.\d+)?)\s*\+?\s*years?`)
	minYearsPattern   = regexp.MustCompile(`(?i)(?:at least|minimum(?: of)?)?\s*(\d+(?:\.\d+)?)\s*\+?\s*years?`)
)

func (e *extractorService) extractExperience(text string) ([]models.ExperienceEntry, float64, bool) {
	entries := e.extractDateRanges(text)

	for _, p := range explicitYearsPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			years, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			return entries, capYears(round1(years)), true
		}
	}

	if len(entries) > 0 {
		var total float64
		for _, entry := range entries {
			total += entry.Years
		}
		return entries, capYears(round1(total)), true
	}

	return nil, 0, false
}

func (e *extractorService) extractDateRanges(text string) []models.ExperienceEntry {
	var entries []models.ExperienceEntry
	for _, line := range strings.Split(text, "\n") {
		m := dateRangePattern.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		start, err := strconv.Atoi(line[m[2]:m[3]])
		if err != nil {
			continue
		}
		endStr := strings.ToLower(line[m[4]:m[5]])
		end := time.Now().Year()
		if endStr != "present" && endStr != "current" && endStr != "now" {
			if end, err = strconv.Atoi(endStr); err != nil {
				continue
			}
		}
		if end < start {
			continue
		}
		role := strings.Trim(strings.TrimSpace(line[:m[0]]), "-–—•*,:(")
		entries = append(entries, models.ExperienceEntry{
			Role:  role,
			Years: round1(float64(end - start)),
		})
	}
	return entries
}

func (e *extractorService) extractExperienceRange(text string) (min, max float64, detected bool) {
	if m := yearsRangePattern.FindStringSubmatch(text); m != nil {
		lo, err1 := strconv.ParseFloat(m[1], 64)
		hi, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil && hi >= lo {
			return lo, hi, true
		}
	}
	if m := minYearsPattern.FindStringSubmatch(text); m != nil {
		if lo, err := strconv.ParseFloat(m[1], 64); err == nil {
			return lo, 0, true
		}
	}
	return 0, 0, false
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

func capYears(f float64) float64 {
	if f > maxExperienceYears {
		return maxExperienceYears
	}
	return f
}

// --- education ---

func (e *extractorService) extractEducation(text string) models.EducationLevel {
	lower := strings.ToLower(text)
	highest := models.EducationNone
	for term, level := range e.educationTerms {
		if containsTerm(lower, term) {
			highest = models.HighestEducation(highest, level)
		}
	}
	return highest
}

// containsTerm is a word-boundary substring check; "master" must not match
// inside "mastermind".
func containsTerm(text, term string) bool {
	for from := 0; ; {
		i := strings.Index(text[from:], term)
		if i < 0 {
			return false
		}
		i += from
		end := i + len(term)
		beforeOK := i == 0 || !isSkillRune(rune(text[i-1]))
		afterOK := end >= len(text) || !isSkillRune(rune(text[end])) || text[end] == '.'
		if beforeOK && afterOK {
			return true
		}
		from = end
	}
}

// --- candidate name ---

var namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z.'\- ]*$`)

// extractCandidateName applies a simple heuristic: the first short,
// letters-only line near the top that is not a document header. Falls back
// to the document name supplied by the upload collaborator.
func (e *extractorService) extractCandidateName(text, fallback string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || len(strings.Fields(line)) > 4 {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "resume") || strings.Contains(lower, "curriculum") ||
			strings.Contains(lower, "cv") {
			continue
		}
		if namePattern.MatchString(line) {
			return line
		}
	}
	return fallback
}
