package services

import (
	"strings"
	"unicode"
)

// TextSimilarity scores how close two free-text documents are, in [0,1].
// The scorer treats it as a stable interface so a keyword-overlap
// implementation and a learned-embedding implementation are
// interchangeable without changing the scoring contract.
type TextSimilarity interface {
	Score(a, b string) float64
}

// similarityStopWords filters common English words that add noise to
// keyword overlap.
var similarityStopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"work": true, "team": true, "role": true, "job": true, "join": true,
	"about": true, "which": true, "what": true, "who": true, "how": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"more": true, "than": true, "into": true, "has": true, "its": true,
	"was": true, "were": true, "been": true, "each": true, "new": true,
	"use": true, "using": true, "used": true, "well": true, "such": true,
}

// KeywordOverlapSimilarity is the default TextSimilarity: Jaccard overlap
// of the two documents' keyword sets.
type KeywordOverlapSimilarity struct{}

func NewKeywordOverlapSimilarity() *KeywordOverlapSimilarity {
	return &KeywordOverlapSimilarity{}
}

func (s *KeywordOverlapSimilarity) Score(a, b string) float64 {
	kwA := tokenizeKeywords(a)
	kwB := tokenizeKeywords(b)
	if len(kwA) == 0 || len(kwB) == 0 {
		return 0
	}

	inter := 0
	for kw := range kwA {
		if kwB[kw] {
			inter++
		}
	}
	union := len(kwA) + len(kwB) - inter
	return float64(inter) / float64(union)
}

// tokenizeKeywords lowercases text into a keyword set (>= 3 chars, stop
// words removed). + # . are kept as word runes so "c++", "c#" and
// "node.js" survive tokenization.
func tokenizeKeywords(text string) map[string]bool {
	kw := make(map[string]bool)
	var word strings.Builder
	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if len([]rune(w)) >= 3 && !similarityStopWords[w] {
			kw[w] = true
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return kw
}
