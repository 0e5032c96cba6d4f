package services

import (
	"reflect"
	"testing"

	"alfredoptarigan/resume-relevance/internal/config"
)

func TestNormalize(t *testing.T) {
	n := NewSkillNormalizer(config.DefaultVocabulary())

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "alias maps to canonical", input: "ReactJS", expected: "react"},
		{name: "dotted alias", input: "react.js", expected: "react"},
		{name: "shorthand", input: "k8s", expected: "kubernetes"},
		{name: "golang", input: "Golang", expected: "go"},
		{name: "canonical passes through", input: "python", expected: "python"},
		{name: "case folded", input: "PYTHON", expected: "python"},
		{name: "whitespace collapsed", input: "  machine   learning ", expected: "machine learning"},
		{name: "unknown skill is its own canonical", input: "Fortran", expected: "fortran"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.input); got != tt.expected {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeSet(t *testing.T) {
	n := NewSkillNormalizer(config.DefaultVocabulary())

	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "dedupes aliases of the same skill",
			input:    []string{"JS", "javascript", "ecmascript"},
			expected: []string{"javascript"},
		},
		{
			name:     "sorted output regardless of input order",
			input:    []string{"Docker", "aws", "Python"},
			expected: []string{"aws", "docker", "python"},
		},
		{
			name:     "blank entries dropped",
			input:    []string{"", "  ", "go"},
			expected: []string{"go"},
		},
		{
			name:     "nil input",
			input:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.NormalizeSet(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Fatalf("NormalizeSet(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeSetOrderIndependence(t *testing.T) {
	n := NewSkillNormalizer(config.DefaultVocabulary())

	a := n.NormalizeSet([]string{"react", "python", "aws"})
	b := n.NormalizeSet([]string{"aws", "ReactJS", "Python"})
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("normalization is order dependent: %v vs %v", a, b)
	}
}
