package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-relevance/internal/models"
)

func writeJobFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJobFile(t *testing.T) {
	path := writeJobFile(t, `
title: Backend Engineer
required-skills: [python, docker]
min-experience-years: 2
max-experience-years: 6
min-education: bachelor
`)

	job, err := loadJobFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer", job.Title)
	assert.Equal(t, []string{"python", "docker"}, job.RequiredSkills)
	assert.Equal(t, 2.0, job.MinExperience)
	assert.Equal(t, 6.0, job.MaxExperience)
	assert.Equal(t, models.EducationBachelor, job.MinEducation)
}

func TestLoadJobFileUnknownEducation(t *testing.T) {
	path := writeJobFile(t, `
title: Backend Engineer
min-education: kindergarten
`)

	_, err := loadJobFile(path)
	require.Error(t, err, "a typo'd education level must not silently erase the requirement")
	assert.Contains(t, err.Error(), "kindergarten")
}

func TestLoadJobFileOmittedEducation(t *testing.T) {
	path := writeJobFile(t, "title: Backend Engineer\n")

	job, err := loadJobFile(path)
	require.NoError(t, err)
	assert.Equal(t, models.EducationNone, job.MinEducation)
}

func TestLoadJobFileInvalidBounds(t *testing.T) {
	path := writeJobFile(t, `
title: Backend Engineer
min-experience-years: 6
max-experience-years: 3
`)

	_, err := loadJobFile(path)
	assert.ErrorIs(t, err, models.ErrInvalidJobRequirement)
}
