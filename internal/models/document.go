package models

import (
	"time"

	"github.com/google/uuid"
)

type DocumentKind string

const (
	DocumentKindJob    DocumentKind = "job"
	DocumentKindResume DocumentKind = "resume"
)

// Document is plain UTF-8 text handed in by the upstream text-extraction
// collaborator. No binary formats cross this boundary.
type Document struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Kind      DocumentKind `json:"kind"`
	Text      string       `json:"text"`
	CreatedAt time.Time    `json:"created_at"`
}
