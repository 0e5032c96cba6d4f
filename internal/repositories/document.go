package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/resume-relevance/internal/models"
)

type DocumentRepository interface {
	Create(doc *models.Document) error
	FindByID(id uuid.UUID) (*models.Document, error)
}

type documentRepository struct {
	mu   sync.RWMutex
	docs map[uuid.UUID]models.Document
}

func NewDocumentRepository() DocumentRepository {
	return &documentRepository{docs: make(map[uuid.UUID]models.Document)}
}

func (r *documentRepository) Create(doc *models.Document) error {
	if doc.ID == uuid.Nil {
		return fmt.Errorf("document has no ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.docs[doc.ID]; exists {
		return fmt.Errorf("document %s already exists", doc.ID)
	}
	r.docs[doc.ID] = *doc
	return nil
}

func (r *documentRepository) FindByID(id uuid.UUID) (*models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrDocumentNotFound, id)
	}
	doc := stored
	return &doc, nil
}
