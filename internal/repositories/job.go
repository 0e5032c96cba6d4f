package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/resume-relevance/internal/models"
)

type JobRepository interface {
	Create(job *models.JobRequirement) error
	FindByID(id uuid.UUID) (*models.JobRequirement, error)
}

// jobRepository is an in-memory store. Jobs are copied on read so a stored
// requirement stays immutable once an evaluation references it.
type jobRepository struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]models.JobRequirement
}

func NewJobRepository() JobRepository {
	return &jobRepository{jobs: make(map[uuid.UUID]models.JobRequirement)}
}

func (r *jobRepository) Create(job *models.JobRequirement) error {
	if job.ID == uuid.Nil {
		return fmt.Errorf("job requirement has no ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.jobs[job.ID]; exists {
		return fmt.Errorf("job requirement %s already exists", job.ID)
	}
	stored := *job
	stored.RequiredSkills = append([]string(nil), job.RequiredSkills...)
	r.jobs[job.ID] = stored
	return nil
}

func (r *jobRepository) FindByID(id uuid.UUID) (*models.JobRequirement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.jobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrJobNotFound, id)
	}
	job := stored
	job.RequiredSkills = append([]string(nil), stored.RequiredSkills...)
	return &job, nil
}
