package repositories

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-relevance/internal/models"
)

type BatchRepository interface {
	Create(batch *models.Batch) error
	FindByID(id uuid.UUID) (*models.Batch, error)
	UpdateStatus(id uuid.UUID, status models.BatchStatus) error
	UpdateError(id uuid.UUID, errorMsg string) error
	RecordOutcome(id uuid.UUID, item models.BatchItem) error
	Snapshot(id uuid.UUID) (*models.BatchProgress, error)
}

var validTransitions = map[models.BatchStatus][]models.BatchStatus{
	models.BatchPending:    {models.BatchProcessing, models.BatchFailed},
	models.BatchProcessing: {models.BatchCompleted, models.BatchFailed, models.BatchCancelled},
}

type batchRecord struct {
	batch      models.Batch
	scoreTotal float64
}

// batchRepository is the single writer boundary for batch progress: every
// counter increment and outcome append happens under one mutex, so
// concurrent workers never race on the same batch.
type batchRepository struct {
	mu      sync.RWMutex
	batches map[uuid.UUID]*batchRecord
}

func NewBatchRepository() BatchRepository {
	return &batchRepository{batches: make(map[uuid.UUID]*batchRecord)}
}

func (r *batchRepository) Create(batch *models.Batch) error {
	if batch.ID == uuid.Nil {
		return fmt.Errorf("batch has no ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.batches[batch.ID]; exists {
		return fmt.Errorf("batch %s already exists", batch.ID)
	}
	stored := *batch
	stored.DocumentIDs = append([]uuid.UUID(nil), batch.DocumentIDs...)
	r.batches[batch.ID] = &batchRecord{batch: stored}
	return nil
}

func (r *batchRepository) FindByID(id uuid.UUID) (*models.Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.batches[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrBatchNotFound, id)
	}
	batch := rec.batch
	batch.DocumentIDs = append([]uuid.UUID(nil), rec.batch.DocumentIDs...)
	batch.Items = append([]models.BatchItem(nil), rec.batch.Items...)
	return &batch, nil
}

func (r *batchRepository) UpdateStatus(id uuid.UUID, status models.BatchStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.batches[id]
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrBatchNotFound, id)
	}

	if !transitionAllowed(rec.batch.Status, status) {
		return fmt.Errorf("batch %s cannot move from %q to %q", id, rec.batch.Status, status)
	}

	rec.batch.Status = status
	now := time.Now()
	switch {
	case status == models.BatchProcessing:
		rec.batch.StartedAt = &now
	case status.Terminal():
		rec.batch.CompletedAt = &now
	}
	return nil
}

func (r *batchRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.batches[id]
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrBatchNotFound, id)
	}
	if rec.batch.Status.Terminal() {
		return fmt.Errorf("batch %s is already terminal (%q)", id, rec.batch.Status)
	}

	now := time.Now()
	rec.batch.Status = models.BatchFailed
	rec.batch.ErrorMessage = errorMsg
	rec.batch.CompletedAt = &now
	return nil
}

func (r *batchRepository) RecordOutcome(id uuid.UUID, item models.BatchItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.batches[id]
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrBatchNotFound, id)
	}
	if rec.batch.Processed >= len(rec.batch.DocumentIDs) {
		return fmt.Errorf("batch %s already has an outcome for every item", id)
	}

	rec.batch.Items = append(rec.batch.Items, item)
	rec.batch.Processed++
	if item.Succeeded() {
		rec.batch.Succeeded++
		rec.scoreTotal += item.Result.OverallScore
		rec.batch.AverageScore = rec.scoreTotal / float64(rec.batch.Succeeded)
		switch item.Result.Verdict {
		case models.VerdictHigh:
			rec.batch.HighFit++
		case models.VerdictMedium:
			rec.batch.MediumFit++
		case models.VerdictLow:
			rec.batch.LowFit++
		}
	} else {
		rec.batch.Failed++
	}
	return nil
}

func (r *batchRepository) Snapshot(id uuid.UUID) (*models.BatchProgress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.batches[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrBatchNotFound, id)
	}

	b := rec.batch
	return &models.BatchProgress{
		BatchID:      b.ID,
		Status:       b.Status,
		Total:        len(b.DocumentIDs),
		Processed:    b.Processed,
		Succeeded:    b.Succeeded,
		Failed:       b.Failed,
		HighFit:      b.HighFit,
		MediumFit:    b.MediumFit,
		LowFit:       b.LowFit,
		AverageScore: b.AverageScore,
		ErrorMessage: b.ErrorMessage,
		StartedAt:    b.StartedAt,
		CompletedAt:  b.CompletedAt,
	}, nil
}

func transitionAllowed(from, to models.BatchStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
