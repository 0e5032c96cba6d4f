package repositories

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-relevance/internal/models"
)

func newBatch(n int) *models.Batch {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}
	return &models.Batch{
		ID:          uuid.New(),
		JobID:       uuid.New(),
		DocumentIDs: ids,
		Status:      models.BatchPending,
		CreatedAt:   time.Now(),
	}
}

func successOutcome(score float64, verdict models.Verdict) models.BatchItem {
	return models.BatchItem{
		DocumentID: uuid.New(),
		Result: &models.EvaluationResult{
			ID:           uuid.New(),
			OverallScore: score,
			Verdict:      verdict,
		},
		Duration: time.Millisecond,
	}
}

func TestBatchRepositoryCreateAndFind(t *testing.T) {
	repo := NewBatchRepository()
	batch := newBatch(3)

	require.NoError(t, repo.Create(batch))
	assert.Error(t, repo.Create(batch), "duplicate IDs are rejected")

	found, err := repo.FindByID(batch.ID)
	require.NoError(t, err)
	assert.Equal(t, batch.ID, found.ID)
	assert.Equal(t, models.BatchPending, found.Status)
	assert.Len(t, found.DocumentIDs, 3)

	_, err = repo.FindByID(uuid.New())
	assert.ErrorIs(t, err, models.ErrBatchNotFound)
}

func TestBatchRepositoryStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		path    []models.BatchStatus
		allowed bool
	}{
		{name: "pending to processing", path: []models.BatchStatus{models.BatchProcessing}, allowed: true},
		{name: "pending to failed", path: []models.BatchStatus{models.BatchFailed}, allowed: true},
		{name: "pending straight to completed", path: []models.BatchStatus{models.BatchCompleted}, allowed: false},
		{name: "pending straight to cancelled", path: []models.BatchStatus{models.BatchCancelled}, allowed: false},
		{name: "processing to completed", path: []models.BatchStatus{models.BatchProcessing, models.BatchCompleted}, allowed: true},
		{name: "processing to cancelled", path: []models.BatchStatus{models.BatchProcessing, models.BatchCancelled}, allowed: true},
		{name: "completed is terminal", path: []models.BatchStatus{models.BatchProcessing, models.BatchCompleted, models.BatchProcessing}, allowed: false},
		{name: "cancelled is terminal", path: []models.BatchStatus{models.BatchProcessing, models.BatchCancelled, models.BatchCompleted}, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewBatchRepository()
			batch := newBatch(1)
			require.NoError(t, repo.Create(batch))

			var err error
			for _, status := range tt.path {
				if err = repo.UpdateStatus(batch.ID, status); err != nil {
					break
				}
			}
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestBatchRepositoryTimestamps(t *testing.T) {
	repo := NewBatchRepository()
	batch := newBatch(1)
	require.NoError(t, repo.Create(batch))

	require.NoError(t, repo.UpdateStatus(batch.ID, models.BatchProcessing))
	found, _ := repo.FindByID(batch.ID)
	assert.NotNil(t, found.StartedAt)
	assert.Nil(t, found.CompletedAt)

	require.NoError(t, repo.UpdateStatus(batch.ID, models.BatchCompleted))
	found, _ = repo.FindByID(batch.ID)
	assert.NotNil(t, found.CompletedAt)
}

func TestBatchRepositoryUpdateError(t *testing.T) {
	repo := NewBatchRepository()
	batch := newBatch(1)
	require.NoError(t, repo.Create(batch))

	require.NoError(t, repo.UpdateError(batch.ID, "job not found"))

	found, _ := repo.FindByID(batch.ID)
	assert.Equal(t, models.BatchFailed, found.Status)
	assert.Equal(t, "job not found", found.ErrorMessage)
	assert.NotNil(t, found.CompletedAt)

	assert.Error(t, repo.UpdateError(batch.ID, "again"), "terminal batches stay put")
}

func TestBatchRepositoryRecordOutcome(t *testing.T) {
	repo := NewBatchRepository()
	batch := newBatch(4)
	require.NoError(t, repo.Create(batch))
	require.NoError(t, repo.UpdateStatus(batch.ID, models.BatchProcessing))

	require.NoError(t, repo.RecordOutcome(batch.ID, successOutcome(90, models.VerdictHigh)))
	require.NoError(t, repo.RecordOutcome(batch.ID, successOutcome(60, models.VerdictMedium)))
	require.NoError(t, repo.RecordOutcome(batch.ID, successOutcome(30, models.VerdictLow)))
	require.NoError(t, repo.RecordOutcome(batch.ID, models.BatchItem{
		DocumentID: uuid.New(),
		Error:      "document vanished",
	}))

	found, err := repo.FindByID(batch.ID)
	require.NoError(t, err)

	assert.Equal(t, 4, found.Processed)
	assert.Equal(t, 3, found.Succeeded)
	assert.Equal(t, 1, found.Failed)
	assert.Equal(t, 1, found.HighFit)
	assert.Equal(t, 1, found.MediumFit)
	assert.Equal(t, 1, found.LowFit)
	assert.InDelta(t, 60.0, found.AverageScore, 1e-9,
		"average covers succeeded items only")

	assert.Error(t, repo.RecordOutcome(batch.ID, successOutcome(10, models.VerdictLow)),
		"a batch never takes more outcomes than documents")
}

func TestBatchRepositoryConcurrentOutcomes(t *testing.T) {
	const workers = 50

	repo := NewBatchRepository()
	batch := newBatch(workers)
	require.NoError(t, repo.Create(batch))
	require.NoError(t, repo.UpdateStatus(batch.ID, models.BatchProcessing))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.RecordOutcome(batch.ID, successOutcome(50, models.VerdictMedium))
		}()
	}
	wg.Wait()

	found, err := repo.FindByID(batch.ID)
	require.NoError(t, err)
	assert.Equal(t, workers, found.Processed)
	assert.Equal(t, workers, found.Succeeded)
	assert.InDelta(t, 50.0, found.AverageScore, 1e-9)
}

func TestBatchRepositoryFindReturnsCopies(t *testing.T) {
	repo := NewBatchRepository()
	batch := newBatch(2)
	require.NoError(t, repo.Create(batch))

	found, err := repo.FindByID(batch.ID)
	require.NoError(t, err)
	found.Status = models.BatchCancelled
	found.DocumentIDs[0] = uuid.Nil

	again, err := repo.FindByID(batch.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BatchPending, again.Status)
	assert.NotEqual(t, uuid.Nil, again.DocumentIDs[0])
}
