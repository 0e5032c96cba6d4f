package models

import (
	"time"

	"github.com/google/uuid"
)

type BatchStatus string

const (
	BatchPending    BatchStatus = "pending"
	BatchProcessing BatchStatus = "processing"
	BatchCompleted  BatchStatus = "completed"
	BatchFailed     BatchStatus = "failed"
	BatchCancelled  BatchStatus = "cancelled"
)

// Terminal reports whether the batch can no longer change state.
func (s BatchStatus) Terminal() bool {
	return s == BatchCompleted || s == BatchFailed || s == BatchCancelled
}

// BatchItem is the terminal outcome of a single resume within a batch:
// either a complete evaluation result or a recorded failure, never a
// half-filled record.
type BatchItem struct {
	DocumentID uuid.UUID         `json:"document_id"`
	Result     *EvaluationResult `json:"result,omitempty"`
	Error      string            `json:"error,omitempty"`
	Duration   time.Duration     `json:"duration"`
}

func (it BatchItem) Succeeded() bool {
	return it.Result != nil && it.Error == ""
}

// Batch is a unit of work evaluating many resumes against one job
// requirement. It is mutated only by the orchestrator as items complete
// and is terminal once Status reaches a terminal state.
type Batch struct {
	ID          uuid.UUID   `json:"id"`
	JobID       uuid.UUID   `json:"job_id"`
	DocumentIDs []uuid.UUID `json:"document_ids"`
	Status      BatchStatus `json:"status"`

	Items     []BatchItem `json:"items"`
	Processed int         `json:"processed"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`

	HighFit      int     `json:"high_fit"`
	MediumFit    int     `json:"medium_fit"`
	LowFit       int     `json:"low_fit"`
	AverageScore float64 `json:"average_score"`

	ErrorMessage string     `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// BatchProgress is a point-in-time snapshot safe to read while the batch
// is still being processed.
type BatchProgress struct {
	BatchID      uuid.UUID   `json:"batch_id"`
	Status       BatchStatus `json:"status"`
	Total        int         `json:"total"`
	Processed    int         `json:"processed"`
	Succeeded    int         `json:"succeeded"`
	Failed       int         `json:"failed"`
	HighFit      int         `json:"high_fit"`
	MediumFit    int         `json:"medium_fit"`
	LowFit       int         `json:"low_fit"`
	AverageScore float64     `json:"average_score"`
	ErrorMessage string      `json:"error_message,omitempty"`
	StartedAt    *time.Time  `json:"started_at,omitempty"`
	CompletedAt  *time.Time  `json:"completed_at,omitempty"`
}
