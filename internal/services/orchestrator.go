package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/resume-relevance/internal/models"
	"alfredoptarigan/resume-relevance/internal/repositories"
)

// BatchOrchestrator fans the evaluation pipeline out over a resume set
// through a bounded worker pool, tracks progress and isolates per-item
// failures: one resume's fault never aborts its siblings or the batch.
type BatchOrchestrator interface {
	// Start validates the job, creates the batch and begins processing in
	// the background. Whole-batch precondition failures surface here,
	// before any item is dispatched.
	Start(ctx context.Context, jobID uuid.UUID, documentIDs []uuid.UUID, concurrency int) (*models.Batch, error)
	// Cancel stops dispatching new items; in-flight items finish and keep
	// their outcomes.
	Cancel(batchID uuid.UUID) error
	GetProgress(batchID uuid.UUID) (*models.BatchProgress, error)
	// Wait blocks until the batch reaches a terminal status.
	Wait(batchID uuid.UUID) error
}

type batchRun struct {
	cancelled atomic.Bool
	done      chan struct{}
}

type orchestrator struct {
	jobRepo            repositories.JobRepository
	docRepo            repositories.DocumentRepository
	batchRepo          repositories.BatchRepository
	evaluator          EvaluatorService
	defaultConcurrency int
	logger             *zap.Logger

	mu      sync.Mutex
	running map[uuid.UUID]*batchRun
}

func NewBatchOrchestrator(
	jobRepo repositories.JobRepository,
	docRepo repositories.DocumentRepository,
	batchRepo repositories.BatchRepository,
	evaluator EvaluatorService,
	defaultConcurrency int,
	logger *zap.Logger,
) BatchOrchestrator {
	if defaultConcurrency <= 0 {
		defaultConcurrency = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &orchestrator{
		jobRepo:            jobRepo,
		docRepo:            docRepo,
		batchRepo:          batchRepo,
		evaluator:          evaluator,
		defaultConcurrency: defaultConcurrency,
		logger:             logger,
		running:            make(map[uuid.UUID]*batchRun),
	}
}

func (o *orchestrator) Start(ctx context.Context, jobID uuid.UUID, documentIDs []uuid.UUID, concurrency int) (*models.Batch, error) {
	if concurrency <= 0 {
		concurrency = o.defaultConcurrency
	}

	batch := &models.Batch{
		ID:          uuid.New(),
		JobID:       jobID,
		DocumentIDs: documentIDs,
		Status:      models.BatchPending,
		CreatedAt:   time.Now(),
	}
	if err := o.batchRepo.Create(batch); err != nil {
		return nil, fmt.Errorf("creating batch: %w", err)
	}

	job, err := o.jobRepo.FindByID(jobID)
	if err != nil {
		return o.failBeforeDispatch(batch, fmt.Errorf("loading job requirement: %w", err))
	}
	if err := job.Validate(); err != nil {
		return o.failBeforeDispatch(batch, err)
	}

	if err := o.batchRepo.UpdateStatus(batch.ID, models.BatchProcessing); err != nil {
		return nil, err
	}

	run := &batchRun{done: make(chan struct{})}
	o.mu.Lock()
	o.running[batch.ID] = run
	o.mu.Unlock()

	o.logger.Info("batch started",
		zap.String("batch_id", batch.ID.String()),
		zap.String("job_id", jobID.String()),
		zap.Int("items", len(documentIDs)),
		zap.Int("concurrency", concurrency),
	)

	go o.process(ctx, batch.ID, job, documentIDs, concurrency, run)

	return o.batchRepo.FindByID(batch.ID)
}

// failBeforeDispatch marks the batch failed for an orchestration-level
// fault, distinct from individual resume failures.
func (o *orchestrator) failBeforeDispatch(batch *models.Batch, cause error) (*models.Batch, error) {
	if err := o.batchRepo.UpdateError(batch.ID, cause.Error()); err != nil {
		o.logger.Error("failed to record batch error", zap.Error(err))
	}
	o.logger.Warn("batch rejected before dispatch",
		zap.String("batch_id", batch.ID.String()),
		zap.Error(cause),
	)
	failed, err := o.batchRepo.FindByID(batch.ID)
	if err != nil {
		return nil, err
	}
	return failed, cause
}

func (o *orchestrator) process(ctx context.Context, batchID uuid.UUID, job *models.JobRequirement, documentIDs []uuid.UUID, concurrency int, run *batchRun) {
	g := new(errgroup.Group)
	g.SetLimit(concurrency)

	for _, docID := range documentIDs {
		docID := docID
		// Cooperative cancellation: checked between items, never
		// preemptively mid-computation.
		if run.cancelled.Load() || ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if run.cancelled.Load() || ctx.Err() != nil {
				return nil
			}
			outcome := o.evaluateItem(ctx, job, docID)
			if err := o.batchRepo.RecordOutcome(batchID, outcome); err != nil {
				o.logger.Error("failed to record item outcome",
					zap.String("batch_id", batchID.String()),
					zap.String("document_id", docID.String()),
					zap.Error(err),
				)
			}
			return nil
		})
	}

	g.Wait() // item errors are recorded, never returned
	o.finish(batchID, run)
}

// evaluateItem runs one resume through the pipeline and converts any
// fault, panics included, into a recorded failure outcome.
func (o *orchestrator) evaluateItem(ctx context.Context, job *models.JobRequirement, docID uuid.UUID) (outcome models.BatchItem) {
	start := time.Now()
	outcome = models.BatchItem{DocumentID: docID}
	defer func() {
		if r := recover(); r != nil {
			outcome.Result = nil
			outcome.Error = fmt.Sprintf("evaluation panic: %v", r)
			o.logger.Error("recovered from item panic",
				zap.String("document_id", docID.String()),
				zap.Any("panic", r),
			)
		}
		outcome.Duration = time.Since(start)
	}()

	doc, err := o.docRepo.FindByID(docID)
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	result, err := o.evaluator.EvaluateDocument(ctx, job, doc)
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}
	outcome.Result = result
	return outcome
}

func (o *orchestrator) finish(batchID uuid.UUID, run *batchRun) {
	defer close(run.done)
	defer func() {
		o.mu.Lock()
		delete(o.running, batchID)
		o.mu.Unlock()
	}()

	batch, err := o.batchRepo.FindByID(batchID)
	if err != nil {
		o.logger.Error("finished batch disappeared", zap.String("batch_id", batchID.String()), zap.Error(err))
		return
	}

	if batch.Status == models.BatchProcessing {
		// Completed means every item has a terminal outcome. A context
		// cancellation stops the dispatch loop early, leaving items
		// without outcomes; that batch is cancelled, not completed.
		status := models.BatchCompleted
		if batch.Processed < len(batch.DocumentIDs) {
			status = models.BatchCancelled
		}
		if err := o.batchRepo.UpdateStatus(batchID, status); err != nil {
			// A cancel can land between the read and the update; the batch
			// is terminal either way.
			o.logger.Debug("batch not finalized", zap.String("batch_id", batchID.String()), zap.Error(err))
		}
	}

	progress, err := o.batchRepo.Snapshot(batchID)
	if err != nil {
		return
	}
	o.logger.Info("batch finished",
		zap.String("batch_id", batchID.String()),
		zap.String("status", string(progress.Status)),
		zap.Int("processed", progress.Processed),
		zap.Int("succeeded", progress.Succeeded),
		zap.Int("failed", progress.Failed),
		zap.Float64("average_score", progress.AverageScore),
	)
}

func (o *orchestrator) Cancel(batchID uuid.UUID) error {
	o.mu.Lock()
	run, ok := o.running[batchID]
	o.mu.Unlock()

	if !ok {
		if _, err := o.batchRepo.FindByID(batchID); err != nil {
			return err
		}
		return fmt.Errorf("%w: %s", models.ErrBatchNotRunning, batchID)
	}
	if run.cancelled.Swap(true) {
		return nil // already cancelled
	}

	if err := o.batchRepo.UpdateStatus(batchID, models.BatchCancelled); err != nil {
		return err
	}
	o.logger.Info("batch cancelled", zap.String("batch_id", batchID.String()))
	return nil
}

func (o *orchestrator) GetProgress(batchID uuid.UUID) (*models.BatchProgress, error) {
	return o.batchRepo.Snapshot(batchID)
}

func (o *orchestrator) Wait(batchID uuid.UUID) error {
	o.mu.Lock()
	run, ok := o.running[batchID]
	o.mu.Unlock()

	if ok {
		<-run.done
		return nil
	}
	if _, err := o.batchRepo.FindByID(batchID); err != nil {
		return err
	}
	return nil
}
