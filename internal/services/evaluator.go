package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"alfredoptarigan/resume-relevance/internal/models"
)

// EvaluatorService runs the full per-resume pipeline: feature extraction,
// normalization, similarity scoring and verdict classification. The
// pipeline is pure and stateless, so evaluations are safe to run in
// parallel across resumes.
type EvaluatorService interface {
	EvaluateDocument(ctx context.Context, job *models.JobRequirement, doc *models.Document) (*models.EvaluationResult, error)
	EvaluateResume(job *models.JobRequirement, resume *models.ParsedResume) *models.EvaluationResult
}

type evaluatorService struct {
	extractor ExtractorService
	scorer    ScorerService
	verdict   VerdictService
	logger    *zap.Logger
}

func NewEvaluatorService(
	extractor ExtractorService,
	scorer ScorerService,
	verdict VerdictService,
	logger *zap.Logger,
) EvaluatorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &evaluatorService{
		extractor: extractor,
		scorer:    scorer,
		verdict:   verdict,
		logger:    logger,
	}
}

func (e *evaluatorService) EvaluateDocument(ctx context.Context, job *models.JobRequirement, doc *models.Document) (*models.EvaluationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc.Kind != models.DocumentKindResume {
		return nil, fmt.Errorf("%w: document %s is %q, want %q",
			models.ErrWrongDocumentKind, doc.ID, doc.Kind, models.DocumentKindResume)
	}

	resume := e.extractor.ExtractResume(doc)
	result := e.EvaluateResume(job, resume)

	e.logger.Info("evaluated resume",
		zap.String("job_id", job.ID.String()),
		zap.String("document_id", doc.ID.String()),
		zap.String("candidate", result.CandidateName),
		zap.Float64("overall_score", result.OverallScore),
		zap.String("verdict", string(result.Verdict)),
	)
	return result, nil
}

func (e *evaluatorService) EvaluateResume(job *models.JobRequirement, resume *models.ParsedResume) *models.EvaluationResult {
	scores := e.scorer.Score(job, resume)
	return e.verdict.Classify(job, resume, scores)
}
