package models

import "errors"

// Error kinds surfaced across the scoring core. Per-item faults are
// downgraded to recorded outcomes at the orchestrator boundary; only
// whole-batch preconditions abort before processing starts.
var (
	ErrInvalidJobRequirement = errors.New("invalid job requirement")
	ErrJobNotFound           = errors.New("job requirement not found")
	ErrDocumentNotFound      = errors.New("document not found")
	ErrBatchNotFound         = errors.New("batch not found")
	ErrBatchNotRunning       = errors.New("batch is not running")
	ErrWrongDocumentKind     = errors.New("wrong document kind")
)
