package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/resume-relevance/internal/models"
)

var batchCmd = &cobra.Command{
	Use:   "batch <job-file> <resume-file-or-dir>...",
	Short: "Evaluate a set of resumes concurrently and print the batch summary",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		return runBatch(cmd.Context(), args[0], args[1:], concurrency)
	},
}

func init() {
	batchCmd.Flags().IntP("concurrency", "c", 0, "max resumes evaluated at once (0 = configured default)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(ctx context.Context, jobPath string, resumePaths []string, concurrency int) error {
	if ctx == nil {
		ctx = context.Background()
	}

	eng, err := buildEngine()
	if err != nil {
		return err
	}
	defer eng.logger.Sync()

	job, err := eng.loadJob(jobPath)
	if err != nil {
		return err
	}
	if err := eng.jobRepo.Create(job); err != nil {
		return err
	}

	docs, err := loadResumeDocuments(resumePaths)
	if err != nil {
		return err
	}
	documentIDs := make([]uuid.UUID, 0, len(docs))
	for _, doc := range docs {
		if err := eng.docRepo.Create(doc); err != nil {
			return err
		}
		documentIDs = append(documentIDs, doc.ID)
	}

	batch, err := eng.orchestrator.Start(ctx, job.ID, documentIDs, concurrency)
	if err != nil {
		return fmt.Errorf("starting batch: %w", err)
	}
	eng.logger.Info("batch started",
		zap.String("batch_id", batch.ID.String()),
		zap.String("job", job.Title),
		zap.Int("documents", len(documentIDs)),
	)

	go reportProgress(ctx, eng, batch.ID)

	if err := eng.orchestrator.Wait(batch.ID); err != nil {
		return err
	}

	final, err := eng.batchRepo.FindByID(batch.ID)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(final, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding batch: %w", err)
	}
	fmt.Println(string(out))

	if final.Status == models.BatchFailed {
		return fmt.Errorf("batch failed: %s", final.ErrorMessage)
	}
	return nil
}

// reportProgress logs a snapshot every second until the batch reaches a
// terminal status.
func reportProgress(ctx context.Context, eng *engine, batchID uuid.UUID) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		progress, err := eng.orchestrator.GetProgress(batchID)
		if err != nil {
			return
		}
		eng.logger.Info("batch progress",
			zap.String("status", string(progress.Status)),
			zap.Int("processed", progress.Processed),
			zap.Int("total", progress.Total),
			zap.Int("failed", progress.Failed),
		)
		if progress.Status.Terminal() {
			return
		}
	}
}
