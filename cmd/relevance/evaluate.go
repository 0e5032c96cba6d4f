package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <job-file> <resume-file>...",
	Short: "Score one or more resumes against a job and print the results as JSON",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return evaluate(cmd.Context(), args[0], args[1:])
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}

func evaluate(ctx context.Context, jobPath string, resumePaths []string) error {
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
	eng.logger.Info("loaded job requirement",
		zap.String("title", job.Title),
		zap.Strings("required_skills", job.RequiredSkills),
	)

	docs, err := loadResumeDocuments(resumePaths)
	if err != nil {
		return err
	}

	results := make([]any, 0, len(docs))
	for _, doc := range docs {
		result, err := eng.evaluator.EvaluateDocument(ctx, job, doc)
		if err != nil {
			eng.logger.Warn("skipping resume",
				zap.String("document", doc.Name),
				zap.Error(err),
			)
			continue
		}
		results = append(results, result)
	}

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
