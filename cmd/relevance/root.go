package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/resume-relevance/internal/config"
	"alfredoptarigan/resume-relevance/internal/logger"
	"alfredoptarigan/resume-relevance/internal/models"
	"alfredoptarigan/resume-relevance/internal/repositories"
	"alfredoptarigan/resume-relevance/internal/services"
)

const app = "relevance"

var rootCmd = &cobra.Command{
	Use:   app,
	Short: "relevance scores resumes against a job requisition and explains the verdict",
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("policy", "", "scoring policy YAML file (defaults built in)")
	rootCmd.PersistentFlags().String("vocabulary", "", "skill vocabulary YAML file (defaults built in)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("policy", rootCmd.PersistentFlags().Lookup("policy"))
	viper.BindPFlag("vocabulary", rootCmd.PersistentFlags().Lookup("vocabulary"))
}

// engine bundles the wired scoring pipeline for the CLI commands.
type engine struct {
	cfg          *config.Config
	logger       *zap.Logger
	extractor    services.ExtractorService
	evaluator    services.EvaluatorService
	jobRepo      repositories.JobRepository
	docRepo      repositories.DocumentRepository
	batchRepo    repositories.BatchRepository
	orchestrator services.BatchOrchestrator
}

func buildEngine() (*engine, error) {
	cfg := config.Load()

	log, err := logger.New(
		viper.GetBool("json") || cfg.Logging.JSON,
		viper.GetBool("debug") || cfg.Logging.Debug,
	)
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}

	policyFile := viper.GetString("policy")
	if policyFile == "" {
		policyFile = cfg.Scoring.PolicyFile
	}
	policy, err := config.LoadScoringPolicy(policyFile)
	if err != nil {
		return nil, err
	}

	vocabFile := viper.GetString("vocabulary")
	if vocabFile == "" {
		vocabFile = cfg.Scoring.VocabularyFile
	}
	vocab, err := config.LoadVocabulary(vocabFile)
	if err != nil {
		return nil, err
	}

	extractor := services.NewExtractorService(vocab, log)
	normalizer := services.NewSkillNormalizer(vocab)
	scorer := services.NewScorerService(normalizer, services.NewKeywordOverlapSimilarity(), policy, log)
	verdict := services.NewVerdictService(policy)
	evaluator := services.NewEvaluatorService(extractor, scorer, verdict, log)

	jobRepo := repositories.NewJobRepository()
	docRepo := repositories.NewDocumentRepository()
	batchRepo := repositories.NewBatchRepository()

	return &engine{
		cfg:       cfg,
		logger:    log,
		extractor: extractor,
		evaluator: evaluator,
		jobRepo:   jobRepo,
		docRepo:   docRepo,
		batchRepo: batchRepo,
		orchestrator: services.NewBatchOrchestrator(
			jobRepo, docRepo, batchRepo, evaluator, cfg.Worker.Concurrency, log,
		),
	}, nil
}

// loadJob reads a requisition from a YAML file, or extracts one from a
// free-text posting for any other extension.
func (e *engine) loadJob(path string) (*models.JobRequirement, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" || ext == ".json" {
		return loadJobFile(path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job posting %s: %w", path, err)
	}
	facts := e.extractor.ExtractJob(string(raw))
	job := &models.JobRequirement{
		ID:             uuid.New(),
		Title:          strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		RequiredSkills: facts.RequiredSkills,
		MinExperience:  facts.MinYears,
		MaxExperience:  facts.MaxYears,
		MinEducation:   facts.MinEducation,
		Description:    string(raw),
	}
	return job, nil
}

type jobFileSpec struct {
	Title          string   `mapstructure:"title"`
	RequiredSkills []string `mapstructure:"required-skills"`
	MinExperience  float64  `mapstructure:"min-experience-years"`
	MaxExperience  float64  `mapstructure:"max-experience-years"`
	MinEducation   string   `mapstructure:"min-education"`
	Description    string   `mapstructure:"description"`
	Requirements   string   `mapstructure:"requirements"`
}

func loadJobFile(path string) (*models.JobRequirement, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading job file %s: %w", path, err)
	}
	var spec jobFileSpec
	if err := v.Unmarshal(&spec); err != nil {
		return nil, fmt.Errorf("parsing job file %s: %w", path, err)
	}

	level := models.EducationNone
	if spec.MinEducation != "" {
		var ok bool
		if level, ok = models.ParseEducationLevel(spec.MinEducation); !ok {
			return nil, fmt.Errorf("job file %s: unknown education level %q", path, spec.MinEducation)
		}
	}
	job := &models.JobRequirement{
		ID:             uuid.New(),
		Title:          spec.Title,
		RequiredSkills: spec.RequiredSkills,
		MinExperience:  spec.MinExperience,
		MaxExperience:  spec.MaxExperience,
		MinEducation:   level,
		Description:    spec.Description,
		Requirements:   spec.Requirements,
	}
	return job, job.Validate()
}

// loadResumeDocuments reads each path (files, or every .txt inside a
// directory) into resume documents. Text extraction from binary formats
// happens upstream; this CLI only accepts plain text.
func loadResumeDocuments(paths []string) ([]*models.Document, error) {
	var docs []*models.Document
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			entries, err := os.ReadDir(path)
			if err != nil {
				return nil, err
			}
			for _, entry := range entries {
				if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
					continue
				}
				doc, err := readResumeDocument(filepath.Join(path, entry.Name()))
				if err != nil {
					return nil, err
				}
				docs = append(docs, doc)
			}
			continue
		}
		doc, err := readResumeDocument(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no resume documents found")
	}
	return docs, nil
}

func readResumeDocument(path string) (*models.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading resume %s: %w", path, err)
	}
	return &models.Document{
		ID:   uuid.New(),
		Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Kind: models.DocumentKindResume,
		Text: string(raw),
	}, nil
}
