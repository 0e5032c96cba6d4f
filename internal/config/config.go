package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Logging LoggingConfig
	Worker  WorkerConfig
	Scoring ScoringConfig
}

type LoggingConfig struct {
	JSON  bool
	Debug bool
}

type WorkerConfig struct {
	// Concurrency bounds the batch worker pool. The pipeline is CPU-bound,
	// so this should track available parallelism, not I/O concurrency.
	Concurrency int
}

type ScoringConfig struct {
	PolicyFile     string
	VocabularyFile string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Logging: LoggingConfig{
			JSON:  getEnvAsBool("LOG_JSON", false),
			Debug: getEnvAsBool("LOG_DEBUG", false),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvAsInt("WORKER_CONCURRENCY", 5),
		},
		Scoring: ScoringConfig{
			PolicyFile:     getEnv("SCORING_POLICY_FILE", ""),
			VocabularyFile: getEnv("SKILL_VOCABULARY_FILE", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
