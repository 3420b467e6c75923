package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port             string
	Env              string
	DatabaseURL      string
	OllamaAPIURL     string
	OllamaModelName  string
	VacanciesPath    string
	StorageDir       string
	MatchConcurrency int
	LLMTimeout       time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is not set, match history will not survive restarts")
	}

	return Config{
		Port:             getEnv("PORT", "8080"),
		Env:              env,
		DatabaseURL:      dbURL,
		OllamaAPIURL:     getEnv("OLLAMA_API_URL", "http://localhost:11434"),
		OllamaModelName:  getEnv("OLLAMA_MODEL_NAME", "gemma3:4b"),
		VacanciesPath:    getEnv("VACANCIES_PATH", "data/vacancies.json"),
		StorageDir:       getEnv("STORAGE_DIR", "uploads"),
		MatchConcurrency: getEnvInt("MATCH_CONCURRENCY", 4),
		LLMTimeout:       time.Duration(getEnvInt("LLM_TIMEOUT_SECONDS", 60)) * time.Second,
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config env %s invalid int: %v", key, err)
		return def
	}
	return val
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
