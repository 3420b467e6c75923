package main

import (
	"context"
	"log"

	"candidate-backend/internal/candidates"
	"candidate-backend/internal/config"
	"candidate-backend/internal/history"
	"candidate-backend/internal/keywords"
	"candidate-backend/internal/llm/ollama"
	"candidate-backend/internal/match"
	nerprose "candidate-backend/internal/ner/prose"
	"candidate-backend/internal/profile"
	"candidate-backend/internal/segment"
	"candidate-backend/internal/server"
	"candidate-backend/internal/shared/storage/db"
	localstore "candidate-backend/internal/shared/storage/object/local"
	"candidate-backend/internal/vacancies"
)

func main() {
	cfg := config.Load()

	catalog, err := vacancies.Load(cfg.VacanciesPath)
	if err != nil {
		log.Fatalf("load vacancies: %v", err)
	}

	llmClient, err := ollama.NewClient(cfg.OllamaAPIURL, cfg.OllamaModelName, cfg.LLMTimeout)
	if err != nil {
		log.Fatalf("ollama client: %v", err)
	}

	repo := newHistoryRepo(cfg)

	builder := &profile.Builder{
		Segmenter:   segment.Default(),
		Recognizer:  nerprose.New(),
		Language:    keywords.DefaultLanguage,
		MaxKeywords: keywords.DefaultMax,
	}

	engine := &match.Engine{
		LLM:         llmClient,
		Concurrency: cfg.MatchConcurrency,
		CallTimeout: cfg.LLMTimeout,
	}

	handler := &candidates.Handler{
		Builder: builder,
		Engine:  engine,
		Catalog: catalog,
		Store:   localstore.New(cfg.StorageDir),
		History: repo,
	}

	r := server.New(handler)

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// newHistoryRepo connects to Postgres when DATABASE_URL is set, falling back
// to the in-memory repository otherwise or on connection failure.
func newHistoryRepo(cfg config.Config) history.Repo {
	if cfg.DatabaseURL == "" {
		return history.NewMemoryRepo()
	}

	ctx := context.Background()
	conn, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		log.Printf("failed to connect database, falling back to memory: %v", err)
		return history.NewMemoryRepo()
	}
	if err := db.RunMigrations(ctx, conn); err != nil {
		log.Printf("failed to run migrations, falling back to memory: %v", err)
		conn.Close()
		return history.NewMemoryRepo()
	}
	return &history.PGRepo{DB: conn}
}
