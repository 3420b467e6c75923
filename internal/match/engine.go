package match

import (
	"context"
	"strings"
	"sync"
	"time"

	"candidate-backend/internal/llm"
	"candidate-backend/internal/profile"
	"candidate-backend/internal/shared/telemetry"
	"candidate-backend/internal/vacancies"
)

const (
	defaultConcurrency = 4
	defaultCallTimeout = 60 * time.Second
)

// Result is the terminal recommendation returned to the caller: the best
// evaluation enriched with the candidate's contact identity.
type Result struct {
	Vacancy         string `json:"vacancy"`
	Percentage      int    `json:"percentage"`
	Explaining      string `json:"explaining"`
	Recommendations string `json:"recommendations"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
}

// Engine scores candidate profiles against the vacancy catalog through an
// injected generative-text client. The zero value is not usable; LLM must be
// set, Concurrency and CallTimeout fall back to conservative defaults.
type Engine struct {
	LLM         llm.Client
	Concurrency int
	CallTimeout time.Duration
}

// Match produces one evaluation per vacancy with bounded concurrency, then
// selects the evaluation with the highest percentage; ties keep the earliest
// catalog entry. Per-vacancy service or parse failures degrade to a fallback
// evaluation and never abort the batch. Input validation failures return an
// InvalidInputError before any generative call is made.
func (e *Engine) Match(ctx context.Context, p profile.CandidateProfile, catalog *vacancies.Catalog) (Result, error) {
	if err := validateInputs(p, catalog); err != nil {
		return Result{}, err
	}

	entries := catalog.Entries()
	evaluations := make([]*Evaluation, len(entries))
	client := withRetry(e.LLM)

	limit := e.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i, entry := range entries {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(i int, entry vacancies.Entry) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			evaluations[i] = e.evaluate(ctx, client, entry, p)
		}(i, entry)
	}
	wg.Wait()

	// Compute all, then reduce: selection order never depends on task
	// completion order.
	var best *Evaluation
	skipped := 0
	for _, ev := range evaluations {
		if ev == nil {
			skipped++
			continue
		}
		if best == nil || ev.Percentage > best.Percentage {
			best = ev
		}
	}
	if skipped > 0 {
		telemetry.Info("match.partial", map[string]any{
			"skipped": skipped,
			"total":   len(entries),
		})
	}
	if best == nil {
		return Result{}, ErrNoResult
	}

	return Result{
		Vacancy:         best.Vacancy,
		Percentage:      best.Percentage,
		Explaining:      best.Explaining,
		Recommendations: best.Recommendations,
		FullName:        firstLine(p.BaseInfo.FullName),
		Email:           p.Contacts.Email,
		Phone:           p.Contacts.Phone,
	}, nil
}

// evaluate runs one vacancy's prompt/response cycle. A nil return means the
// vacancy was never evaluated because the overall request was canceled; it
// is omitted from aggregation rather than fabricated as zero.
func (e *Engine) evaluate(ctx context.Context, client llm.Client, entry vacancies.Entry, p profile.CandidateProfile) *Evaluation {
	if ctx.Err() != nil {
		return nil
	}

	timeout := e.CallTimeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := client.Generate(callCtx, llm.GenerateInput{
		System: systemPrompt,
		Prompt: buildPrompt(entry.Vacancy, p.Skills, p.Experience),
		Schema: EvaluationSchema,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		telemetry.Error("match.generate.failed", map[string]any{
			"vacancy": entry.Vacancy.Title,
			"error":   err.Error(),
		})
		fallback := fallbackEvaluation(entry.Vacancy.Title)
		return &fallback
	}

	evaluation, err := parseEvaluation(raw)
	if err != nil {
		telemetry.Error("match.response.invalid", map[string]any{
			"vacancy": entry.Vacancy.Title,
			"error":   err.Error(),
		})
		fallback := fallbackEvaluation(entry.Vacancy.Title)
		return &fallback
	}
	return &evaluation
}

func validateInputs(p profile.CandidateProfile, catalog *vacancies.Catalog) error {
	if p.Skills == nil {
		return &InvalidInputError{Reason: "candidate profile missing skills"}
	}
	if p.Experience == nil {
		return &InvalidInputError{Reason: "candidate profile missing experience"}
	}
	if catalog.Len() == 0 {
		return &InvalidInputError{Reason: "vacancies must be a non-empty catalog"}
	}
	for _, entry := range catalog.Entries() {
		if strings.TrimSpace(entry.Vacancy.Title) == "" {
			return &InvalidInputError{Reason: "vacancy " + entry.ID + " missing title"}
		}
		if entry.Vacancy.Competencies == nil {
			return &InvalidInputError{Reason: "vacancy " + entry.ID + " missing competencies"}
		}
	}
	return nil
}

// firstLine guards against multi-line NER name spans leaking into the result.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
