package match

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Evaluation is the structured verdict for a single vacancy, the one
// canonical response schema of the engine.
type Evaluation struct {
	Vacancy         string `json:"vacancy"`
	Percentage      int    `json:"percentage"`
	Explaining      string `json:"explaining"`
	Recommendations string `json:"recommendations"`
}

// EvaluationSchema constrains generative output to the Evaluation field set.
var EvaluationSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"vacancy": {"type": "string"},
		"percentage": {"type": "integer", "minimum": 0, "maximum": 100},
		"explaining": {"type": "string"},
		"recommendations": {"type": "string"}
	},
	"required": ["vacancy", "percentage", "explaining", "recommendations"]
}`)

// parseEvaluation decodes and validates a structured model response. The
// percentage is clamped into [0,100] so a wayward score can never break
// aggregation.
func parseEvaluation(raw string) (Evaluation, error) {
	var ev Evaluation
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		return Evaluation{}, fmt.Errorf("evaluation parse: %w", err)
	}
	if strings.TrimSpace(ev.Vacancy) == "" {
		return Evaluation{}, errors.New("evaluation missing vacancy")
	}
	ev.Percentage = clampPercentage(ev.Percentage)
	return ev, nil
}

func clampPercentage(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// fallbackEvaluation is the deterministic zero-score substitute used when a
// vacancy's response cannot be obtained or parsed.
func fallbackEvaluation(title string) Evaluation {
	return Evaluation{
		Vacancy:         title,
		Percentage:      0,
		Explaining:      fmt.Sprintf("Не удалось обработать ответ для вакансии %s.", title),
		Recommendations: "Попробуйте повторить запрос или скорректировать данные.",
	}
}
