package match

import (
	"strings"

	"candidate-backend/internal/vacancies"
)

// systemPrompt fixes the model's role for vacancy scoring.
const systemPrompt = "Ты – HR-менеджер, который отбирает людей на должность. " +
	"По представленным навыкам тебе необходимо оценить, подходит ли кандидат на должность, " +
	"и если подходит, то на какую."

var levelLabels = map[int]string{
	vacancies.LevelLow:    "низкий",
	vacancies.LevelMedium: "средний",
	vacancies.LevelHigh:   "высокий",
}

// buildPrompt renders the evaluation prompt for one vacancy. The rendering is
// deterministic for a given vacancy and profile: competencies follow catalog
// order, and the scoring policy is spelled out in prose.
func buildPrompt(vacancy vacancies.Vacancy, skills, experience []string) string {
	var b strings.Builder

	b.WriteString("Вакансия: " + vacancy.Title + "\n")
	b.WriteString("Компетенции, необходимые для выполнения работы: \n")
	for _, group := range vacancy.Competencies {
		for _, req := range group.Requirements {
			b.WriteString(req.Name + ", уровень: " + levelLabels[req.Level] + "\n")
		}
	}
	b.WriteString("\n")

	b.WriteString("Тебе необходимо оценить, насколько подходит кандидат на должность, и если не подходит, " +
		"то написать рекомендации по обучению. В начале ответа пиши название вакансии, затем подходит " +
		"или нет, и в конце рекомендации по обучению, если кандидат не подходит. Также укажи " +
		"процент соответствия вакансии, в json-формате. " +
		"Используй следующую логику вычитания процентов: \n" +
		"- 2 процента за каждый отсутствующий навык уровня 'низкий'\n" +
		"- 5 процентов за каждый отсутствующий навык уровня 'средний'\n" +
		"- 10 процентов за каждый отсутствующий навык уровня 'высокий'\n" +
		"- Если среди компетенций есть обширная сфера, а у кандидата есть более узкие навыки из этой сферы, " +
		"то вычитать не нужно. В обосновании нужно писать, каких навыков не хватает, " +
		"но не нужно указывать, что ты вычитаешь. \n")

	b.WriteString("Его навыки: \n")
	b.WriteString(strings.Join(skills, ", ") + "\n")
	b.WriteString("Также его опыт включал: \n")
	b.WriteString(strings.Join(experience, ", ") + "\n")
	b.WriteString("Твоя оценка: ")

	return b.String()
}
