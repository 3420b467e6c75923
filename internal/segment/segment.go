package segment

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Section categories form a closed set; lines that match no header land in
// CategoryOther, which is always present in the output.
const (
	CategorySkills       = "skills"
	CategoryExperience   = "experience"
	CategoryEducation    = "education"
	CategoryContacts     = "contacts"
	CategoryAbout        = "about"
	CategoryLanguages    = "languages"
	CategoryAchievements = "achievements"
	CategoryProjects     = "projects"
	CategoryOther        = "other"
)

// DefaultThreshold is the fuzzy-ratio score a line must exceed to be treated
// as a section header.
const DefaultThreshold = 75

// CategoryHeaders binds one section category to its canonical header phrases.
type CategoryHeaders struct {
	Category string
	Phrases  []string
}

// DefaultHeaderTable returns the canonical header vocabulary in tie-break
// order, with Russian and English phrases per category.
func DefaultHeaderTable() []CategoryHeaders {
	return []CategoryHeaders{
		{CategorySkills, []string{"навыки", "skills", "технические навыки", "компетенции", "tech stack"}},
		{CategoryExperience, []string{"опыт", "опыт работы", "projects", "проект", "work experience"}},
		{CategoryEducation, []string{"образование", "учеба", "education"}},
		{CategoryContacts, []string{"контакты", "contact", "связь"}},
		{CategoryAbout, []string{"обо мне", "о себе", "about me", "about"}},
		{CategoryLanguages, []string{"языки", "languages"}},
		{CategoryAchievements, []string{"достижения", "achievements", "awards"}},
		{CategoryProjects, []string{"проект", "проекты", "проектов", "project", "projects"}},
	}
}

// Segmenter splits resume text into labeled blocks by recognizing section
// headers with fuzzy matching against an immutable phrase table.
type Segmenter struct {
	table     []CategoryHeaders
	threshold int
}

// New builds a Segmenter over the given header table. A non-positive
// threshold falls back to DefaultThreshold.
func New(table []CategoryHeaders, threshold int) *Segmenter {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Segmenter{table: table, threshold: threshold}
}

// Default returns a Segmenter over the canonical header table.
func Default() *Segmenter {
	return New(DefaultHeaderTable(), DefaultThreshold)
}

// Split partitions text into category-labeled blocks. A non-blank line whose
// best fuzzy score against any canonical phrase exceeds the threshold moves
// the cursor to that category and starts the category's block over; every
// other non-blank line is appended verbatim to the block under the cursor.
// Blank lines are dropped. The returned map joins each block's lines with
// newlines and always contains CategoryOther.
func (s *Segmenter) Split(text string) map[string]string {
	lines := map[string][]string{CategoryOther: {}}
	current := CategoryOther

	for _, line := range strings.Split(text, "\n") {
		clean := strings.TrimSpace(line)
		if clean == "" {
			continue
		}
		if category, ok := s.classifyHeader(clean); ok {
			current = category
			lines[current] = []string{}
			continue
		}
		lines[current] = append(lines[current], clean)
	}

	blocks := make(map[string]string, len(lines))
	for category, blockLines := range lines {
		blocks[category] = strings.Join(blockLines, "\n")
	}
	return blocks
}

// classifyHeader scores the case-folded line against every canonical phrase.
// Ties on the best score keep the earliest category in table order.
func (s *Segmenter) classifyHeader(line string) (string, bool) {
	folded := strings.ToLower(line)

	bestScore := 0
	bestCategory := ""
	for _, entry := range s.table {
		for _, phrase := range entry.Phrases {
			if score := fuzzy.Ratio(folded, phrase); score > bestScore {
				bestScore = score
				bestCategory = entry.Category
			}
		}
	}

	if bestScore > s.threshold {
		return bestCategory, true
	}
	return "", false
}
