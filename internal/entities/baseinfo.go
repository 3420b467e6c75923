package entities

import (
	"regexp"
	"strconv"
	"strings"

	"candidate-backend/internal/ner"
)

// BaseInfo holds personal attributes discovered in resume text. Zero values
// mean the attribute was not found.
type BaseInfo struct {
	FullName string `json:"full_name,omitempty"`
	Age      int    `json:"age,omitempty"`
	City     string `json:"city,omitempty"`
}

// ageScanLines bounds the age search to the top of the resume, where the
// personal block lives; two-digit numbers further down are dates and noise.
const ageScanLines = 10

var ageRe = regexp.MustCompile(`(?i)(?:возраст[:\s]*)?(\b\d{2}\b)\s*(?:лет|года?|г\.)?`)

// ExtractBaseInfo pulls the candidate's full name and city from named
// entities over the whole text, and the age from a pattern over the first
// lines. The first person entity wins the name, the first location entity
// wins the city.
func ExtractBaseInfo(text string, recognizer ner.Recognizer) (BaseInfo, error) {
	info := BaseInfo{}

	found, err := recognizer.Entities(text)
	if err != nil {
		return BaseInfo{}, err
	}
	for _, ent := range found {
		switch ent.Kind {
		case ner.Person:
			if info.FullName == "" {
				info.FullName = ent.Text
			}
		case ner.Location:
			if info.City == "" {
				info.City = ent.Text
			}
		}
	}

	if m := ageRe.FindStringSubmatch(headLines(text, ageScanLines)); m != nil {
		if age, err := strconv.Atoi(m[1]); err == nil {
			info.Age = age
		}
	}

	return info, nil
}

func headLines(text string, n int) string {
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
