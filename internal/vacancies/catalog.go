package vacancies

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Level bounds for competency requirements.
const (
	LevelLow    = 1
	LevelMedium = 2
	LevelHigh   = 3
)

// CompetencyRequirement is one graded skill a vacancy requires. The JSON keys
// follow the catalog's persisted shape.
type CompetencyRequirement struct {
	Name  string `json:"название"`
	Level int    `json:"уровень"`
}

// CompetencyGroup is one named competency category with its requirements, in
// file order.
type CompetencyGroup struct {
	Category     string
	Requirements []CompetencyRequirement
}

// Vacancy is one job posting from the catalog.
type Vacancy struct {
	Title        string
	Competencies []CompetencyGroup
}

// Entry pairs a catalog key with its vacancy, preserving file order.
type Entry struct {
	ID      string
	Vacancy Vacancy
}

// Catalog is the ordered, read-only vacancy list loaded once per process.
// Entry order matches the catalog file, which makes downstream first-seen
// tie-breaking stable.
type Catalog struct {
	entries []Entry
}

// Entries returns the catalog entries in file order.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	return c.entries
}

// Len returns the number of vacancies in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Load reads and validates the vacancy catalog from a JSON file.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vacancy catalog %s: %w", path, err)
	}
	defer f.Close()

	catalog, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("vacancy catalog %s: %w", path, err)
	}
	return catalog, nil
}

// Parse decodes a catalog from JSON. The top level must be an object mapping
// vacancy IDs to vacancy definitions; object order in the stream is kept.
func Parse(r io.Reader) (*Catalog, error) {
	dec := json.NewDecoder(r)

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var entries []Entry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		id, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in catalog object", keyTok)
		}

		vacancy, err := parseVacancy(dec)
		if err != nil {
			return nil, fmt.Errorf("vacancy %s: %w", id, err)
		}
		entries = append(entries, Entry{ID: id, Vacancy: vacancy})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	catalog := &Catalog{entries: entries}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

// Validate checks the catalog against its invariants: at least one vacancy,
// every vacancy titled with a competency mapping present, every requirement
// level in 1..3.
func (c *Catalog) Validate() error {
	if c.Len() == 0 {
		return errors.New("catalog must contain at least one vacancy")
	}
	for _, entry := range c.entries {
		if strings.TrimSpace(entry.Vacancy.Title) == "" {
			return fmt.Errorf("vacancy %s: missing title", entry.ID)
		}
		if entry.Vacancy.Competencies == nil {
			return fmt.Errorf("vacancy %s: missing competencies", entry.ID)
		}
		for _, group := range entry.Vacancy.Competencies {
			for _, req := range group.Requirements {
				if req.Level < LevelLow || req.Level > LevelHigh {
					return fmt.Errorf("vacancy %s: competency %q has level %d outside 1..3",
						entry.ID, req.Name, req.Level)
				}
			}
		}
	}
	return nil
}

func parseVacancy(dec *json.Decoder) (Vacancy, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return Vacancy{}, err
	}

	var vacancy Vacancy
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Vacancy{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Vacancy{}, fmt.Errorf("unexpected token %v in vacancy object", keyTok)
		}

		switch key {
		case "название":
			if err := dec.Decode(&vacancy.Title); err != nil {
				return Vacancy{}, fmt.Errorf("title: %w", err)
			}
		case "компетенции":
			groups, err := parseCompetencies(dec)
			if err != nil {
				return Vacancy{}, err
			}
			vacancy.Competencies = groups
		default:
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return Vacancy{}, err
			}
		}
	}
	if _, err := dec.Token(); err != nil {
		return Vacancy{}, err
	}
	return vacancy, nil
}

func parseCompetencies(dec *json.Decoder) ([]CompetencyGroup, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	groups := []CompetencyGroup{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		category, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in competencies object", keyTok)
		}

		var requirements []CompetencyRequirement
		if err := dec.Decode(&requirements); err != nil {
			return nil, fmt.Errorf("competencies %q: %w", category, err)
		}
		groups = append(groups, CompetencyGroup{Category: category, Requirements: requirements})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return groups, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
