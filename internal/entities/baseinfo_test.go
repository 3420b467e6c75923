package entities

import (
	"errors"
	"strings"
	"testing"

	"candidate-backend/internal/ner"
)

type fakeRecognizer struct {
	entities []ner.Entity
	err      error
}

func (f fakeRecognizer) Entities(string) ([]ner.Entity, error) {
	return f.entities, f.err
}

func TestExtractBaseInfoFirstEntitiesWin(t *testing.T) {
	rec := fakeRecognizer{entities: []ner.Entity{
		{Text: "Иван Иванов", Kind: ner.Person},
		{Text: "Петр Петров", Kind: ner.Person},
		{Text: "Москва", Kind: ner.Location},
		{Text: "Казань", Kind: ner.Location},
	}}

	info, err := ExtractBaseInfo("Иван Иванов\nМосква", rec)
	if err != nil {
		t.Fatalf("ExtractBaseInfo: %v", err)
	}
	if info.FullName != "Иван Иванов" {
		t.Fatalf("full name = %q", info.FullName)
	}
	if info.City != "Москва" {
		t.Fatalf("city = %q", info.City)
	}
}

func TestExtractBaseInfoAgeInHead(t *testing.T) {
	info, err := ExtractBaseInfo("Иван Иванов\nВозраст: 27 лет", fakeRecognizer{})
	if err != nil {
		t.Fatalf("ExtractBaseInfo: %v", err)
	}
	if info.Age != 27 {
		t.Fatalf("age = %d, want 27", info.Age)
	}
}

func TestExtractBaseInfoAgeBeyondHeadIgnored(t *testing.T) {
	lines := make([]string, 0, 12)
	for i := 0; i < 11; i++ {
		lines = append(lines, "текст без чисел")
	}
	lines = append(lines, "Возраст: 35 лет")

	info, err := ExtractBaseInfo(strings.Join(lines, "\n"), fakeRecognizer{})
	if err != nil {
		t.Fatalf("ExtractBaseInfo: %v", err)
	}
	if info.Age != 0 {
		t.Fatalf("age = %d, want 0", info.Age)
	}
}

func TestExtractBaseInfoRecognizerError(t *testing.T) {
	wantErr := errors.New("model failure")
	_, err := ExtractBaseInfo("текст", fakeRecognizer{err: wantErr})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped recognizer error, got %v", err)
	}
}
