package prose

import (
	prosev2 "github.com/jdkato/prose/v2"

	"candidate-backend/internal/ner"
)

// Recognizer implements ner.Recognizer on the prose NLP library.
type Recognizer struct{}

// New constructs a prose-backed recognizer.
func New() *Recognizer {
	return &Recognizer{}
}

// Entities runs prose entity extraction over the text and maps PERSON spans
// to ner.Person and GPE/LOC spans to ner.Location. Other labels are dropped.
func (Recognizer) Entities(text string) ([]ner.Entity, error) {
	doc, err := prosev2.NewDocument(text)
	if err != nil {
		return nil, err
	}

	var out []ner.Entity
	for _, ent := range doc.Entities() {
		switch ent.Label {
		case "PERSON":
			out = append(out, ner.Entity{Text: ent.Text, Kind: ner.Person})
		case "GPE", "LOC":
			out = append(out, ner.Entity{Text: ent.Text, Kind: ner.Location})
		}
	}
	return out, nil
}

var _ ner.Recognizer = (*Recognizer)(nil)
