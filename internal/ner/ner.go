package ner

// Kind classifies a recognized entity.
type Kind string

const (
	Person   Kind = "person"
	Location Kind = "location"
)

// Entity is one span of text recognized as a named entity.
type Entity struct {
	Text string
	Kind Kind
}

// Recognizer abstracts pre-trained named-entity-recognition providers.
type Recognizer interface {
	Entities(text string) ([]Entity, error)
}
