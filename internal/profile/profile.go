package profile

import (
	"context"
	"fmt"

	"candidate-backend/internal/entities"
	"candidate-backend/internal/extract"
	"candidate-backend/internal/keywords"
	"candidate-backend/internal/ner"
	"candidate-backend/internal/segment"
)

// CandidateProfile is the structured representation of a resume after
// extraction, segmentation and keyword distillation. It is immutable once
// built and feeds the scoring engine.
type CandidateProfile struct {
	BaseInfo      entities.BaseInfo    `json:"base_info"`
	Contacts      entities.ContactInfo `json:"contacts"`
	Skills        []string             `json:"skills"`
	Experience    []string             `json:"experience"`
	Projects      []string             `json:"projects"`
	OtherSections map[string]string    `json:"other_sections"`
}

// Builder turns raw resume documents into candidate profiles.
type Builder struct {
	Segmenter   *segment.Segmenter
	Recognizer  ner.Recognizer
	Language    string
	MaxKeywords int
}

// Build extracts text from the uploaded document and assembles a profile.
func (b *Builder) Build(ctx context.Context, data []byte, fileName, contentType string) (CandidateProfile, error) {
	text, err := extract.Text(ctx, data, fileName, contentType)
	if err != nil {
		return CandidateProfile{}, err
	}
	return b.FromText(ctx, text)
}

// FromText assembles a profile from already extracted resume text. Pure
// composition: segmentation, contact and base-info extraction, per-block
// keyword distillation, leftovers into OtherSections.
func (b *Builder) FromText(ctx context.Context, text string) (CandidateProfile, error) {
	if err := ctx.Err(); err != nil {
		return CandidateProfile{}, err
	}

	blocks := b.Segmenter.Split(text)

	baseInfo, err := entities.ExtractBaseInfo(text, b.Recognizer)
	if err != nil {
		return CandidateProfile{}, fmt.Errorf("base info: %w", err)
	}

	p := CandidateProfile{
		BaseInfo:      baseInfo,
		Contacts:      entities.ExtractContacts(text),
		Skills:        keywords.Extract(blocks[segment.CategorySkills], b.Language, b.MaxKeywords),
		Experience:    keywords.Extract(blocks[segment.CategoryExperience], b.Language, b.MaxKeywords),
		Projects:      keywords.Extract(blocks[segment.CategoryProjects], b.Language, b.MaxKeywords),
		OtherSections: make(map[string]string),
	}

	for category, blockText := range blocks {
		switch category {
		case segment.CategorySkills, segment.CategoryExperience, segment.CategoryProjects:
			continue
		}
		p.OtherSections[category] = blockText
	}

	return p, nil
}
