package dto

import (
	"time"

	"resume-builder/internal/domain/suggestion"

	"github.com/google/uuid"
)

type SuggestionResponse struct {
	ID               uuid.UUID  `json:"id"`
	ResumeID         uuid.UUID  `json:"resume_id"`
	SectionID        *uuid.UUID `json:"section_id"`
	SuggestionType   string     `json:"suggestion_type"`
	Label            string     `json:"label"`
	OriginalContent  string     `json:"original_content"`
	SuggestedContent string     `json:"suggested_content"`
	Applied          bool       `json:"applied"`
	CreatedAt        time.Time  `json:"created_at"`
}

type GenerateSuggestionsResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

func NewSuggestionResponse(s suggestion.Suggestion) SuggestionResponse {
	return SuggestionResponse{
		ID:               s.ID,
		ResumeID:         s.ResumeID,
		SectionID:        s.SectionID,
		SuggestionType:   string(s.Type),
		Label:            s.Type.Label(),
		OriginalContent:  s.OriginalContent,
		SuggestedContent: s.SuggestedContent,
		Applied:          s.Applied,
		CreatedAt:        s.CreatedAt,
	}
}

func NewSuggestionListResponse(items []suggestion.Suggestion) []SuggestionResponse {
	out := make([]SuggestionResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewSuggestionResponse(it))
	}
	return out
}
