package dto

import (
	"time"

	"resume-builder/internal/domain/resume"

	"github.com/google/uuid"
)

type ResumeResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Template  string    `json:"template"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SectionResponse struct {
	ID          uuid.UUID      `json:"id"`
	ResumeID    uuid.UUID      `json:"resume_id"`
	SectionType string         `json:"section_type"`
	Label       string         `json:"label"`
	Content     map[string]any `json:"content"`
	OrderIndex  int            `json:"order_index"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type ResumeDetailResponse struct {
	ResumeResponse
	Sections []SectionResponse `json:"sections"`
}

func NewResumeResponse(r resume.Resume) ResumeResponse {
	return ResumeResponse{
		ID:        r.ID,
		Title:     r.Title,
		Template:  r.Template,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func NewResumeListResponse(items []resume.Resume) []ResumeResponse {
	out := make([]ResumeResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewResumeResponse(it))
	}
	return out
}

func NewSectionResponse(s resume.Section) SectionResponse {
	content := map[string]any(s.Content)
	if content == nil {
		content = map[string]any{}
	}
	return SectionResponse{
		ID:          s.ID,
		ResumeID:    s.ResumeID,
		SectionType: string(s.Type),
		Label:       s.Type.Label(),
		Content:     content,
		OrderIndex:  s.OrderIndex,
		UpdatedAt:   s.UpdatedAt,
	}
}

func NewResumeDetailResponse(r resume.Resume, sections []resume.Section) ResumeDetailResponse {
	out := ResumeDetailResponse{
		ResumeResponse: NewResumeResponse(r),
		Sections:       make([]SectionResponse, 0, len(sections)),
	}
	for _, s := range sections {
		out.Sections = append(out.Sections, NewSectionResponse(s))
	}
	return out
}
