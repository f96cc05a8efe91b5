package dto

import (
	"resume-builder/internal/domain/resume"

	"github.com/google/uuid"
)

type PreviewSectionResponse struct {
	ID          uuid.UUID `json:"id"`
	SectionType string    `json:"section_type"`
	Label       string    `json:"label"`
	OrderIndex  int       `json:"order_index"`
	Content     any       `json:"content"`
}

type PreviewResponse struct {
	Resume   ResumeResponse           `json:"resume"`
	Sections []PreviewSectionResponse `json:"sections"`
}

// previewSkills renders the skills list already split for display.
type previewSkills struct {
	List   string   `json:"list"`
	Skills []string `json:"skills"`
}

func NewPreviewSectionResponse(id uuid.UUID, orderIndex int, content resume.Content) PreviewSectionResponse {
	var body any = content
	if skills, ok := content.(resume.Skills); ok {
		body = previewSkills{List: skills.List, Skills: skills.Names()}
	}
	return PreviewSectionResponse{
		ID:          id,
		SectionType: string(content.Kind()),
		Label:       content.Kind().Label(),
		OrderIndex:  orderIndex,
		Content:     body,
	}
}
